package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/ports"
)

const (
	archiveTable        = "commodity_articles"
	defaultHistoryLimit = 50
)

const schema = `CREATE TABLE IF NOT EXISTS commodity_articles (
    headline_key   TEXT PRIMARY KEY,
    headline       TEXT NOT NULL,
    source         TEXT NOT NULL,
    category       TEXT NOT NULL,
    tickers        TEXT[] NOT NULL DEFAULT '{}',
    country        TEXT NOT NULL DEFAULT '',
    state          TEXT NOT NULL DEFAULT '',
    commodity_tags TEXT[] NOT NULL DEFAULT '{}',
    url            TEXT NOT NULL DEFAULT '',
    summary        TEXT NOT NULL DEFAULT '',
    published_at   TIMESTAMPTZ NOT NULL,
    archived_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var archiveColumns = []string{
	"headline", "source", "category", "tickers", "country", "state",
	"commodity_tags", "url", "summary", "published_at",
}

// PostgresArchive keeps every freshly aggregated article, one row per headline.
type PostgresArchive struct {
	db *sql.DB
}

var _ ports.ArticleArchive = (*PostgresArchive)(nil)

// NewPostgresArchive wires a sql.DB implementation.
func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

// Open connects to Postgres and makes sure the archive table exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// SaveArticles upserts articles keyed by normalized headline.
func (r *PostgresArchive) SaveArticles(ctx context.Context, articles []domain.Article) error {
	if r.db == nil || len(articles) == 0 {
		return nil
	}

	query, args, err := buildUpsert(articles)
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert articles: %w", err)
	}
	return nil
}

// ListArticles returns archived articles newest first.
func (r *PostgresArchive) ListArticles(ctx context.Context, filter ports.ArchiveFilter) ([]domain.Article, error) {
	if r.db == nil {
		return []domain.Article{}, nil
	}

	query, args, err := buildList(filter)
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}

	result := []domain.Article{}
	for rows.Next() {
		var (
			a        domain.Article
			category string
		)
		if err := rows.Scan(
			&a.Headline, &a.Source, &category,
			(*pq.StringArray)(&a.Tickers),
			&a.Country, &a.State,
			(*pq.StringArray)(&a.CommodityTags),
			&a.URL, &a.Summary, &a.Timestamp,
		); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.Category = domain.Category(category)
		a.Timestamp = a.Timestamp.UTC()
		result = append(result, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

func buildUpsert(articles []domain.Article) (string, []any, error) {
	insert := psql.Insert(archiveTable).Columns(append([]string{"headline_key"}, archiveColumns...)...)

	// One statement may not touch the same conflict key twice.
	seen := map[string]struct{}{}
	for _, a := range articles {
		key := normalize.HeadlineKey(a.Headline)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		insert = insert.Values(
			key, a.Headline, a.Source, string(a.Category),
			pq.StringArray(nonNil(a.Tickers)), a.Country, a.State,
			pq.StringArray(nonNil(a.CommodityTags)), a.URL, a.Summary,
			a.Timestamp.UTC().Truncate(time.Microsecond),
		)
	}

	return insert.Suffix(`ON CONFLICT (headline_key) DO UPDATE
              SET category = EXCLUDED.category,
                  tickers = EXCLUDED.tickers,
                  commodity_tags = EXCLUDED.commodity_tags,
                  summary = EXCLUDED.summary,
                  archived_at = NOW()`).ToSql()
}

func buildList(filter ports.ArchiveFilter) (string, []any, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	q := psql.Select(archiveColumns...).From(archiveTable)
	if filter.Country != "" {
		q = q.Where(sq.ILike{"country": "%" + filter.Country + "%"})
	}
	if filter.Commodity != "" {
		q = q.Where(sq.Expr("EXISTS (SELECT 1 FROM unnest(commodity_tags) AS tag WHERE tag ILIKE ?)", "%"+filter.Commodity+"%"))
	}
	if filter.Category != "" && filter.Category != domain.CategoryOverview {
		q = q.Where(sq.Eq{"category": string(filter.Category)})
	}

	return q.OrderBy("published_at DESC").Limit(uint64(limit)).ToSql()
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
