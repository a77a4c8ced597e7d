package usecase

import (
	"strings"

	"CommodityNews/internal/domain"
)

// Filter lists optional criteria. Empty fields do not restrict, and OVERVIEW
// matches every category.
type Filter struct {
	Country   string
	State     string
	Commodity string
	Ticker    string
	Category  domain.Category
}

func (f Filter) empty() bool {
	return f.Country == "" && f.State == "" && f.Commodity == "" && f.Ticker == "" &&
		(f.Category == "" || f.Category == domain.CategoryOverview)
}

// FilterArticles keeps the articles that satisfy every set criterion.
func FilterArticles(articles []domain.Article, f Filter) []domain.Article {
	if f.empty() {
		return articles
	}

	out := articles
	if f.Country != "" {
		out = keep(out, func(a domain.Article) bool { return containsFold(a.Country, f.Country) })
	}
	if f.State != "" {
		out = keep(out, func(a domain.Article) bool { return containsFold(a.State, f.State) })
	}
	if f.Commodity != "" {
		out = keep(out, func(a domain.Article) bool {
			for _, tag := range a.CommodityTags {
				if containsFold(tag, f.Commodity) {
					return true
				}
			}
			return false
		})
	}
	if f.Ticker != "" {
		out = keep(out, func(a domain.Article) bool {
			for _, t := range a.Tickers {
				if strings.EqualFold(t, f.Ticker) {
					return true
				}
			}
			return false
		})
	}
	if f.Category != "" && f.Category != domain.CategoryOverview {
		out = keep(out, func(a domain.Article) bool { return a.Category == f.Category })
	}
	return out
}

func keep(in []domain.Article, pred func(domain.Article) bool) []domain.Article {
	out := make([]domain.Article, 0, len(in))
	for _, a := range in {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}

// containsFold reports whether needle occurs in field ignoring case. An absent
// field never matches.
func containsFold(field, needle string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}
