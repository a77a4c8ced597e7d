// Package classify assigns a news category to free text via keyword scoring.
package classify

import (
	"errors"
	"fmt"
	"strings"

	"CommodityNews/internal/domain"
)

// ErrUnknownCategory is returned by Parse for names outside the enumeration.
var ErrUnknownCategory = errors.New("unknown category")

// Descriptor is the human-facing description of a category.
type Descriptor struct {
	Name        domain.Category `json:"name"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

// scored lists the categories that take part in scoring, in tie-break order.
var scored = []domain.Category{
	domain.CategoryTrade,
	domain.CategoryPrice,
	domain.CategorySupplyDemand,
	domain.CategoryClimate,
	domain.CategoryGeopolitics,
}

var keywords = map[domain.Category][]string{
	domain.CategoryTrade: {
		"export", "import", "shipment", "trading", "deal", "contract",
		"trade", "customs", "tariff", "quota", "buyer", "seller",
		"international trade", "bilateral", "agreement", "commerce",
	},
	domain.CategoryPrice: {
		"price", "cost", "surge", "drop", "rally", "decline", "rise",
		"fall", "increase", "decrease", "forecast", "prediction",
		"expensive", "cheap", "value", "worth", "rate", "premium",
		"discount", "market price", "spot price", "futures",
	},
	domain.CategorySupplyDemand: {
		"production", "harvest", "inventory", "stock", "shortage",
		"surplus", "supply", "demand", "output", "yield", "crop",
		"reserve", "stockpile", "consumption", "usage", "availability",
		"scarcity", "abundance", "buffer stock",
	},
	domain.CategoryClimate: {
		"weather", "drought", "rainfall", "temperature", "season",
		"flood", "climate", "monsoon", "storm", "cyclone", "heat",
		"cold", "precipitation", "forecast", "el nino", "la nina",
		"frost", "snow", "humidity", "wind", "heatwave",
	},
	domain.CategoryGeopolitics: {
		"policy", "regulation", "government", "law", "sanction",
		"ban", "restriction", "subsidy", "tax", "duty", "minister",
		"parliament", "congress", "legislation", "political",
		"election", "reform", "scheme", "program", "initiative",
		"bilateral", "multilateral", "treaty", "accord",
	},
}

// queryExpansion biases upstream searches toward a category.
var queryExpansion = map[domain.Category]string{
	domain.CategoryTrade:        "export import trade tariff shipment",
	domain.CategoryPrice:        "price cost market forecast inflation",
	domain.CategorySupplyDemand: "supply demand production consumption inventory shortage",
	domain.CategoryClimate:      "weather drought rain flood harvest season",
	domain.CategoryGeopolitics:  "policy government ban regulation tax conflict",
}

var descriptors = []Descriptor{
	{Name: domain.CategoryOverview, Label: "Overview", Description: "All news types combined"},
	{Name: domain.CategoryTrade, Label: "Trade", Description: "Import/export, trading volumes, deals"},
	{Name: domain.CategoryPrice, Label: "Price", Description: "Price movements, forecasts, market analysis"},
	{Name: domain.CategorySupplyDemand, Label: "Supply & Demand", Description: "Production, consumption, inventory"},
	{Name: domain.CategoryClimate, Label: "Climate", Description: "Weather impact, seasonal effects"},
	{Name: domain.CategoryGeopolitics, Label: "Geopolitics", Description: "Policies, regulations, international relations"},
}

// All returns every category, OVERVIEW first.
func All() []domain.Category {
	out := make([]domain.Category, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d.Name)
	}
	return out
}

// Descriptors returns the category catalogue in declaration order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Keywords returns a copy of the keyword table for one category.
func Keywords(cat domain.Category) []string {
	kws := keywords[cat]
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// Expansion returns the query suffix for a category; empty for OVERVIEW.
func Expansion(cat domain.Category) string {
	return queryExpansion[cat]
}

// Parse resolves a case-insensitive category name. Empty input yields OVERVIEW.
func Parse(name string) (domain.Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return domain.CategoryOverview, nil
	}
	for _, d := range descriptors {
		if string(d.Name) == name {
			return d.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Classify scores text against every keyword table. Each keyword found in the
// text adds one point. The highest score wins, ties go to the earlier category,
// and text with no matches is OVERVIEW.
func Classify(text string) domain.Category {
	if text == "" {
		return domain.CategoryOverview
	}
	lower := strings.ToLower(text)

	best := domain.CategoryOverview
	bestScore := 0
	for _, cat := range scored {
		score := Score(lower, cat)
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	return best
}

// ClassifyArticle classifies the headline joined with the optional summary.
func ClassifyArticle(headline, summary string) domain.Category {
	text := headline
	if summary != "" {
		text += " " + summary
	}
	return Classify(text)
}

// Score counts the keywords of cat present in already lower-cased text.
func Score(lower string, cat domain.Category) int {
	score := 0
	for _, kw := range keywords[cat] {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}
