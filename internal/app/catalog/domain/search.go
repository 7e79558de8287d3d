package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Fields scanned by the case-insensitive legacy search.
const (
	SearchFieldTitle       = "title"
	SearchFieldDescription = "description"
	SearchFieldCategory    = "category"
)

// LegacySearchFields lists the fields in the order they are scanned.
var LegacySearchFields = []string{SearchFieldTitle, SearchFieldDescription, SearchFieldCategory}

// FirstCharBuckets returns the prefixes used to narrow a case-insensitive
// search: the keyword's first character in lower and upper case.
//
// Candidates are only taken from documents whose field starts with one of
// these prefixes, so a keyword that occurs later in a field ("phone" in
// "iPhone") is not found. This is a known false negative of the search.
func FirstCharBuckets(keyword string) []string {
	r, _ := utf8.DecodeRuneInString(strings.ToLower(keyword))
	if r == utf8.RuneError {
		return nil
	}
	return lo.Uniq([]string{string(unicode.ToLower(r)), string(unicode.ToUpper(r))})
}

// MatchesContains reports whether field contains keyword, ignoring case.
func MatchesContains(field, keyword string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(keyword))
}

// SearchValue returns the value of one of the legacy search fields.
func (p *Product) SearchValue(field string) string {
	switch field {
	case SearchFieldTitle:
		return p.details.Title
	case SearchFieldDescription:
		return p.details.Description
	case SearchFieldCategory:
		return p.details.Category
	default:
		return ""
	}
}

// Default bounds of the search screen's price slider.
var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(10000)
)

// SearchCriteria narrows search results on the client.
type SearchCriteria struct {
	// Category is ignored when empty.
	Category  string
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	MinRating decimal.Decimal
}

// DefaultSearchCriteria matches every product priced within the default range.
func DefaultSearchCriteria() SearchCriteria {
	return SearchCriteria{
		MinPrice:  DefaultMinPrice,
		MaxPrice:  DefaultMaxPrice,
		MinRating: decimal.Zero,
	}
}

// Matches reports whether p passes every criterion. The rating is compared
// against the unrounded mean.
func (c SearchCriteria) Matches(p *Product) bool {
	if c.Category != "" && p.Category() != c.Category {
		return false
	}
	if p.Price().LessThan(c.MinPrice) || p.Price().GreaterThan(c.MaxPrice) {
		return false
	}
	return MeanRating(p.reviews).GreaterThanOrEqual(c.MinRating)
}

// Apply keeps the products that match, preserving order.
func (c SearchCriteria) Apply(products []*Product) []*Product {
	return lo.Filter(products, func(p *Product, _ int) bool {
		return c.Matches(p)
	})
}

// Categories returns the distinct categories of products, sorted.
func Categories(products []*Product) []string {
	categories := lo.Uniq(lo.Map(products, func(p *Product, _ int) string {
		return p.Category()
	}))
	sort.Strings(categories)
	return categories
}
