package rules

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

// IntentRank orders enquiries for the seller's inbox: urgent, then bulk,
// then exploring.
func IntentRank(l entity.IntentLevel) int {
	switch l {
	case entity.IntentUrgent:
		return 0
	case entity.IntentBulk:
		return 1
	case entity.IntentExploring:
		return 2
	}
	return 3
}

// SortByIntent returns a copy of enquiries ordered by IntentRank. Enquiries
// with the same intent keep their relative order.
func SortByIntent(enquiries []*entity.Enquiry) []*entity.Enquiry {
	out := make([]*entity.Enquiry, len(enquiries))
	copy(out, enquiries)
	sort.SliceStable(out, func(i, j int) bool {
		return IntentRank(out[i].IntentLevel) < IntentRank(out[j].IntentLevel)
	})
	return out
}

// CanEnquire reports whether the enquiry action is enabled for p. Only an
// unavailable seller blocks it.
func CanEnquire(p *entity.Product) bool {
	return p.SellerStatus != entity.SellerUnavailable
}

func CheckCanEnquire(p *entity.Product) error {
	if !CanEnquire(p) {
		return apperrors.SellerUnavailable()
	}
	return nil
}

// CanShowInterest is false once sellerID is already in the interest set.
func CanShowInterest(r *entity.BuyerRequirement, sellerID string) bool {
	return !r.HasInterestFrom(sellerID)
}

// MatchesSearch is the buyer dashboard filter: case-insensitive substring
// on name or category. An empty query matches everything.
func MatchesSearch(p *entity.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

// PriceFormatter renders whole currency amounts with locale digit grouping.
type PriceFormatter struct {
	printer *message.Printer
	symbol  string
}

func NewPriceFormatter(locale language.Tag, symbol string) *PriceFormatter {
	return &PriceFormatter{
		printer: message.NewPrinter(locale),
		symbol:  symbol,
	}
}

func (f *PriceFormatter) Amount(v float64) string {
	return f.symbol + f.printer.Sprintf("%d", int64(math.Round(v)))
}

// Display is the price line for a product. ok is false when there is no
// line to show, as for a negotiable listing without a starting price.
func (f *PriceFormatter) Display(p *entity.Product) (line string, ok bool) {
	switch p.PriceType {
	case entity.PriceExact:
		if p.Price != nil {
			return f.Amount(*p.Price), true
		}
	case entity.PriceRange:
		if p.PriceMin != nil && p.PriceMax != nil {
			return f.Amount(*p.PriceMin) + " - " + f.Amount(*p.PriceMax), true
		}
	case entity.PriceNegotiable:
		if p.Price != nil {
			return "From " + f.Amount(*p.Price), true
		}
	}
	return "", false
}
