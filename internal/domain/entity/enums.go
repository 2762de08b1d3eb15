package entity

type SellerStatus string

const (
	SellerAvailable   SellerStatus = "available"
	SellerDelayed     SellerStatus = "delayed"
	SellerUnavailable SellerStatus = "unavailable"
)

type PriceType string

const (
	PriceExact      PriceType = "exact"
	PriceRange      PriceType = "range"
	PriceNegotiable PriceType = "negotiable"
)

type IntentLevel string

const (
	IntentUrgent    IntentLevel = "urgent"
	IntentBulk      IntentLevel = "bulk"
	IntentExploring IntentLevel = "exploring"
)

type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
)

type EnquiryStatus string

const (
	EnquiryPending   EnquiryStatus = "pending"
	EnquiryResponded EnquiryStatus = "responded"
	EnquiryClosed    EnquiryStatus = "closed"
)

type ClosureReason string

const (
	ClosureDealClosed    ClosureReason = "deal_closed"
	ClosureNotInterested ClosureReason = "not_interested"
	ClosureNoResponse    ClosureReason = "no_response"
)

// Categories is the fixed set a product may be listed under, in display order.
var Categories = []string{
	"Industrial Machinery",
	"Raw Materials",
	"Electronics",
	"Packaging",
	"Chemicals",
	"Textiles",
	"Construction",
	"Agriculture",
	"Other",
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

var sellerStatusLabels = map[SellerStatus]string{
	SellerAvailable:   "Available Today",
	SellerDelayed:     "Responds in 24 hrs",
	SellerUnavailable: "Not Accepting Enquiries",
}

var priceTypeLabels = map[PriceType]string{
	PriceExact:      "Exact Price",
	PriceRange:      "Price Range",
	PriceNegotiable: "Negotiable",
}

var intentLabels = map[IntentLevel]string{
	IntentUrgent:    "Urgent (24-48 hrs)",
	IntentBulk:      "Bulk Order",
	IntentExploring: "Just Exploring",
}

var intentDescriptions = map[IntentLevel]string{
	IntentUrgent:    "Need within 24-48 hours",
	IntentBulk:      "Large quantity purchase",
	IntentExploring: "Gathering information",
}

var enquiryStatusLabels = map[EnquiryStatus]string{
	EnquiryPending:   "Pending",
	EnquiryResponded: "Responded",
	EnquiryClosed:    "Closed",
}

var closureLabels = map[ClosureReason]string{
	ClosureDealClosed:    "Deal Closed",
	ClosureNotInterested: "Not Interested",
	ClosureNoResponse:    "No Response",
}

var closureDescriptions = map[ClosureReason]string{
	ClosureDealClosed:    "Successfully completed the transaction",
	ClosureNotInterested: "Decided not to proceed",
	ClosureNoResponse:    "Seller did not respond",
}

func (s SellerStatus) Valid() bool {
	_, ok := sellerStatusLabels[s]
	return ok
}

func (s SellerStatus) Label() string {
	return sellerStatusLabels[s]
}

// OrDefault treats a missing status as available, matching how profiles
// created before the field existed are shown.
func (s SellerStatus) OrDefault() SellerStatus {
	if s == "" {
		return SellerAvailable
	}
	return s
}

func (p PriceType) Valid() bool {
	_, ok := priceTypeLabels[p]
	return ok
}

func (p PriceType) Label() string {
	return priceTypeLabels[p]
}

func (i IntentLevel) Valid() bool {
	_, ok := intentLabels[i]
	return ok
}

func (i IntentLevel) Label() string {
	return intentLabels[i]
}

func (i IntentLevel) Description() string {
	return intentDescriptions[i]
}

func (r UserRole) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

func (s EnquiryStatus) Valid() bool {
	_, ok := enquiryStatusLabels[s]
	return ok
}

func (s EnquiryStatus) Label() string {
	return enquiryStatusLabels[s]
}

func (c ClosureReason) Valid() bool {
	_, ok := closureLabels[c]
	return ok
}

func (c ClosureReason) Label() string {
	return closureLabels[c]
}

func (c ClosureReason) Description() string {
	return closureDescriptions[c]
}
