package ticket

// OrderType is how the order will be served.
type OrderType string

const (
	DineIn   OrderType = "dine-in"
	Takeaway OrderType = "takeaway"
)

// LineItem is one chosen variant inside a Ticket.
// UnitPrice is captured at add time and never re-read from the catalog.
type LineItem struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"item_id"`
	ItemName    string  `json:"item_name"`
	VariantID   string  `json:"variant_id"`
	VariantName string  `json:"variant_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Notes       string  `json:"notes,omitempty"`
	AddOns      []AddOn `json:"add_ons,omitempty"`
}

// AddOn is a per-line extra with its name and price captured at attach time.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// EachPrice is the price of one unit of the line including its add-ons.
func (l *LineItem) EachPrice() float64 {
	price := l.UnitPrice
	for _, a := range l.AddOns {
		price += a.Price
	}
	return price
}

// AppliedPayment is one committed payment toward a ticket.
// Immutable once appended; the only edit is removal.
type AppliedPayment struct {
	MethodID   string  `json:"method_id"`
	MethodName string  `json:"method_name"`
	MethodType string  `json:"method_type"`
	Amount     float64 `json:"amount"`
}

// Ticket is one order-in-progress at the terminal.
type Ticket struct {
	ID             string           `json:"id"`
	Label          string           `json:"label"`
	OrderType      OrderType        `json:"order_type"`
	Lines          []*LineItem      `json:"lines"`
	Discount       float64          `json:"discount"`
	Tip            float64          `json:"tip"`
	Payments       []AppliedPayment `json:"payments"`
	CategoryFilter string           `json:"category_filter,omitempty"`

	// tender is the staged (not yet committed) amount for the next payment.
	// nil means no tender staged.
	tender *float64
}
