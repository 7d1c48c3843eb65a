package order

// PlacedOrder is the all-or-nothing payload handed to the persistence
// sink when a ticket is finalized.
type PlacedOrder struct {
	ID             string
	StaffID        string
	OrderType      string
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	TotalAmount    float64
	Items          []PlacedItem
	Payments       []PlacedPayment
}

type PlacedItem struct {
	VariantID string
	Quantity  int
	UnitPrice float64
	Notes     string
}

type PlacedPayment struct {
	MethodID string
	Amount   float64
	Status   string
}

// OpenOrder is a previously placed, not-yet-finalized order loaded back
// to seed a ticket for editing/continuation.
type OpenOrder struct {
	ID        string
	OrderType string
	Discount  float64
	Items     []OpenOrderItem
}

type OpenOrderItem struct {
	VariantID   string
	ItemID      string
	ItemName    string
	VariantName string
	UnitPrice   float64
	Quantity    int
	Notes       string
}
