package catalog

// Variant is one sellable size/preparation of a menu item.
type Variant struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddOnOption is an optional extra offered on a menu item.
type AddOnOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuItem is one catalog entry with its ordered variants.
type MenuItem struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	CategoryID string        `json:"category_id"`
	Variants   []Variant     `json:"variants"`
	AddOns     []AddOnOption `json:"add_ons,omitempty"`
}

// Category groups menu items for the terminal's filter strip.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// PaymentMethod is one way a ticket can be paid. Type is the coarse tag
// the terminal's quick buttons use: cash, card, online, bank or other.
type PaymentMethod struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}
