package pricing

import (
	"math"

	"rasoipos/internal/ticket"
)

// Totals is everything the terminal displays for a ticket. Derived on
// every read; nothing here is cached or stored.
type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	AppliedDiscount float64 `json:"applied_discount"`
	TaxableAmount   float64 `json:"taxable_amount"`
	Tax             float64 `json:"tax"`
	Tip             float64 `json:"tip"`
	GrandTotal      float64 `json:"grand_total"`
	TotalPaid       float64 `json:"total_paid"`
	RemainingDue    float64 `json:"remaining_due"`
	ChangeDue       float64 `json:"change_due"`
}

// Compute derives a ticket's totals. Pure and deterministic: same ticket
// state and tax rate always yield the same totals.
//
// The entered discount is capped at the subtotal here, not in the ticket,
// so the ticket keeps the cashier's literal entry even when the subtotal
// later shrinks below it. RemainingDue and ChangeDue are complementary:
// at most one of them is positive.
func Compute(t *ticket.Ticket, taxRate float64) Totals {
	var subtotal float64
	for _, line := range t.Lines {
		subtotal += line.EachPrice() * float64(line.Quantity)
	}
	subtotal = round(subtotal)

	discount := t.Discount
	if discount > subtotal {
		discount = subtotal
	}

	taxable := round(subtotal - discount)
	tax := round(taxable * taxRate)
	grand := round(taxable + tax + t.Tip)

	var paid float64
	for _, p := range t.Payments {
		paid += p.Amount
	}
	paid = round(paid)

	remaining := round(grand - paid)
	change := -remaining
	if remaining < 0 {
		remaining = 0
	}
	if change < 0 {
		change = 0
	}

	return Totals{
		Subtotal:        subtotal,
		AppliedDiscount: discount,
		TaxableAmount:   taxable,
		Tax:             tax,
		Tip:             t.Tip,
		GrandTotal:      grand,
		TotalPaid:       paid,
		RemainingDue:    remaining,
		ChangeDue:       change,
	}
}

// round keeps every figure at cent precision so settlement can compare
// against zero exactly.
func round(v float64) float64 {
	return math.Round(v*100) / 100
}
