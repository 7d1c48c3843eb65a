package ticket

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// New creates an empty ticket with the default order type.
func New(label string) *Ticket {
	return &Ticket{
		ID:        uuid.New().String(),
		Label:     label,
		OrderType: DineIn,
		Lines:     []*LineItem{},
		Payments:  []AppliedPayment{},
	}
}

// --------------------------------------------------
// Line-item operations
// --------------------------------------------------

// AddLine adds one unit of a variant. If the variant is already on the
// ticket its quantity is incremented; otherwise a new line is appended
// with the price captured now. Always succeeds.
func (t *Ticket) AddLine(itemID, itemName, variantID, variantName string, price float64) *LineItem {
	for _, line := range t.Lines {
		if line.VariantID == variantID {
			line.Quantity++
			return line
		}
	}

	line := &LineItem{
		ID:          uuid.New().String(),
		ItemID:      itemID,
		ItemName:    itemName,
		VariantID:   variantID,
		VariantName: variantName,
		UnitPrice:   price,
		Quantity:    1,
	}
	t.Lines = append(t.Lines, line)
	return line
}

// ChangeQuantity adjusts a line's quantity by delta, flooring at 1.
// Dropping to zero never happens here; removal is an explicit action.
// Unknown line ids are ignored.
func (t *Ticket) ChangeQuantity(lineID string, delta int) {
	line := t.findLine(lineID)
	if line == nil {
		return
	}

	q := line.Quantity + delta
	if q < 1 {
		q = 1
	}
	line.Quantity = q
}

// RemoveLine deletes a line regardless of its quantity. No-op if missing.
func (t *Ticket) RemoveLine(lineID string) {
	for i, line := range t.Lines {
		if line.ID == lineID {
			t.Lines = append(t.Lines[:i], t.Lines[i+1:]...)
			return
		}
	}
}

// SetNotes replaces the customization notes on a line.
func (t *Ticket) SetNotes(lineID, notes string) {
	if line := t.findLine(lineID); line != nil {
		line.Notes = notes
	}
}

// AttachAddOn appends an add-on to a line with its price captured now.
// Negative prices are clamped to zero.
func (t *Ticket) AttachAddOn(lineID, name string, price float64) {
	line := t.findLine(lineID)
	if line == nil {
		return
	}
	if price < 0 {
		price = 0
	}
	line.AddOns = append(line.AddOns, AddOn{Name: name, Price: price})
}

// DetachAddOn removes the add-on at the given position on a line.
func (t *Ticket) DetachAddOn(lineID string, index int) {
	line := t.findLine(lineID)
	if line == nil || index < 0 || index >= len(line.AddOns) {
		return
	}
	line.AddOns = append(line.AddOns[:index], line.AddOns[index+1:]...)
}

func (t *Ticket) findLine(lineID string) *LineItem {
	for _, line := range t.Lines {
		if line.ID == lineID {
			return line
		}
	}
	return nil
}

// --------------------------------------------------
// Ticket-level fields
// --------------------------------------------------

// SetDiscount stores the entered flat discount, clamped to >= 0.
// The raw value is kept even if the subtotal later shrinks below it;
// capping against the subtotal happens at pricing time.
func (t *Ticket) SetDiscount(amount float64) {
	if amount < 0 {
		amount = 0
	}
	t.Discount = amount
}

// SetTip stores the tip amount, clamped to >= 0.
func (t *Ticket) SetTip(amount float64) {
	if amount < 0 {
		amount = 0
	}
	t.Tip = amount
}

// SetOrderType switches between dine-in and takeaway. Unknown values
// are ignored.
func (t *Ticket) SetOrderType(ot OrderType) {
	if ot != DineIn && ot != Takeaway {
		return
	}
	t.OrderType = ot
}

// --------------------------------------------------
// Tender staging
// --------------------------------------------------

// StageTender parses the free-text tender entry. Anything that is not a
// positive number clears the staged tender instead of propagating an error.
func (t *Ticket) StageTender(raw string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		t.tender = nil
		return
	}
	t.tender = &v
}

// ClearTender drops any staged tender amount.
func (t *Ticket) ClearTender() {
	t.tender = nil
}

// StagedTender reports the staged tender amount, if any.
func (t *Ticket) StagedTender() (float64, bool) {
	if t.tender == nil {
		return 0, false
	}
	return *t.tender, true
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

// AppendPayment records a committed payment. Non-positive amounts are
// ignored; an applied payment is immutable afterwards.
func (t *Ticket) AppendPayment(p AppliedPayment) {
	if p.Amount <= 0 {
		return
	}
	t.Payments = append(t.Payments, p)
}

// RemovePayment deletes the payment at the given position. Out-of-range
// indexes are ignored.
func (t *Ticket) RemovePayment(index int) {
	if index < 0 || index >= len(t.Payments) {
		return
	}
	t.Payments = append(t.Payments[:index], t.Payments[index+1:]...)
}
