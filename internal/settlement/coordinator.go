package settlement

import (
	"context"
	"errors"
	"log"
	"sync"

	"rasoipos/internal/catalog"
	"rasoipos/internal/order"
	"rasoipos/internal/pricing"
	"rasoipos/internal/ticket"
)

// State of a ticket's settlement.
type State string

const (
	StateOpen      State = "OPEN"
	StateSettled   State = "SETTLED"
	StateFinalized State = "FINALIZED"
)

var (
	ErrNotSettled       = errors.New("ticket is not fully paid")
	ErrEmptyTicket      = errors.New("ticket has no line items")
	ErrFinalizeInFlight = errors.New("finalize already in progress")
)

// Sink persists a finalized ticket as a placed order. All-or-nothing.
type Sink interface {
	PlaceOrder(ctx context.Context, o *order.PlacedOrder) (string, error)
}

// Archiver stores a receipt document after an order is placed.
// Best effort: archive failures never fail the order.
type Archiver interface {
	ArchiveReceipt(ctx context.Context, orderID string, doc any) error
}

// Selection is the outcome of a payment-type pick. Either the payment was
// applied directly, or Candidates must be disambiguated by the cashier.
type Selection struct {
	Applied    bool                    `json:"applied"`
	Candidates []catalog.PaymentMethod `json:"candidates,omitempty"`
}

// Coordinator drives a ticket from OPEN through SETTLED to FINALIZED.
// It never caches totals: every decision re-derives them from the ticket.
type Coordinator struct {
	methods *catalog.Snapshot
	sink    Sink
	archive Archiver
	taxRate float64

	// mu guards only the flags; the sink call itself runs unlocked so a
	// second finalize tap fails fast instead of queueing a duplicate.
	mu         sync.Mutex
	processing map[string]bool
	finalized  map[string]bool
}

func NewCoordinator(methods *catalog.Snapshot, sink Sink, archive Archiver, taxRate float64) *Coordinator {
	return &Coordinator{
		methods:    methods,
		sink:       sink,
		archive:    archive,
		taxRate:    taxRate,
		processing: make(map[string]bool),
		finalized:  make(map[string]bool),
	}
}

// Totals re-derives the ticket's current totals.
func (c *Coordinator) Totals(t *ticket.Ticket) pricing.Totals {
	return pricing.Compute(t, c.taxRate)
}

// StateOf reports where a ticket stands in the settlement lifecycle.
func (c *Coordinator) StateOf(t *ticket.Ticket) State {
	c.mu.Lock()
	done := c.finalized[t.ID]
	c.mu.Unlock()
	if done {
		return StateFinalized
	}
	totals := c.Totals(t)
	if totals.RemainingDue == 0 && len(t.Lines) > 0 {
		return StateSettled
	}
	return StateOpen
}

// --------------------------------------------------
// Payment-type selection
// --------------------------------------------------

// SelectPaymentType resolves a quick-button tap on a payment type.
// One active method of that type applies immediately; several surface a
// disambiguation choice; none is a logged no-op.
func (c *Coordinator) SelectPaymentType(t *ticket.Ticket, methodType string) Selection {
	candidates := c.methods.MethodsByType(methodType)

	switch len(candidates) {
	case 0:
		log.Printf("settlement: no active payment methods of type %q", methodType)
		return Selection{}
	case 1:
		c.ApplyPayment(t, candidates[0])
		return Selection{Applied: true}
	default:
		return Selection{Candidates: candidates}
	}
}

// ApplyPayment commits a payment with the staged tender amount if one is
// set, otherwise the exact remaining due. Overshooting the remaining due
// is allowed: that is how cash tendering produces change.
func (c *Coordinator) ApplyPayment(t *ticket.Ticket, m catalog.PaymentMethod) {
	amount, ok := t.StagedTender()
	if !ok || amount <= 0 {
		amount = c.Totals(t).RemainingDue
	}

	t.AppendPayment(ticket.AppliedPayment{
		MethodID:   m.ID,
		MethodName: m.Name,
		MethodType: m.Type,
		Amount:     amount,
	})
	t.ClearTender()
}

// RemovePayment deletes an applied payment. Totals are re-derived on the
// next read, so no stale figure survives.
func (c *Coordinator) RemovePayment(t *ticket.Ticket, index int) {
	t.RemovePayment(index)
}

// --------------------------------------------------
// Finalize
// --------------------------------------------------

// Finalize persists a settled ticket as a placed order. Preconditions
// (fully paid, at least one line) are checked before anything is mutated,
// and nothing local changes until the sink acknowledges — so a failed
// finalize can be retried freely. A second finalize while one is in
// flight is rejected.
func (c *Coordinator) Finalize(ctx context.Context, t *ticket.Ticket, staffID string) (string, error) {
	if len(t.Lines) == 0 {
		return "", ErrEmptyTicket
	}

	totals := c.Totals(t)
	if totals.RemainingDue > 0 {
		return "", ErrNotSettled
	}

	c.mu.Lock()
	if c.processing[t.ID] {
		c.mu.Unlock()
		return "", ErrFinalizeInFlight
	}
	c.processing[t.ID] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.processing, t.ID)
		c.mu.Unlock()
	}()

	payload := buildPayload(t, staffID, totals)

	orderID, err := c.sink.PlaceOrder(ctx, payload)
	if err != nil {
		// Ticket stays SETTLED; the caller retries explicitly.
		return "", err
	}

	c.mu.Lock()
	c.finalized[t.ID] = true
	c.mu.Unlock()

	if c.archive != nil {
		if err := c.archive.ArchiveReceipt(ctx, orderID, receiptDoc(orderID, t, totals)); err != nil {
			log.Printf("settlement: receipt archive failed for order %s: %v", orderID, err)
		}
	}

	return orderID, nil
}

func buildPayload(t *ticket.Ticket, staffID string, totals pricing.Totals) *order.PlacedOrder {
	payload := &order.PlacedOrder{
		StaffID:        staffID,
		OrderType:      string(t.OrderType),
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.AppliedDiscount,
		TaxAmount:      totals.Tax,
		TotalAmount:    totals.GrandTotal,
	}

	for _, line := range t.Lines {
		payload.Items = append(payload.Items, order.PlacedItem{
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Notes:     line.Notes,
		})
	}

	for _, p := range t.Payments {
		payload.Payments = append(payload.Payments, order.PlacedPayment{
			MethodID: p.MethodID,
			Amount:   p.Amount,
			Status:   "PAID",
		})
	}

	return payload
}

func receiptDoc(orderID string, t *ticket.Ticket, totals pricing.Totals) map[string]any {
	return map[string]any{
		"order_id":   orderID,
		"label":      t.Label,
		"order_type": t.OrderType,
		"lines":      t.Lines,
		"payments":   t.Payments,
		"totals":     totals,
	}
}
