package pos

import (
	"context"
	"errors"
	"log"
	"sync"

	"rasoipos/internal/catalog"
	"rasoipos/internal/order"
	"rasoipos/internal/pricing"
	"rasoipos/internal/settlement"
	"rasoipos/internal/tabs"
	"rasoipos/internal/ticket"
)

var (
	ErrUnknownItem    = errors.New("unknown menu item")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownMethod  = errors.New("unknown payment method")
)

// Loader seeds a ticket from a previously placed, still-open order.
type Loader interface {
	LoadOpenOrder(ctx context.Context, id string) (*order.OpenOrder, error)
}

// Session is one staff member's terminal: the catalog snapshot taken at
// open, the set of tab tickets, and the settlement coordinator. All
// operations act on the active ticket. A mutex serializes operations
// because HTTP requests may interleave; within a session the model stays
// one-action-at-a-time.
type Session struct {
	StaffID  string
	Snapshot *catalog.Snapshot

	mu    sync.Mutex
	set   tabs.TicketSet
	coord *settlement.Coordinator
}

// Manager hands out one session per staff id.
type Manager struct {
	catalogSvc *catalog.Service
	sink       settlement.Sink
	archive    settlement.Archiver
	loader     Loader
	taxRate    float64

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(
	catalogSvc *catalog.Service,
	sink settlement.Sink,
	archive settlement.Archiver,
	loader Loader,
	taxRate float64,
) *Manager {
	return &Manager{
		catalogSvc: catalogSvc,
		sink:       sink,
		archive:    archive,
		loader:     loader,
		taxRate:    taxRate,
		sessions:   make(map[string]*Session),
	}
}

// Session returns the staff member's session, opening one (and taking
// the catalog snapshot) on first use.
func (m *Manager) Session(ctx context.Context, staffID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[staffID]; ok {
		return s, nil
	}

	snap, err := m.catalogSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	s := &Session{
		StaffID:  staffID,
		Snapshot: snap,
		set:      tabs.NewTicketSet(),
		coord:    settlement.NewCoordinator(snap, m.sink, m.archive, m.taxRate),
	}
	m.sessions[staffID] = s
	return s, nil
}

// CloseSession drops a staff member's session, e.g. on logout.
func (m *Manager) CloseSession(staffID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, staffID)
}

// --------------------------------------------------
// Tabs
// --------------------------------------------------

// TicketView is what the terminal renders per tab.
type TicketView struct {
	Ticket *ticket.Ticket   `json:"ticket"`
	Totals pricing.Totals   `json:"totals"`
	State  settlement.State `json:"state"`
	Active bool             `json:"active"`
}

func (s *Session) ListTickets() []TicketView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]TicketView, 0, s.set.Len())
	for _, t := range s.set.Tickets() {
		views = append(views, TicketView{
			Ticket: t,
			Totals: s.coord.Totals(t),
			State:  s.coord.StateOf(t),
			Active: t.ID == s.set.ActiveID(),
		})
	}
	return views
}

func (s *Session) CreateTicket() *ticket.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = s.set.CreateTicket()
	return s.set.Active()
}

func (s *Session) CloseTicket(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = s.set.CloseTicket(id)
}

func (s *Session) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = s.set.SetActive(id)
}

func (s *Session) ActiveView() TicketView {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.set.Active()
	return TicketView{
		Ticket: t,
		Totals: s.coord.Totals(t),
		State:  s.coord.StateOf(t),
		Active: true,
	}
}

// --------------------------------------------------
// Line items
// --------------------------------------------------

// AddResult reports what a tap on a menu item did: either a line was
// added, or the item has several variants and the cashier must pick one.
type AddResult struct {
	Line     *ticket.LineItem  `json:"line,omitempty"`
	Variants []catalog.Variant `json:"variants,omitempty"`
}

// AddItem handles a tap on a catalog entry. A single-variant item is
// added immediately; a multi-variant item without an explicit variantID
// surfaces the choice — there is no default-variant guess.
func (s *Session) AddItem(itemID, variantID string) (AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.Snapshot.Item(itemID)
	if !ok {
		log.Printf("pos: add for unknown item %s ignored", itemID)
		return AddResult{}, ErrUnknownItem
	}

	var chosen catalog.Variant
	switch {
	case variantID != "":
		found := false
		for _, v := range item.Variants {
			if v.ID == variantID {
				chosen, found = v, true
				break
			}
		}
		if !found {
			log.Printf("pos: add for unknown variant %s on item %s ignored", variantID, itemID)
			return AddResult{}, ErrUnknownVariant
		}
	case len(item.Variants) == 1:
		chosen = item.Variants[0]
	default:
		return AddResult{Variants: item.Variants}, nil
	}

	line := s.set.Active().AddLine(item.ID, item.Name, chosen.ID, chosen.Name, chosen.Price)
	return AddResult{Line: line}, nil
}

func (s *Session) ChangeQuantity(lineID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().ChangeQuantity(lineID, delta)
}

func (s *Session) RemoveLine(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().RemoveLine(lineID)
}

func (s *Session) SetNotes(lineID, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().SetNotes(lineID, notes)
}

// AttachAddOn resolves an add-on offered on the line's catalog entry and
// attaches it with its price captured now.
func (s *Session) AttachAddOn(lineID, addOnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.set.Active()
	var itemID string
	for _, l := range t.Lines {
		if l.ID == lineID {
			itemID = l.ItemID
			break
		}
	}
	if itemID == "" {
		return nil // unknown line, no-op
	}

	item, ok := s.Snapshot.Item(itemID)
	if !ok {
		return nil
	}
	for _, a := range item.AddOns {
		if a.ID == addOnID {
			t.AttachAddOn(lineID, a.Name, a.Price)
			return nil
		}
	}

	log.Printf("pos: add-on %s not offered on item %s, ignored", addOnID, itemID)
	return nil
}

func (s *Session) DetachAddOn(lineID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().DetachAddOn(lineID, index)
}

// --------------------------------------------------
// Ticket-level fields
// --------------------------------------------------

func (s *Session) SetDiscount(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().SetDiscount(amount)
}

func (s *Session) SetTip(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().SetTip(amount)
}

func (s *Session) SetOrderType(ot ticket.OrderType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().SetOrderType(ot)
}

func (s *Session) StageTender(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().StageTender(raw)
}

func (s *Session) SetCategoryFilter(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set.Active().CategoryFilter = categoryID
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------

func (s *Session) SelectPaymentType(methodType string) settlement.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.coord.SelectPaymentType(s.set.Active(), methodType)
}

// ApplyPaymentMethod commits a payment with a specific method, used after
// a disambiguation choice.
func (s *Session) ApplyPaymentMethod(methodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.Snapshot.Method(methodID)
	if !ok {
		log.Printf("pos: payment with unknown method %s ignored", methodID)
		return ErrUnknownMethod
	}
	s.coord.ApplyPayment(s.set.Active(), m)
	return nil
}

func (s *Session) RemovePayment(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coord.RemovePayment(s.set.Active(), index)
}

// Finalize persists the active ticket and, on success, closes its tab
// (the set tops itself up, so the terminal is never left without a
// ticket). The coordinator's preconditions and in-flight guard apply.
func (s *Session) Finalize(ctx context.Context) (string, error) {
	s.mu.Lock()
	t := s.set.Active()
	s.mu.Unlock()

	// The sink call runs outside the session lock so other tabs stay
	// usable while persistence is in flight.
	orderID, err := s.coord.Finalize(ctx, t, s.StaffID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.set = s.set.CloseTicket(t.ID)
	s.mu.Unlock()

	return orderID, nil
}

// --------------------------------------------------
// Continuation of stored orders
// --------------------------------------------------

// LoadOrder seeds a new active ticket from a stored open order.
func (s *Session) LoadOrder(ctx context.Context, loader Loader, orderID string) (*ticket.Ticket, error) {
	stored, err := loader.LoadOpenOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := ticket.New("Order " + stored.ID)
	t.SetOrderType(ticket.OrderType(stored.OrderType))
	t.SetDiscount(stored.Discount)

	for _, item := range stored.Items {
		line := t.AddLine(item.ItemID, item.ItemName, item.VariantID, item.VariantName, item.UnitPrice)
		if item.Quantity > 1 {
			t.ChangeQuantity(line.ID, item.Quantity-1)
		}
		if item.Notes != "" {
			t.SetNotes(line.ID, item.Notes)
		}
	}

	s.set = s.set.Adopt(t)
	return t, nil
}
