package tabs

import (
	"fmt"

	"rasoipos/internal/ticket"
)

// TicketSet is the collection of open tickets at one terminal plus the
// active selection. It is an immutable value: every transition returns a
// new set and leaves the receiver untouched, so the tab state machine is
// independent of whatever drives it. The tickets themselves are mutable
// entities; the set only owns membership and ordering.
//
// Invariant: a set is never empty. Closing the last ticket replaces it
// with a fresh one.
type TicketSet struct {
	tickets  []*ticket.Ticket
	activeID string
	nextSeq  int
}

// NewTicketSet returns a set holding one fresh empty ticket, active.
func NewTicketSet() TicketSet {
	s := TicketSet{nextSeq: 1}
	return s.CreateTicket()
}

// Tickets returns the open tickets in insertion order.
func (s TicketSet) Tickets() []*ticket.Ticket {
	return s.tickets
}

// Active returns the currently selected ticket.
func (s TicketSet) Active() *ticket.Ticket {
	for _, t := range s.tickets {
		if t.ID == s.activeID {
			return t
		}
	}
	// Unreachable while the never-empty invariant holds, but never
	// return nil to callers.
	return s.tickets[0]
}

// ActiveID returns the id of the selected ticket.
func (s TicketSet) ActiveID() string {
	return s.activeID
}

// Len returns the number of open tickets.
func (s TicketSet) Len() int {
	return len(s.tickets)
}

// CreateTicket appends a fresh empty dine-in ticket and makes it active.
func (s TicketSet) CreateTicket() TicketSet {
	t := ticket.New(fmt.Sprintf("Ticket %d", s.nextSeq))

	out := s
	out.tickets = append(append([]*ticket.Ticket{}, s.tickets...), t)
	out.activeID = t.ID
	out.nextSeq = s.nextSeq + 1
	return out
}

// Adopt appends an existing ticket (e.g. one seeded from a stored order)
// and makes it active.
func (s TicketSet) Adopt(t *ticket.Ticket) TicketSet {
	out := s
	out.tickets = append(append([]*ticket.Ticket{}, s.tickets...), t)
	out.activeID = t.ID
	out.nextSeq = s.nextSeq + 1
	return out
}

// CloseTicket removes a ticket from the set. Closing the only ticket
// replaces it in place with a fresh empty one. When the closed ticket was
// active, the nearest left neighbour becomes active. Unknown ids no-op.
func (s TicketSet) CloseTicket(id string) TicketSet {
	idx := -1
	for i, t := range s.tickets {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s
	}

	if len(s.tickets) == 1 {
		fresh := ticket.New(fmt.Sprintf("Ticket %d", s.nextSeq))
		return TicketSet{
			tickets:  []*ticket.Ticket{fresh},
			activeID: fresh.ID,
			nextSeq:  s.nextSeq + 1,
		}
	}

	out := s
	out.tickets = append(append([]*ticket.Ticket{}, s.tickets[:idx]...), s.tickets[idx+1:]...)

	if s.activeID == id {
		left := idx - 1
		if left < 0 {
			left = 0
		}
		out.activeID = out.tickets[left].ID
	}
	return out
}

// SetActive selects a ticket by id. Unknown ids leave the selection
// unchanged.
func (s TicketSet) SetActive(id string) TicketSet {
	for _, t := range s.tickets {
		if t.ID == id {
			out := s
			out.activeID = id
			return out
		}
	}
	return s
}
