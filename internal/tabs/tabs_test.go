package tabs

import "testing"

func TestNewTicketSet_StartsWithOneActiveTicket(t *testing.T) {
	s := NewTicketSet()

	if s.Len() != 1 {
		t.Fatalf("expected 1 ticket, got %d", s.Len())
	}
	if s.Active() == nil {
		t.Fatal("expected an active ticket")
	}
	if s.Active().Label != "Ticket 1" {
		t.Errorf("expected label 'Ticket 1', got %q", s.Active().Label)
	}
}

func TestCreateTicket_AppendsAndActivates(t *testing.T) {
	s := NewTicketSet()
	s2 := s.CreateTicket()

	if s2.Len() != 2 {
		t.Fatalf("expected 2 tickets, got %d", s2.Len())
	}
	if s2.Active().ID != s2.Tickets()[1].ID {
		t.Errorf("new ticket must become active")
	}

	// The original value is untouched.
	if s.Len() != 1 {
		t.Errorf("transition mutated the original set")
	}
}

func TestCloseTicket_LastTicketIsReplacedNotRemoved(t *testing.T) {
	s := NewTicketSet()
	only := s.Active()
	only.AddLine("item-1", "Thali", "var-1", "Regular", 100)

	s2 := s.CloseTicket(only.ID)

	if s2.Len() != 1 {
		t.Fatalf("set must never be empty, got %d tickets", s2.Len())
	}
	if s2.Active().ID == only.ID {
		t.Errorf("expected a fresh ticket, got the closed one back")
	}
	if len(s2.Active().Lines) != 0 {
		t.Errorf("replacement ticket must be empty")
	}
}

func TestCloseTicket_ActivatesLeftNeighbour(t *testing.T) {
	s := NewTicketSet().CreateTicket().CreateTicket() // Ticket 1..3, 3 active
	tickets := s.Tickets()

	s2 := s.CloseTicket(tickets[2].ID)

	if s2.Len() != 2 {
		t.Fatalf("expected 2 tickets, got %d", s2.Len())
	}
	if s2.Active().ID != tickets[1].ID {
		t.Errorf("expected left neighbour active, got %s", s2.Active().Label)
	}
}

func TestCloseTicket_FirstTicketClampsToIndexZero(t *testing.T) {
	s := NewTicketSet().CreateTicket() // Ticket 1, Ticket 2 (active)
	first := s.Tickets()[0]
	s = s.SetActive(first.ID)

	s2 := s.CloseTicket(first.ID)

	if s2.Active().ID != s2.Tickets()[0].ID {
		t.Errorf("expected first remaining ticket active")
	}
}

func TestCloseTicket_InactiveTicketKeepsSelection(t *testing.T) {
	s := NewTicketSet().CreateTicket() // Ticket 2 active
	first := s.Tickets()[0]
	active := s.Active()

	s2 := s.CloseTicket(first.ID)

	if s2.Active().ID != active.ID {
		t.Errorf("closing an inactive ticket must not change the selection")
	}
}

func TestCloseTicket_UnknownIDIsNoop(t *testing.T) {
	s := NewTicketSet()
	s2 := s.CloseTicket("no-such-ticket")

	if s2.Len() != 1 || s2.Active().ID != s.Active().ID {
		t.Errorf("unknown id must leave the set unchanged")
	}
}

func TestSetActive(t *testing.T) {
	s := NewTicketSet().CreateTicket()
	first := s.Tickets()[0]

	s2 := s.SetActive(first.ID)
	if s2.Active().ID != first.ID {
		t.Errorf("expected first ticket active")
	}

	s3 := s2.SetActive("no-such-ticket")
	if s3.Active().ID != first.ID {
		t.Errorf("unknown id must leave the selection unchanged")
	}
}

func TestLabelsKeepCountingAcrossReplacement(t *testing.T) {
	s := NewTicketSet()                // Ticket 1
	s = s.CloseTicket(s.Active().ID)   // replaced by Ticket 2
	s = s.CreateTicket()               // Ticket 3

	if got := s.Tickets()[0].Label; got != "Ticket 2" {
		t.Errorf("expected 'Ticket 2', got %q", got)
	}
	if got := s.Tickets()[1].Label; got != "Ticket 3" {
		t.Errorf("expected 'Ticket 3', got %q", got)
	}
}
