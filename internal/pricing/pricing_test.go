package pricing

import (
	"testing"

	"rasoipos/internal/ticket"
)

func TestCompute_DiscountCappedAtSubtotal(t *testing.T) {
	tk := ticket.New("Ticket 1")
	tk.AddLine("item-1", "Thali", "var-1", "Regular", 20)
	tk.SetDiscount(25)

	totals := Compute(tk, 0.08)

	if totals.Subtotal != 20 {
		t.Fatalf("expected subtotal 20, got %v", totals.Subtotal)
	}
	if totals.AppliedDiscount != 20 {
		t.Errorf("expected applied discount 20, got %v", totals.AppliedDiscount)
	}
	if totals.TaxableAmount != 0 {
		t.Errorf("expected taxable 0, got %v", totals.TaxableAmount)
	}
	if totals.Tax != 0 {
		t.Errorf("expected tax 0, got %v", totals.Tax)
	}
}

func TestCompute_TaxAndTip(t *testing.T) {
	tk := ticket.New("Ticket 1")
	tk.AddLine("item-1", "Thali", "var-1", "Regular", 25)
	tk.ChangeQuantity(tk.Lines[0].ID, 1) // quantity 2 → subtotal 50
	tk.SetTip(5)

	totals := Compute(tk, 0.08)

	if totals.Subtotal != 50 {
		t.Fatalf("expected subtotal 50, got %v", totals.Subtotal)
	}
	if totals.Tax != 4 {
		t.Errorf("expected tax 4, got %v", totals.Tax)
	}
	if totals.GrandTotal != 59 {
		t.Errorf("expected grand total 59, got %v", totals.GrandTotal)
	}
}

func TestCompute_OvershootProducesChange(t *testing.T) {
	tk := ticket.New("Ticket 1")
	tk.AddLine("item-1", "Thali", "var-1", "Regular", 25)
	tk.ChangeQuantity(tk.Lines[0].ID, 1)
	tk.SetTip(5)
	tk.AppendPayment(ticket.AppliedPayment{MethodID: "m1", MethodName: "Cash", MethodType: "cash", Amount: 60})

	totals := Compute(tk, 0.08)

	if totals.RemainingDue != 0 {
		t.Errorf("expected remaining 0, got %v", totals.RemainingDue)
	}
	if totals.ChangeDue != 1 {
		t.Errorf("expected change 1, got %v", totals.ChangeDue)
	}
}

func TestCompute_RemainingAndChangeNeverBothPositive(t *testing.T) {
	cases := []struct {
		name    string
		payment float64
	}{
		{"unpaid", 0},
		{"partial", 30},
		{"exact", 59},
		{"overshoot", 75},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tk := ticket.New("Ticket 1")
			tk.AddLine("item-1", "Thali", "var-1", "Regular", 25)
			tk.ChangeQuantity(tk.Lines[0].ID, 1)
			tk.SetTip(5)
			if tc.payment > 0 {
				tk.AppendPayment(ticket.AppliedPayment{MethodID: "m1", Amount: tc.payment})
			}

			totals := Compute(tk, 0.08)

			if totals.RemainingDue > 0 && totals.ChangeDue > 0 {
				t.Errorf("remaining %v and change %v are both positive", totals.RemainingDue, totals.ChangeDue)
			}
		})
	}
}

func TestCompute_AddOnsPricedPerOccurrence(t *testing.T) {
	tk := ticket.New("Ticket 1")
	line := tk.AddLine("item-1", "Thali", "var-1", "Regular", 100)
	tk.AttachAddOn(line.ID, "Extra Papad", 10)
	tk.ChangeQuantity(line.ID, 2) // quantity 3

	totals := Compute(tk, 0)

	if totals.Subtotal != 330 {
		t.Errorf("expected subtotal 330 (110 x 3), got %v", totals.Subtotal)
	}
}

func TestCompute_CentRounding(t *testing.T) {
	tk := ticket.New("Ticket 1")
	tk.AddLine("item-1", "Filter Coffee", "var-1", "Small", 3.33)
	tk.ChangeQuantity(tk.Lines[0].ID, 2) // 9.99

	totals := Compute(tk, 0.08)

	if totals.Tax != 0.80 {
		t.Errorf("expected tax rounded to 0.80, got %v", totals.Tax)
	}
	if totals.GrandTotal != 10.79 {
		t.Errorf("expected grand total 10.79, got %v", totals.GrandTotal)
	}

	// Paying the displayed total settles the ticket exactly.
	tk.AppendPayment(ticket.AppliedPayment{MethodID: "m1", Amount: 10.79})
	totals = Compute(tk, 0.08)
	if totals.RemainingDue != 0 {
		t.Errorf("expected remaining 0 after exact payment, got %v", totals.RemainingDue)
	}
	if totals.ChangeDue != 0 {
		t.Errorf("expected change 0 after exact payment, got %v", totals.ChangeDue)
	}
}

func TestCompute_EmptyTicket(t *testing.T) {
	tk := ticket.New("Ticket 1")

	totals := Compute(tk, 0.08)

	if totals.Subtotal != 0 || totals.GrandTotal != 0 || totals.RemainingDue != 0 {
		t.Errorf("expected all-zero totals for empty ticket, got %+v", totals)
	}
}
