package ticket

import "testing"

func TestAddLine_SameVariantMerges(t *testing.T) {
	tk := New("Ticket 1")

	tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)
	tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)

	if len(tk.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(tk.Lines))
	}
	if tk.Lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", tk.Lines[0].Quantity)
	}
}

func TestAddLine_DifferentVariantsStaySeparate(t *testing.T) {
	tk := New("Ticket 1")

	tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)
	tk.AddLine("item-1", "Masala Dosa", "var-2", "Large", 160)

	if len(tk.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(tk.Lines))
	}
}

func TestAddLine_CapturesPriceAtAddTime(t *testing.T) {
	tk := New("Ticket 1")

	tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)

	// A later add at a different catalog price must not rewrite the
	// captured unit price.
	tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 150)

	if tk.Lines[0].UnitPrice != 120 {
		t.Errorf("expected captured price 120, got %v", tk.Lines[0].UnitPrice)
	}
}

func TestChangeQuantity_FloorsAtOne(t *testing.T) {
	tk := New("Ticket 1")
	line := tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)
	tk.ChangeQuantity(line.ID, 2) // quantity 3

	tk.ChangeQuantity(line.ID, -999)

	if len(tk.Lines) != 1 {
		t.Fatalf("line must never be removed by a quantity change")
	}
	if line.Quantity != 1 {
		t.Errorf("expected quantity floored at 1, got %d", line.Quantity)
	}
}

func TestChangeQuantity_UnknownLineIsNoop(t *testing.T) {
	tk := New("Ticket 1")
	tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)

	tk.ChangeQuantity("no-such-line", 5)

	if tk.Lines[0].Quantity != 1 {
		t.Errorf("unexpected quantity change: %d", tk.Lines[0].Quantity)
	}
}

func TestRemoveLine(t *testing.T) {
	tk := New("Ticket 1")
	line := tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)
	tk.ChangeQuantity(line.ID, 4)

	tk.RemoveLine(line.ID)

	if len(tk.Lines) != 0 {
		t.Fatalf("expected empty ticket, got %d lines", len(tk.Lines))
	}

	// Removing again is a no-op.
	tk.RemoveLine(line.ID)
}

func TestSetDiscountAndTip_ClampNegative(t *testing.T) {
	tk := New("Ticket 1")

	tk.SetDiscount(-10)
	tk.SetTip(-5)

	if tk.Discount != 0 {
		t.Errorf("expected discount 0, got %v", tk.Discount)
	}
	if tk.Tip != 0 {
		t.Errorf("expected tip 0, got %v", tk.Tip)
	}
}

func TestSetDiscount_KeepsRawValue(t *testing.T) {
	tk := New("Ticket 1")
	tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 20)

	// Discount above subtotal is stored as entered; capping is a
	// pricing concern.
	tk.SetDiscount(25)

	if tk.Discount != 25 {
		t.Errorf("expected stored discount 25, got %v", tk.Discount)
	}
}

func TestSetOrderType(t *testing.T) {
	tk := New("Ticket 1")

	if tk.OrderType != DineIn {
		t.Fatalf("expected default dine-in, got %s", tk.OrderType)
	}

	tk.SetOrderType(Takeaway)
	if tk.OrderType != Takeaway {
		t.Errorf("expected takeaway, got %s", tk.OrderType)
	}

	tk.SetOrderType("drive-through")
	if tk.OrderType != Takeaway {
		t.Errorf("unknown order type must be ignored, got %s", tk.OrderType)
	}
}

func TestStageTender(t *testing.T) {
	tk := New("Ticket 1")

	tk.StageTender(" 60.50 ")
	v, ok := tk.StagedTender()
	if !ok || v != 60.50 {
		t.Fatalf("expected staged tender 60.50, got %v (ok=%v)", v, ok)
	}

	tk.StageTender("abc")
	if _, ok := tk.StagedTender(); ok {
		t.Errorf("non-numeric tender must clear the staging")
	}

	tk.StageTender("50")
	tk.StageTender("-3")
	if _, ok := tk.StagedTender(); ok {
		t.Errorf("negative tender must clear the staging")
	}
}

func TestAddOns(t *testing.T) {
	tk := New("Ticket 1")
	line := tk.AddLine("item-1", "Masala Dosa", "var-1", "Regular", 120)

	tk.AttachAddOn(line.ID, "Extra Chutney", 15)
	tk.AttachAddOn(line.ID, "Ghee", -5) // clamped to 0

	if got := line.EachPrice(); got != 135 {
		t.Errorf("expected each price 135, got %v", got)
	}

	tk.DetachAddOn(line.ID, 0)
	if got := line.EachPrice(); got != 120 {
		t.Errorf("expected each price 120 after detach, got %v", got)
	}

	tk.DetachAddOn(line.ID, 7) // out of range, no-op
}

func TestAppendPayment_IgnoresNonPositive(t *testing.T) {
	tk := New("Ticket 1")

	tk.AppendPayment(AppliedPayment{MethodID: "m1", Amount: 0})
	tk.AppendPayment(AppliedPayment{MethodID: "m1", Amount: -2})

	if len(tk.Payments) != 0 {
		t.Errorf("expected no payments, got %d", len(tk.Payments))
	}
}

func TestRemovePayment(t *testing.T) {
	tk := New("Ticket 1")
	tk.AppendPayment(AppliedPayment{MethodID: "m1", MethodName: "Cash", MethodType: "cash", Amount: 20})
	tk.AppendPayment(AppliedPayment{MethodID: "m2", MethodName: "Card", MethodType: "card", Amount: 30})

	tk.RemovePayment(0)

	if len(tk.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(tk.Payments))
	}
	if tk.Payments[0].MethodID != "m2" {
		t.Errorf("removed the wrong payment")
	}

	tk.RemovePayment(5) // out of range, no-op
}
