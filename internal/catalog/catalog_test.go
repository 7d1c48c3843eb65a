package catalog

import (
	"context"
	"testing"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	items      []MenuItem
	categories []Category
	methods    []PaymentMethod
}

func (m *MockRepository) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	return m.items, nil
}

func (m *MockRepository) ListCategories(ctx context.Context) ([]Category, error) {
	return m.categories, nil
}

func (m *MockRepository) ListActivePaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return m.methods, nil
}

func testRepo() *MockRepository {
	return &MockRepository{
		items: []MenuItem{
			{
				ID:         "item-1",
				Name:       "Masala Dosa",
				CategoryID: "cat-1",
				Variants: []Variant{
					{ID: "var-1", Name: "Regular", Price: 120},
					{ID: "var-2", Name: "Large", Price: 160},
				},
			},
			{
				ID:         "item-2",
				Name:       "Filter Coffee",
				CategoryID: "cat-2",
				Variants: []Variant{
					{ID: "var-3", Name: "Small", Price: 40},
				},
			},
			{
				ID:         "item-3",
				Name:       "Broken Item",
				CategoryID: "cat-1",
				// no variants: invalid catalog state
			},
		},
		categories: []Category{
			{ID: "cat-1", Name: "South Indian", Position: 1},
			{ID: "cat-2", Name: "Beverages", Position: 2},
		},
		methods: []PaymentMethod{
			{ID: "m-1", Name: "Cash", Type: "cash", Active: true},
			{ID: "m-2", Name: "Visa", Type: "card", Active: true},
			{ID: "m-3", Name: "Mastercard", Type: "card", Active: true},
		},
	}
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestLoadSnapshot_SkipsZeroVariantItems(t *testing.T) {
	service := NewService(testRepo())

	snap, err := service.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 sellable items, got %d", len(snap.Items))
	}
	if _, ok := snap.Item("item-3"); ok {
		t.Errorf("zero-variant item must not be in the snapshot")
	}
}

func TestSnapshot_VariantLookup(t *testing.T) {
	service := NewService(testRepo())
	snap, _ := service.LoadSnapshot(context.Background())

	item, v, ok := snap.Variant("var-2")
	if !ok {
		t.Fatal("expected variant var-2 to resolve")
	}
	if item.ID != "item-1" {
		t.Errorf("expected parent item-1, got %s", item.ID)
	}
	if v.Price != 160 {
		t.Errorf("expected price 160, got %v", v.Price)
	}

	if _, _, ok := snap.Variant("no-such-variant"); ok {
		t.Errorf("unknown variant must not resolve")
	}
}

func TestSnapshot_MethodsByType(t *testing.T) {
	service := NewService(testRepo())
	snap, _ := service.LoadSnapshot(context.Background())

	cards := snap.MethodsByType("card")
	if len(cards) != 2 {
		t.Fatalf("expected 2 card methods, got %d", len(cards))
	}

	cash := snap.MethodsByType("cash")
	if len(cash) != 1 {
		t.Fatalf("expected 1 cash method, got %d", len(cash))
	}

	if got := snap.MethodsByType("online"); len(got) != 0 {
		t.Errorf("expected no online methods, got %d", len(got))
	}
}
