package catalog

import (
	"context"
	"log"
)

// Snapshot is the read-only view of the catalog a terminal session works
// against. Loaded once per session; catalog edits made elsewhere do not
// reach a running session.
type Snapshot struct {
	Items      []MenuItem      `json:"items"`
	Categories []Category      `json:"categories"`
	Methods    []PaymentMethod `json:"payment_methods"`

	itemsByID    map[string]*MenuItem
	variantOwner map[string]string
	methodsByID  map[string]PaymentMethod
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Load Snapshot (ONCE PER SESSION)
// --------------------------------------------------
func (s *Service) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	methods, err := s.repo.ListActivePaymentMethods(ctx)
	if err != nil {
		return nil, err
	}

	// An item without variants has no price and cannot be sold.
	// Reject at the boundary instead of ever pricing it at zero.
	valid := items[:0]
	for _, item := range items {
		if len(item.Variants) == 0 {
			log.Printf("catalog: skipping item %s (%s): no variants", item.ID, item.Name)
			continue
		}
		valid = append(valid, item)
	}

	snap := &Snapshot{
		Items:        valid,
		Categories:   categories,
		Methods:      methods,
		itemsByID:    make(map[string]*MenuItem, len(valid)),
		variantOwner: make(map[string]string),
		methodsByID:  make(map[string]PaymentMethod, len(methods)),
	}

	for i := range snap.Items {
		item := &snap.Items[i]
		snap.itemsByID[item.ID] = item
		for _, v := range item.Variants {
			snap.variantOwner[v.ID] = item.ID
		}
	}
	for _, m := range methods {
		snap.methodsByID[m.ID] = m
	}

	return snap, nil
}

// --------------------------------------------------
// Snapshot lookups
// --------------------------------------------------

// Item returns a catalog entry by id.
func (s *Snapshot) Item(id string) (*MenuItem, bool) {
	item, ok := s.itemsByID[id]
	return item, ok
}

// Variant resolves a variant id to the variant and its parent item.
func (s *Snapshot) Variant(variantID string) (*MenuItem, Variant, bool) {
	itemID, ok := s.variantOwner[variantID]
	if !ok {
		return nil, Variant{}, false
	}
	item := s.itemsByID[itemID]
	for _, v := range item.Variants {
		if v.ID == variantID {
			return item, v, true
		}
	}
	return nil, Variant{}, false
}

// Method returns an active payment method by id.
func (s *Snapshot) Method(id string) (PaymentMethod, bool) {
	m, ok := s.methodsByID[id]
	return m, ok
}

// MethodsByType returns the active payment methods carrying a type tag.
func (s *Snapshot) MethodsByType(methodType string) []PaymentMethod {
	var out []PaymentMethod
	for _, m := range s.Methods {
		if m.Type == methodType {
			out = append(out, m)
		}
	}
	return out
}
