package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"nailspa-backend/models"
)

// BillStore holds saved bills, newest first.
type BillStore struct {
	mu    sync.RWMutex
	bills []models.Bill
	p     persister
}

func NewBillStore(kv KV, log *zap.Logger) *BillStore {
	return &BillStore{bills: []models.Bill{}, p: persister{kv: kv, log: log.Named("bills")}}
}

// Load replaces the in-memory bills with the persisted record.
func (s *BillStore) Load(ctx context.Context) {
	var bills []models.Bill
	if s.p.load(ctx, KeyBills, &bills) != recordLoaded || bills == nil {
		bills = []models.Bill{}
	}
	normalizeBills(bills)

	s.mu.Lock()
	s.bills = bills
	s.mu.Unlock()
}

// List returns a copy of all bills in stored order.
func (s *BillStore) List() []models.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Bill, len(s.bills))
	for i, b := range s.bills {
		out[i] = cloneBill(b)
	}
	return out
}

func (s *BillStore) Get(id string) (models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneBill(s.bills[i]), nil
	}
	return models.Bill{}, ErrNotFound
}

// Upsert replaces the bill with the same id in place, or inserts it at the
// head. It reports whether the bill was inserted.
func (s *BillStore) Upsert(ctx context.Context, bill models.Bill) bool {
	bill = cloneBill(bill)

	s.mu.Lock()
	defer s.mu.Unlock()
	created := true
	if i := s.indexOf(bill.ID); i >= 0 {
		s.bills[i] = bill
		created = false
	} else {
		s.bills = append([]models.Bill{bill}, s.bills...)
	}
	s.p.save(ctx, KeyBills, s.bills)
	return created
}

func (s *BillStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.bills = append(s.bills[:i:i], s.bills[i+1:]...)
	s.p.save(ctx, KeyBills, s.bills)
	return nil
}

// Restore replaces every bill, as done by a backup import.
func (s *BillStore) Restore(ctx context.Context, bills []models.Bill) {
	restored := make([]models.Bill, len(bills))
	for i, b := range bills {
		restored[i] = cloneBill(b)
	}
	normalizeBills(restored)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = restored
	s.p.save(ctx, KeyBills, s.bills)
}

// Reset drops in-memory bills without persisting.
func (s *BillStore) Reset() {
	s.mu.Lock()
	s.bills = []models.Bill{}
	s.mu.Unlock()
}

func (s *BillStore) indexOf(id string) int {
	for i := range s.bills {
		if s.bills[i].ID == id {
			return i
		}
	}
	return -1
}

func normalizeBills(bills []models.Bill) {
	for i := range bills {
		bills[i].Normalize()
	}
}

func cloneBill(b models.Bill) models.Bill {
	items := make([]models.ServiceItem, len(b.Items))
	copy(items, b.Items)
	b.Items = items
	return b
}
