package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nailspa-backend/models"
	"nailspa-backend/store"
	"nailspa-backend/utils"
)

// BillingService opens, edits and saves drafts against the catalog and bill store.
type BillingService struct {
	catalog Catalog
	bills   *store.BillStore
	loc     *time.Location
	log     *zap.Logger
	now     func() time.Time
}

func NewBillingService(catalog Catalog, bills *store.BillStore, loc *time.Location, log *zap.Logger) *BillingService {
	return &BillingService{
		catalog: catalog,
		bills:   bills,
		loc:     loc,
		log:     log.Named("billing"),
		now:     time.Now,
	}
}

func (s *BillingService) Location() *time.Location {
	return s.loc
}

// NewDraft returns a blank draft dated now in the shop time zone.
func (s *BillingService) NewDraft() Preview {
	return BuildPreview(s.catalog, NewDraft(s.now().In(s.loc)))
}

// OpenDraft loads a saved bill into a draft.
func (s *BillingService) OpenDraft(id string) (Preview, error) {
	bill, err := s.bills.Get(id)
	if err != nil {
		return Preview{}, err
	}
	return BuildPreview(s.catalog, DraftFromBill(bill, s.loc)), nil
}

// Apply runs one editor operation and returns the updated preview.
func (s *BillingService) Apply(d Draft, op DraftOp) (Preview, error) {
	d.Normalize()
	if err := d.Apply(s.catalog, op); err != nil {
		return Preview{}, err
	}
	return BuildPreview(s.catalog, d), nil
}

func (s *BillingService) Preview(d Draft) Preview {
	d.Normalize()
	return BuildPreview(s.catalog, d)
}

// Save validates d and upserts the resulting bill. A draft whose BillID is
// unknown to the store is inserted under that id.
func (s *BillingService) Save(ctx context.Context, d Draft) (models.Bill, bool, error) {
	bill, err := d.Finalize(s.loc)
	if err != nil {
		return models.Bill{}, false, err
	}

	created := s.bills.Upsert(ctx, bill)
	mode := "update"
	if created {
		mode = "create"
	}
	utils.BillsSaved.WithLabelValues(mode).Inc()
	s.log.Info("bill saved",
		zap.String("id", bill.ID),
		zap.String("mode", mode),
		zap.Int64("total", bill.Total))
	return bill, created, nil
}

func (s *BillingService) Delete(ctx context.Context, id string) error {
	if err := s.bills.Delete(ctx, id); err != nil {
		return err
	}
	utils.BillsDeleted.Inc()
	s.log.Info("bill deleted", zap.String("id", id))
	return nil
}

func (s *BillingService) Get(id string) (models.Bill, error) {
	return s.bills.Get(id)
}

// List returns every saved bill in stored order.
func (s *BillingService) List() []models.Bill {
	return s.bills.List()
}
