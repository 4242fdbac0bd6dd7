package services

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"nailspa-backend/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Draft is an unsaved bill being edited. Clients post it back with every
// operation; it is never persisted.
type Draft struct {
	BillID        string               `json:"billId,omitempty"`
	CustomerName  string               `json:"customerName"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Items         []models.ServiceItem `json:"items"`
	DiscountValue float64              `json:"discountValue"`
	DiscountType  models.DiscountType  `json:"discountType"`
}

type OpType string

const (
	OpSelectService  OpType = "select_service"
	OpChangeVariant  OpType = "change_variant"
	OpChangeQuantity OpType = "change_quantity"
	OpAddLine        OpType = "add_line"
	OpRemoveLine     OpType = "remove_line"
	OpSetDiscount    OpType = "set_discount"
)

// DraftOp is one editor action. Only the fields relevant to Type are read.
type DraftOp struct {
	Type          OpType  `json:"type" binding:"required"`
	Index         int     `json:"index"`
	ServiceID     string  `json:"serviceId"`
	VariantName   string  `json:"variantName"`
	Quantity      int     `json:"quantity"`
	DiscountValue float64 `json:"discountValue"`
	DiscountType  string  `json:"discountType"`
}

func blankLine() models.ServiceItem {
	return models.ServiceItem{ID: uuid.NewString(), Quantity: 1}
}

// NewDraft starts an empty bill dated now with one blank line.
func NewDraft(now time.Time) Draft {
	return Draft{
		Date:         now.Format(dateLayout),
		Time:         now.Format(timeLayout),
		Items:        []models.ServiceItem{blankLine()},
		DiscountType: models.DiscountAmount,
	}
}

// DraftFromBill opens a saved bill for editing. Date and time are split in loc.
func DraftFromBill(bill models.Bill, loc *time.Location) Draft {
	items := make([]models.ServiceItem, len(bill.Items))
	copy(items, bill.Items)
	bill.Items = items
	bill.Normalize()

	local := bill.Date.In(loc)
	return Draft{
		BillID:        bill.ID,
		CustomerName:  bill.CustomerName,
		Date:          local.Format(dateLayout),
		Time:          local.Format(timeLayout),
		Items:         bill.Items,
		DiscountValue: bill.DiscountValue,
		DiscountType:  bill.DiscountType,
	}
}

// Normalize applies the same defaults as a loaded bill.
func (d *Draft) Normalize() {
	if d.Items == nil {
		d.Items = []models.ServiceItem{}
	}
	for i := range d.Items {
		if d.Items[i].Quantity < 1 {
			d.Items[i].Quantity = 1
		}
	}
	d.DiscountType = models.ParseDiscountType(string(d.DiscountType))
	d.DiscountValue = clampDiscount(d.DiscountValue)
}

func clampDiscount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func (d *Draft) inRange(index int) bool {
	return index >= 0 && index < len(d.Items)
}

// SelectService points line index at serviceID, resetting quantity to 1 and
// copying name and price from the catalog. Unknown ids are ignored.
func (d *Draft) SelectService(cat Catalog, index int, serviceID string) {
	if !d.inRange(index) {
		return
	}
	svc, ok := cat.FindService(serviceID)
	if !ok {
		return
	}
	variantName := ""
	if v, ok := svc.DefaultVariant(); ok {
		variantName = v.Name
	}
	unit, ok := svc.UnitPrice(variantName)
	if !ok {
		return
	}

	item := &d.Items[index]
	item.ServiceID = svc.ID
	item.Name = svc.Name
	item.VariantName = variantName
	item.Quantity = 1
	item.Price = unit
}

// ChangeVariant switches a variable-price line to variantName at its current quantity.
func (d *Draft) ChangeVariant(cat Catalog, index int, variantName string) {
	if !d.inRange(index) {
		return
	}
	item := &d.Items[index]
	svc, ok := cat.FindService(item.ServiceID)
	if !ok || !svc.IsVariable() {
		return
	}
	v, ok := svc.FindVariant(variantName)
	if !ok {
		return
	}
	price, ok := linePrice(v.Price, item.Quantity)
	if !ok {
		return
	}
	item.VariantName = v.Name
	item.Price = price
}

// ChangeQuantity re-prices the line at quantity q. Lines whose service or
// variant no longer resolves keep their snapshot.
func (d *Draft) ChangeQuantity(cat Catalog, index int, q int) {
	if q < 1 || !d.inRange(index) {
		return
	}
	item := &d.Items[index]
	_, unit, ok := resolveUnit(cat, item.ServiceID, item.VariantName)
	if !ok {
		return
	}
	price, ok := linePrice(unit, q)
	if !ok {
		return
	}
	item.Quantity = q
	item.Price = price
}

// linePrice extends unit by q, failing when the product does not fit in int64.
func linePrice(unit int64, q int) (int64, bool) {
	if q < 1 || unit < 0 {
		return 0, false
	}
	if unit != 0 && int64(q) > math.MaxInt64/unit {
		return 0, false
	}
	return unit * int64(q), true
}

func (d *Draft) AddLine() {
	d.Items = append(d.Items, blankLine())
}

func (d *Draft) RemoveLine(index int) {
	if !d.inRange(index) {
		return
	}
	d.Items = append(d.Items[:index:index], d.Items[index+1:]...)
}

func (d *Draft) SetDiscount(value float64, discountType string) {
	d.DiscountValue = clampDiscount(value)
	d.DiscountType = models.ParseDiscountType(discountType)
}

// Apply runs op against the draft. Only an unknown op type is an error.
func (d *Draft) Apply(cat Catalog, op DraftOp) error {
	switch op.Type {
	case OpSelectService:
		d.SelectService(cat, op.Index, op.ServiceID)
	case OpChangeVariant:
		d.ChangeVariant(cat, op.Index, op.VariantName)
	case OpChangeQuantity:
		d.ChangeQuantity(cat, op.Index, op.Quantity)
	case OpAddLine:
		d.AddLine()
	case OpRemoveLine:
		d.RemoveLine(op.Index)
	case OpSetDiscount:
		d.SetDiscount(op.DiscountValue, op.DiscountType)
	default:
		return &ValidationError{Field: "type", Message: "unknown operation " + string(op.Type)}
	}
	return nil
}

// Totals computes the money summary over every line, blank ones included.
func (d Draft) Totals() Totals {
	return Compute(d.Items, d.DiscountValue, d.DiscountType)
}

// Finalize validates the draft and builds the bill to store. The bill id is
// the draft's BillID, or a new one when empty.
func (d Draft) Finalize(loc *time.Location) (models.Bill, error) {
	d.Normalize()

	name := strings.TrimSpace(d.CustomerName)
	if name == "" {
		return models.Bill{}, ErrCustomerNameRequired
	}

	items := make([]models.ServiceItem, 0, len(d.Items))
	for _, item := range d.Items {
		if item.ServiceID != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return models.Bill{}, ErrNoServiceItems
	}

	date, err := time.ParseInLocation(dateLayout+" "+timeLayout, strings.TrimSpace(d.Date)+" "+strings.TrimSpace(d.Time), loc)
	if err != nil {
		return models.Bill{}, ErrInvalidDate
	}

	id := d.BillID
	if id == "" {
		id = uuid.NewString()
	}

	return models.Bill{
		ID:            id,
		CustomerName:  name,
		Date:          date.UTC(),
		Items:         items,
		Total:         Compute(items, d.DiscountValue, d.DiscountType).Total,
		DiscountValue: d.DiscountValue,
		DiscountType:  d.DiscountType,
	}, nil
}

// LineState describes how a client may edit a line.
type LineState struct {
	Resolved         bool     `json:"resolved"`
	QuantityEditable bool     `json:"quantityEditable"`
	Variants         []string `json:"variants,omitempty"`
	UnitPrice        int64    `json:"unitPrice,omitempty"`
}

// Preview is a draft with its totals and per-line state.
type Preview struct {
	Draft  Draft       `json:"draft"`
	Totals Totals      `json:"totals"`
	Lines  []LineState `json:"lines"`
}

func BuildPreview(cat Catalog, d Draft) Preview {
	lines := make([]LineState, len(d.Items))
	for i, item := range d.Items {
		svc, unit, ok := resolveUnit(cat, item.ServiceID, item.VariantName)
		if !ok {
			continue
		}
		state := LineState{Resolved: true, QuantityEditable: svc.AllowQuantity, UnitPrice: unit}
		if svc.IsVariable() {
			state.Variants = svc.VariantNames()
		}
		lines[i] = state
	}
	return Preview{Draft: d, Totals: d.Totals(), Lines: lines}
}
