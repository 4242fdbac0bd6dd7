// controllers/invoice.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nailspa-backend/services"
	"nailspa-backend/utils"
)

// BillController serves saved bills and the draft editor.
type BillController struct {
	billing   *services.BillingService
	analytics *services.Analytics
	log       *zap.Logger
	clock
}

func NewBillController(billing *services.BillingService, analytics *services.Analytics, log *zap.Logger) *BillController {
	return &BillController{billing: billing, analytics: analytics, log: log.Named("bills"), clock: systemClock()}
}

// GetBills lists bills newest first, filtered by customer and day
func (bc *BillController) GetBills(c *gin.Context) {
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := bc.analytics.Search(bc.billing.List(), services.BillQuery{
		Customer: c.Query("customer"),
		Day:      c.Query("date"),
		Offset:   offset,
		Limit:    limit,
	}, bc.now())
	if err != nil {
		respondError(c, bc.log, err, "")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetBill retrieves a specific bill
func (bc *BillController) GetBill(c *gin.Context) {
	bill, err := bc.billing.Get(c.Param("id"))
	if err != nil {
		respondError(c, bc.log, err, "Bill not found")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// CreateBill saves a draft. A draft carrying a billId re-saves that bill.
func (bc *BillController) CreateBill(c *gin.Context) {
	var draft services.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	bc.save(c, draft)
}

// UpdateBill saves a draft under the bill id from the path
func (bc *BillController) UpdateBill(c *gin.Context) {
	var draft services.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	id := c.Param("id")
	if _, err := bc.billing.Get(id); err != nil {
		respondError(c, bc.log, err, "Bill not found")
		return
	}
	draft.BillID = id
	bc.save(c, draft)
}

func (bc *BillController) save(c *gin.Context, draft services.Draft) {
	bill, created, err := bc.billing.Save(c.Request.Context(), draft)
	if err != nil {
		respondError(c, bc.log, err, "Bill not found")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, bill)
}

// DeleteBill removes a bill
func (bc *BillController) DeleteBill(c *gin.Context) {
	if err := bc.billing.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, bc.log, err, "Bill not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &services.ValidationError{Field: key, Message: "must be a non-negative integer"}
	}
	return v, nil
}
