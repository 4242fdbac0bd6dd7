package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nailspa-backend/services"
	"nailspa-backend/utils"
)

type ApplyDraftInput struct {
	Draft services.Draft   `json:"draft"`
	Op    services.DraftOp `json:"op"`
}

// NewDraft returns a blank draft dated now
func (bc *BillController) NewDraft(c *gin.Context) {
	c.JSON(http.StatusOK, bc.billing.NewDraft())
}

// OpenDraft loads a saved bill into the editor
func (bc *BillController) OpenDraft(c *gin.Context) {
	preview, err := bc.billing.OpenDraft(c.Param("id"))
	if err != nil {
		respondError(c, bc.log, err, "Bill not found")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// ApplyDraft runs one line or discount operation on the posted draft
func (bc *BillController) ApplyDraft(c *gin.Context) {
	var input ApplyDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	preview, err := bc.billing.Apply(input.Draft, input.Op)
	if err != nil {
		respondError(c, bc.log, err, "")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// PreviewDraft computes totals and line state for the posted draft
func (bc *BillController) PreviewDraft(c *gin.Context) {
	var draft services.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, bc.billing.Preview(draft))
}
