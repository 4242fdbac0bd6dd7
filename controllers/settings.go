package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nailspa-backend/models"
	"nailspa-backend/store"
	"nailspa-backend/utils"
)

type UpdateSettingsInput struct {
	ShopName  *string `json:"shopName"`
	BillTheme *string `json:"billTheme"`
}

type SettingsController struct {
	settings *store.SettingsStore
}

func NewSettingsController(settings *store.SettingsStore) *SettingsController {
	return &SettingsController{settings: settings}
}

// GetSettings returns the shop name and bill theme
func (sc *SettingsController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings": sc.settings.Get(),
		"themes":   models.BillThemes,
	})
}

// UpdateSettings changes the shop name and/or bill theme
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var patch models.ShopSettings
	if input.ShopName != nil {
		patch.ShopName = strings.TrimSpace(*input.ShopName)
		if patch.ShopName == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Shop name cannot be empty")
			return
		}
	}
	if input.BillTheme != nil {
		if !models.IsBillTheme(*input.BillTheme) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown bill theme")
			return
		}
		patch.BillTheme = *input.BillTheme
	}

	c.JSON(http.StatusOK, sc.settings.Update(c.Request.Context(), patch))
}
