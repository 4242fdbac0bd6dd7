// controllers/service.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nailspa-backend/models"
	"nailspa-backend/services"
	"nailspa-backend/utils"
)

// ServiceInput defines the expected JSON structure for creating or replacing a service
type ServiceInput struct {
	Name          string                `json:"name" binding:"required"`
	Price         int64                 `json:"price" binding:"min=0"`
	PriceType     models.PriceType      `json:"priceType"`
	Variants      []models.PriceVariant `json:"variants"`
	AllowQuantity bool                  `json:"allowQuantity"`
	CategoryID    string                `json:"categoryId"`
}

func (in ServiceInput) toService(id string) models.PredefinedService {
	return models.PredefinedService{
		ID:            id,
		Name:          in.Name,
		Price:         in.Price,
		PriceType:     in.PriceType,
		Variants:      in.Variants,
		AllowQuantity: in.AllowQuantity,
		CategoryID:    in.CategoryID,
	}
}

// CatalogController manages predefined services and categories.
type CatalogController struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewCatalogController(catalog *services.CatalogService, log *zap.Logger) *CatalogController {
	return &CatalogController{catalog: catalog, log: log.Named("catalog")}
}

// CreateService creates a new service at the top of the catalog
func (cc *CatalogController) CreateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc, err := cc.catalog.AddService(c.Request.Context(), input.toService(""))
	if err != nil {
		respondError(c, cc.log, err, "")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// GetServices retrieves the catalog, optionally narrowed to one category
func (cc *CatalogController) GetServices(c *gin.Context) {
	all := cc.catalog.Services()
	categoryID, filter := c.GetQuery("categoryId")
	if !filter {
		c.JSON(http.StatusOK, all)
		return
	}

	known := map[string]bool{}
	for _, cat := range cc.catalog.Categories() {
		known[cat.ID] = true
	}
	filtered := []models.PredefinedService{}
	for _, svc := range all {
		// uncategorized includes services whose category was deleted
		if svc.CategoryID == categoryID || (categoryID == "" && !known[svc.CategoryID]) {
			filtered = append(filtered, svc)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

// GetService retrieves a specific service
func (cc *CatalogController) GetService(c *gin.Context) {
	svc, err := cc.catalog.GetService(c.Param("id"))
	if err != nil {
		respondError(c, cc.log, err, "Service not found")
		return
	}
	c.JSON(http.StatusOK, svc)
}

// UpdateService replaces a service. Saved bills keep their snapshots.
func (cc *CatalogController) UpdateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc, err := cc.catalog.UpdateService(c.Request.Context(), input.toService(c.Param("id")))
	if err != nil {
		respondError(c, cc.log, err, "Service not found")
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService removes a service from the catalog
func (cc *CatalogController) DeleteService(c *gin.Context) {
	if err := cc.catalog.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, cc.log, err, "Service not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
