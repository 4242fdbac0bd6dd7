package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nailspa-backend/utils"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

func (cc *CatalogController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, cc.catalog.Categories())
}

func (cc *CatalogController) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cat, err := cc.catalog.AddCategory(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, cc.log, err, "")
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (cc *CatalogController) RenameCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cat, err := cc.catalog.RenameCategory(c.Request.Context(), c.Param("id"), input.Name)
	if err != nil {
		respondError(c, cc.log, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory leaves the category's services in place, uncategorized
func (cc *CatalogController) DeleteCategory(c *gin.Context) {
	if err := cc.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, cc.log, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
