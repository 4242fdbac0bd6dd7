package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nailspa-backend/services"
	"nailspa-backend/store"
	"nailspa-backend/utils"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, log *zap.Logger, err error, notFound string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound)
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
