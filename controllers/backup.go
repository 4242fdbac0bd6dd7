package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nailspa-backend/services"
	"nailspa-backend/utils"
)

// maxBackupSize bounds an uploaded backup document.
const maxBackupSize = 20 << 20

type BackupController struct {
	backup *services.BackupService
	log    *zap.Logger
}

func NewBackupController(backup *services.BackupService, log *zap.Logger) *BackupController {
	return &BackupController{backup: backup, log: log.Named("backup")}
}

// ExportBackup downloads every record as one JSON document
func (bc *BackupController) ExportBackup(c *gin.Context) {
	data, err := bc.backup.ExportJSON()
	if err != nil {
		respondError(c, bc.log, err, "")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bc.backup.Filename()))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportBackup replaces all data from a backup posted as the body or as the "file" form field
func (bc *BackupController) ImportBackup(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBackupSize)

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		data, err = readFormFile(c, "file")
	} else {
		data, err = io.ReadAll(c.Request.Body)
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read backup: "+err.Error())
		return
	}

	if err := bc.backup.Import(c.Request.Context(), data); err != nil {
		respondError(c, bc.log, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Backup restored successfully"})
}

// ResetData clears every record. Requires ?confirm=true.
func (bc *BackupController) ResetData(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.RespondWithError(c, http.StatusBadRequest, "Reset requires confirm=true")
		return
	}
	if err := bc.backup.Reset(c.Request.Context()); err != nil {
		respondError(c, bc.log, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All data has been reset"})
}

func readFormFile(c *gin.Context, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
