package controllers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gradeguard/analysis"
	"gradeguard/config"
	"gradeguard/database"
	"gradeguard/ingest"
	"gradeguard/storage"
)

var sink storage.BlobSink

// UseBlobSink wires the blob sink the upload handler stores scans with
func UseBlobSink(s storage.BlobSink) {
	sink = s
}

// RunSimulationSeed refreshes the demo audit data. Only previously
// simulated records are wiped; manual uploads survive re-runs.
func RunSimulationSeed(c *gin.Context) {
	rows, err := ingest.LoadRows(config.AppConfig.SeedDataPath)
	if err != nil {
		// Seeding still plants the story cases without the bulk file
		log.Printf("⚠️ Seed data file unavailable: %v", err)
		rows = nil
	}

	reconciler := ingest.NewReconciler(database.DB)
	count, err := reconciler.SeedSimulation(rows)
	if err != nil {
		log.Println("Simulation seed error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh simulation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Audit simulation refreshed (uploads preserved)",
		"processed": count,
	})
}

// GetAuditQueue returns every answer sheet under audit
func GetAuditQueue(c *gin.Context) {
	var sheets []database.AnswerSheet
	if err := database.DB.Order("id").Find(&sheets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit queue"})
		return
	}
	c.JSON(http.StatusOK, sheets)
}

// ResolveAnomaly marks a sheet as RESOLVED and appends the verification
// entry to its action log. RESOLVED is terminal: resolving an already
// resolved sheet changes nothing and logs nothing.
func ResolveAnomaly(c *gin.Context) {
	id := c.Param("id")

	var sheet database.AnswerSheet
	if err := database.DB.First(&sheet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Answer sheet not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve answer sheet"})
		}
		return
	}

	if sheet.Status == analysis.StatusResolved {
		c.JSON(http.StatusOK, gin.H{"status": "Resolved"})
		return
	}

	sheet.Status = analysis.StatusResolved
	if err := database.DB.Save(&sheet).Error; err != nil {
		log.Println("Resolve save failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve answer sheet"})
		return
	}

	entry := database.ScoreLog{
		AnswerSheetID: sheet.ID,
		Action:        database.ActionUserVerifiedFix,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Println("Resolve log append failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record resolution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Resolved"})
}

// UploadSheetRequest carries the multipart upload form
type UploadSheetRequest struct {
	SheetType        string                `form:"sheet_type" binding:"required"`
	ManualTotalEntry float64               `form:"manual_total_entry"`
	File             *multipart.FileHeader `form:"file" binding:"required"`
	ReferenceFile    *multipart.FileHeader `form:"reference_file"`
}

// UploadSheet stores a scanned sheet, runs the anomaly analysis on it
// and creates the audit record.
func UploadSheet(c *gin.Context) {
	var request UploadSheetRequest
	if err := c.ShouldBind(&request); err != nil {
		log.Println("Upload bind error:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.SheetType != analysis.SheetTypeOMR && request.SheetType != analysis.SheetTypeDescriptive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sheet_type must be OMR or DESCRIPTIVE"})
		return
	}

	data, err := readUpload(request.File)
	if err != nil {
		log.Println("Upload read error:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	name := request.SheetType + "_" + uuid.New().String() + filepath.Ext(request.File.Filename)
	url := sink.Store(c.Request.Context(), data, name)

	log.Printf("\n🔍 ANALYZING UPLOAD: %s", name)
	log.Printf("   👤 Human score: %.1f", request.ManualTotalEntry)

	// The reference key document is stored for the record but only its
	// presence feeds the OMR classification.
	hasReferenceKey := request.ReferenceFile != nil
	if hasReferenceKey {
		refData, err := readUpload(request.ReferenceFile)
		if err != nil {
			log.Println("Reference key read error:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read reference file"})
			return
		}
		refName := "REF_" + uuid.New().String() + filepath.Ext(request.ReferenceFile.Filename)
		sink.Store(c.Request.Context(), refData, refName)
	}

	secretCode := name[:len(name)-len(filepath.Ext(name))]

	reconciler := ingest.NewReconciler(database.DB)
	sheet, err := reconciler.IngestUpload(data, request.SheetType, request.ManualTotalEntry, hasReferenceKey, secretCode, url)
	if err != nil {
		log.Println("Upload persist error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "Uploaded",
		"url":     url,
		"verdict": sheet.Status,
	})
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
