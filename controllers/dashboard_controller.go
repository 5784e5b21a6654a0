package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradeguard/analysis"
	"gradeguard/database"
)

// GetDashboard returns key statistics for the audit dashboard. The
// aggregate runs as raw SQL on the legacy connection.
func GetDashboard(c *gin.Context) {
	rows, err := database.LegacyDB.Query(
		`SELECT status, COUNT(*) FROM answer_sheets WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count answer sheets"})
		return
	}
	defer rows.Close()

	counts := map[string]int64{}
	var total int64
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sheet counts"})
			return
		}
		counts[status] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sheet counts"})
		return
	}

	var ghostRisks int64
	if err := database.LegacyDB.QueryRow(
		`SELECT COUNT(*) FROM answer_sheets WHERE deleted_at IS NULL AND is_ghost_risk`).
		Scan(&ghostRisks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count ghost risks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalSheets":        total,
			"clean":              counts[analysis.StatusClean],
			"criticalMismatches": counts[analysis.StatusCriticalMismatch],
			"ghostErrors":        counts[analysis.StatusGhostError],
			"resolved":           counts[analysis.StatusResolved],
			"ghostRisks":         ghostRisks,
		},
	})
}
