package database

import (
	"time"

	"gorm.io/gorm"
)

// AnswerSheet represents one scanned answer sheet under audit
type AnswerSheet struct {
	gorm.Model
	SecretCode       string     `json:"secret_code" gorm:"uniqueIndex"`
	SheetType        string     `json:"sheet_type"`
	CVTotalScore     float64    `json:"cv_total_score"`
	ManualTotalEntry float64    `json:"manual_total_entry"`
	IsGhostRisk      bool       `json:"is_ghost_risk"`
	Status           string     `json:"status"`
	Origin           string     `json:"origin"`
	FileURL          string     `json:"file_url"`
	Logs             []ScoreLog `gorm:"foreignKey:AnswerSheetID;constraint:OnDelete:CASCADE" json:"logs"`
}

// ScoreLog is an append-only action trail entry owned by an AnswerSheet
type ScoreLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AnswerSheetID uint      `gorm:"index" json:"answer_sheet_id"`
	Action        string    `json:"action"`
	Timestamp     time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// Constants for record lifecycle values. Audit verdict constants live in
// the analysis package; Status holds one of those, or StatusResolved.
const (
	// Record origin. Simulated records are wiped and re-inserted by the
	// seed run; uploaded records are never touched by it.
	OriginSimulated = "SIMULATED"
	OriginUploaded  = "UPLOADED"

	// Log actions
	ActionUserVerifiedFix = "USER_VERIFIED_FIX"
)
