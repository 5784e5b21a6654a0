package analysis

import (
	"log"
	"math"
	"math/rand"
)

// Audit status values assigned at classification time. RESOLVED is the
// only later transition and is terminal; the classifier never emits it.
const (
	StatusClean            = "CLEAN"
	StatusCriticalMismatch = "CRITICAL_MISMATCH"
	StatusGhostError       = "GHOST_ERROR"
	StatusResolved         = "RESOLVED"
)

// Sheet types
const (
	SheetTypeOMR         = "OMR"
	SheetTypeDescriptive = "DESCRIPTIVE"
)

const (
	// Ink coverage above which a page visibly contains writing
	ghostDensityFloor = 1.0

	// Ink coverage below which a page is effectively blank
	blankDensityCeiling = 0.5

	// Allowed gap between the machine estimate and the human entry
	varianceTolerance = 5

	// Marks deducted from the human entry when an OMR scan disagrees
	// with its reference key
	keyMismatchPenalty = 5
)

// Verdict is the classifier output: a categorical status, the machine
// score to persist next to the human entry, and the ghost-risk flag.
// IsGhostRisk is true exactly when Status is GHOST_ERROR.
type Verdict struct {
	Status      string
	Score       float64
	IsGhostRisk bool
}

// Signals is the classifier input. The three variants carry either raw
// image-derived measurements or an already-known match verdict; both
// feed the same rule set rather than duplicated logic paths.
type Signals interface {
	Classify() Verdict
}

// DescriptiveSignals are raw measurements from a scanned descriptive
// sheet: the ink density, the score estimated from it, and the score
// the human grader entered.
type DescriptiveSignals struct {
	Density    float64
	Estimated  float64
	HumanScore float64
}

// Classify applies the descriptive rules in priority order; the ranges
// overlap, so the order is load-bearing. Exactly one rule fires.
func (s DescriptiveSignals) Classify() Verdict {
	// Ghost check: visible ink but zero recorded marks means a page
	// was lost or never scored.
	if s.Density > ghostDensityFloor && s.HumanScore == 0 {
		log.Printf("   [!] GHOST DETECTED: high density (%.2f%%) but 0 marks", s.Density)
		return Verdict{Status: StatusGhostError, Score: s.Estimated, IsGhostRisk: true}
	}

	// Fraud check: an effectively blank page cannot legitimately carry
	// a nonzero score.
	if s.Density < blankDensityCeiling && s.HumanScore > 0 {
		log.Printf("   [!] FRAUD DETECTED: empty page has marks")
		return Verdict{Status: StatusCriticalMismatch, Score: 0}
	}

	// Variance check: disagreement beyond the tolerance band signals a
	// likely transcription or grading error.
	if diff := math.Abs(s.Estimated - s.HumanScore); diff > varianceTolerance {
		log.Printf("   [!] MISMATCH DETECTED: gap is %.0f (threshold: > %d)", diff, varianceTolerance)
		return Verdict{Status: StatusCriticalMismatch, Score: s.Estimated}
	}

	return Verdict{Status: StatusClean, Score: s.Estimated}
}

// OMRSignals describe an uploaded bubble sheet. Without a reference key
// no independent verification is possible and the sheet passes as clean
// with the human entry mirrored into the machine score.
type OMRSignals struct {
	HumanScore      float64
	HasReferenceKey bool
}

// simulateKeyMatch stands in for a real bubble decoder; the demo flow
// only models the chance of a disagreement with the key.
var simulateKeyMatch = func() bool {
	return rand.Float64() <= 0.7
}

func (s OMRSignals) Classify() Verdict {
	if !s.HasReferenceKey {
		log.Println("   ⚠️ OMR uploaded without key")
		return Verdict{Status: StatusClean, Score: s.HumanScore}
	}

	if !simulateKeyMatch() {
		log.Println("   [!] OMR mismatch vs key")
		return Verdict{
			Status: StatusCriticalMismatch,
			Score:  math.Max(0, s.HumanScore-keyMismatchPenalty),
		}
	}

	return Verdict{Status: StatusClean, Score: s.HumanScore}
}

// TrustedSignals carry a pre-computed machine score and match flag from
// tabular data. The source already encodes the ground truth of the
// match, so the numeric-variance rule is bypassed entirely.
type TrustedSignals struct {
	HumanScore   float64
	MachineScore float64
	Matched      bool
}

func (s TrustedSignals) Classify() Verdict {
	if !s.Matched {
		return Verdict{Status: StatusCriticalMismatch, Score: s.MachineScore}
	}
	return Verdict{Status: StatusClean, Score: s.MachineScore}
}
