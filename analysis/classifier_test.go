package analysis

import "testing"

func descriptive(density, human float64) Verdict {
	return DescriptiveSignals{
		Density:    density,
		Estimated:  EstimateScore(density),
		HumanScore: human,
	}.Classify()
}

func TestDescriptiveGhostCheck(t *testing.T) {
	v := descriptive(2.0, 0)
	if v.Status != StatusGhostError {
		t.Fatalf("expected GHOST_ERROR, got %s", v.Status)
	}
	if !v.IsGhostRisk {
		t.Fatalf("expected ghost risk flag")
	}
	if v.Score != EstimateScore(2.0) {
		t.Fatalf("ghost verdict should keep the estimate, got %v", v.Score)
	}
}

func TestDescriptiveFraudCheck(t *testing.T) {
	v := descriptive(0.2, 10)
	if v.Status != StatusCriticalMismatch {
		t.Fatalf("expected CRITICAL_MISMATCH, got %s", v.Status)
	}
	if v.Score != 0 {
		t.Fatalf("blank page with marks must zero the machine score, got %v", v.Score)
	}
	if v.IsGhostRisk {
		t.Fatalf("fraud verdict must not flag ghost risk")
	}
}

func TestDescriptiveVarianceCheck(t *testing.T) {
	// density 10 estimates to 53; gap vs 20 is 33
	v := descriptive(10.0, 20)
	if v.Status != StatusCriticalMismatch {
		t.Fatalf("expected CRITICAL_MISMATCH, got %s", v.Status)
	}
	if v.Score != 53 {
		t.Fatalf("variance verdict should keep the estimate 53, got %v", v.Score)
	}
}

func TestDescriptiveCleanDefault(t *testing.T) {
	// density 5 estimates to 28; gap vs 30 is 2, inside tolerance
	v := descriptive(5.0, 30)
	if v.Status != StatusClean {
		t.Fatalf("expected CLEAN, got %s", v.Status)
	}
	if v.Score != 28 {
		t.Fatalf("clean verdict should keep the estimate 28, got %v", v.Score)
	}
	if v.IsGhostRisk {
		t.Fatalf("clean verdict must not flag ghost risk")
	}
}

func TestDescriptiveRulePriority(t *testing.T) {
	// Ghost outranks variance even though the gap is past tolerance
	if v := descriptive(2.0, 0); v.Status != StatusGhostError {
		t.Fatalf("ghost check must win over variance, got %s", v.Status)
	}
	// Fraud outranks variance: gap of 6 would also fire the variance rule
	if v := descriptive(0.2, 10); v.Score != 0 {
		t.Fatalf("fraud check must win over variance, got score %v", v.Score)
	}
}

func TestDescriptiveAlwaysProducesValidVerdict(t *testing.T) {
	valid := map[string]bool{
		StatusClean:            true,
		StatusCriticalMismatch: true,
		StatusGhostError:       true,
	}
	for _, density := range []float64{0, 0.2, 0.5, 1.0, 1.5, 5, 10, 50, 100} {
		for _, human := range []float64{0, 1, 5, 20, 60, 100} {
			v := descriptive(density, human)
			if !valid[v.Status] {
				t.Fatalf("density=%v human=%v produced status %q", density, human, v.Status)
			}
			if v.IsGhostRisk != (v.Status == StatusGhostError) {
				t.Fatalf("density=%v human=%v: ghost risk %v with status %s", density, human, v.IsGhostRisk, v.Status)
			}
		}
	}
}

func TestOMRWithoutKeyPassesClean(t *testing.T) {
	v := OMRSignals{HumanScore: 42, HasReferenceKey: false}.Classify()
	if v.Status != StatusClean {
		t.Fatalf("expected CLEAN without key, got %s", v.Status)
	}
	if v.Score != 42 {
		t.Fatalf("without a key the machine score mirrors the human entry, got %v", v.Score)
	}
}

func TestOMRKeyMismatchPenalty(t *testing.T) {
	orig := simulateKeyMatch
	simulateKeyMatch = func() bool { return false }
	defer func() { simulateKeyMatch = orig }()

	v := OMRSignals{HumanScore: 40, HasReferenceKey: true}.Classify()
	if v.Status != StatusCriticalMismatch {
		t.Fatalf("expected CRITICAL_MISMATCH, got %s", v.Status)
	}
	if v.Score != 35 {
		t.Fatalf("expected penalized score 35, got %v", v.Score)
	}

	// The penalty never drives the score negative
	v = OMRSignals{HumanScore: 3, HasReferenceKey: true}.Classify()
	if v.Score != 0 {
		t.Fatalf("expected floored score 0, got %v", v.Score)
	}
}

func TestOMRKeyMatchPassesClean(t *testing.T) {
	orig := simulateKeyMatch
	simulateKeyMatch = func() bool { return true }
	defer func() { simulateKeyMatch = orig }()

	v := OMRSignals{HumanScore: 40, HasReferenceKey: true}.Classify()
	if v.Status != StatusClean || v.Score != 40 {
		t.Fatalf("expected CLEAN/40, got %s/%v", v.Status, v.Score)
	}
}

func TestTrustedSignalsBypassVariance(t *testing.T) {
	// A 30-point gap would trip the variance rule, but the source
	// already vouched for the match.
	v := TrustedSignals{HumanScore: 20, MachineScore: 50, Matched: true}.Classify()
	if v.Status != StatusClean {
		t.Fatalf("matched flag must be trusted, got %s", v.Status)
	}
	if v.Score != 50 {
		t.Fatalf("expected machine score 50, got %v", v.Score)
	}

	v = TrustedSignals{HumanScore: 20, MachineScore: 20, Matched: false}.Classify()
	if v.Status != StatusCriticalMismatch {
		t.Fatalf("unmatched flag must be trusted, got %s", v.Status)
	}
}
