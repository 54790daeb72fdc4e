package summary

import (
	"testing"
)

// TestSmallSampleGuard verifies the threshold boundary: 9 rows suppress the
// distribution charts, 10 rows get a chart decision.
func TestSmallSampleGuard(t *testing.T) {
	nine := seq(9)
	decision := SelectDistribution(nine)
	if decision.ShowDistribution {
		t.Error("9-row subset should not get a distribution chart")
	}
	if !decision.SmallSample || decision.Advisory == "" {
		t.Error("9-row subset should carry the small-sample advisory")
	}

	ten := seq(10)
	decision = SelectDistribution(ten)
	if !decision.ShowDistribution {
		t.Error("10-row subset should get a chart decision")
	}
	if decision.Label == "" || decision.Values == nil {
		t.Errorf("10-row decision incomplete: %+v", decision)
	}
}

// TestSkewRuleTrimsHeavyTail reproduces the deterministic skew check on
// [1..9, 1000]: with the midpoint percentile convention P75=7.5 and P90=9,
// so the tail spread (991) dwarfs the body spread (1.5) and the trimmed
// variant must be chosen, excluding the outlier.
func TestSkewRuleTrimsHeavyTail(t *testing.T) {
	values := append(seq(9), 1000)

	decision := SelectDistribution(values)
	if !decision.ShowDistribution {
		t.Fatal("expected a chart decision for 10 rows")
	}
	if decision.Label != LabelTrimmed {
		t.Errorf("label = %q, want %q", decision.Label, LabelTrimmed)
	}
	for _, v := range decision.Values {
		if v == 1000 {
			t.Error("trimmed subset still contains the extreme outlier 1000")
		}
		if v >= 9 {
			t.Errorf("trimmed subset contains %v, at or above the 90th percentile", v)
		}
	}
	if len(decision.Values) == 0 {
		t.Error("trimmed subset is empty")
	}
}

// TestSkewRuleKeepsEvenSpread verifies an evenly spread subset plots in full
func TestSkewRuleKeepsEvenSpread(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	decision := SelectDistribution(values)
	if !decision.ShowDistribution {
		t.Fatal("expected a chart decision for 10 rows")
	}
	// max - p90 = 10, p90 - p75 = 15: tail not disproportionately long
	if decision.Label != LabelFull {
		t.Errorf("label = %q, want %q", decision.Label, LabelFull)
	}
	if len(decision.Values) != len(values) {
		t.Errorf("full variant kept %d of %d values", len(decision.Values), len(values))
	}
}

// TestAdvisoryAtExactThreshold verifies a 10-row subset still carries the
// advisory while getting its chart
func TestAdvisoryAtExactThreshold(t *testing.T) {
	decision := SelectDistribution(seq(10))
	if !decision.SmallSample {
		t.Error("10-row subset should still be flagged as small")
	}
	if !decision.ShowDistribution {
		t.Error("10-row subset should still get a distribution chart")
	}
}
