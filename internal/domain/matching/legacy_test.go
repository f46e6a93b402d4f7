package matching

import "testing"

func TestTokenize_TechSuffixes(t *testing.T) {
	kw := Tokenize("C++, C#, Node.js and strong SQL skills")
	for _, want := range []string{"c++", "c#", "node.js", "sql"} {
		if !kw[want] {
			t.Fatalf("expected keyword %q in %v", want, kw)
		}
	}
	if kw["and"] || kw["strong"] || kw["skills"] {
		t.Fatalf("stop words leaked into keyword set: %v", kw)
	}
}

func TestLegacyMatch_FullOverlap(t *testing.T) {
	res := LegacyMatch("python, sql, docker", "Python SQL Docker", DefaultConfig())
	if res.OverallScore != 100 {
		t.Fatalf("expected score 100, got %v", res.OverallScore)
	}
	if res.EligibilityStatus != Eligible {
		t.Fatalf("expected Eligible, got %q", res.EligibilityStatus)
	}
	if !res.CanApply {
		t.Fatalf("expected can_apply true")
	}
}

func TestLegacyMatch_PartialOverlap(t *testing.T) {
	res := LegacyMatch("python, sql, docker", "python, sql, kafka, redis", DefaultConfig())
	// 2 of 5 distinct keywords overlap: 40%.
	if res.OverallScore != 40 {
		t.Fatalf("expected score 40, got %v", res.OverallScore)
	}
	if res.EligibilityStatus != NotEligible {
		t.Fatalf("expected Not Eligible, got %q", res.EligibilityStatus)
	}
	if len(res.MissingSkills) != 2 {
		t.Fatalf("expected 2 missing keywords, got %d", len(res.MissingSkills))
	}
}

func TestLegacyMatch_NoOverlap(t *testing.T) {
	res := LegacyMatch("painting, sculpture", "golang, kubernetes", DefaultConfig())
	if res.OverallScore != 0 {
		t.Fatalf("expected score 0, got %v", res.OverallScore)
	}
	if res.EligibilityStatus != NotEligible {
		t.Fatalf("expected Not Eligible, got %q", res.EligibilityStatus)
	}
}

func TestLegacyMatch_EmptyInputs(t *testing.T) {
	res := LegacyMatch("", "", DefaultConfig())
	if res.OverallScore != 0 {
		t.Fatalf("expected score 0 for empty inputs, got %v", res.OverallScore)
	}
}

func TestOutcome_Variants(t *testing.T) {
	var o Outcome = WeightedOutcome{Result: Result{OverallScore: 80}}
	if o.IsLegacy() {
		t.Fatalf("weighted outcome reported legacy")
	}
	if o.Match().OverallScore != 80 {
		t.Fatalf("weighted outcome lost its result")
	}

	o = LegacyOutcome{Result: Result{OverallScore: 40}}
	if !o.IsLegacy() {
		t.Fatalf("legacy outcome did not report legacy")
	}
	if o.Match().OverallScore != 40 {
		t.Fatalf("legacy outcome lost its result")
	}
}
