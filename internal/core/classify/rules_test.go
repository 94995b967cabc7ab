package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesPreserveBucketOrder(t *testing.T) {
	rules := DefaultRules()

	want := []string{"Business", "Technology", "Science", "Education", "Other"}
	if len(rules.Buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(rules.Buckets))
	}
	for i, label := range want {
		if rules.Buckets[i].Label != label {
			t.Fatalf("bucket %d: expected %q, got %q", i, label, rules.Buckets[i].Label)
		}
	}
	if len(rules.Buckets[len(rules.Buckets)-1].Keywords) != 0 {
		t.Fatalf("the Other bucket must have no keywords")
	}
}

func TestLoadRulesEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules.ResumeKeywords) == 0 || len(rules.Buckets) == 0 {
		t.Fatalf("expected default tables, got %+v", rules)
	}
}

func TestLoadRulesOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
buckets:
  - label: Fiction
    keywords: [novel, story]
  - label: Poetry
    keywords: [poem]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules.Buckets) != 2 || rules.Buckets[0].Label != "Fiction" {
		t.Fatalf("unexpected buckets: %+v", rules.Buckets)
	}
	// the omitted resume section keeps its defaults
	if len(rules.ResumeKeywords) == 0 {
		t.Fatalf("expected default resume keywords to be kept")
	}
}

func TestLoadRulesRejectsUnlabeledBucket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("buckets:\n  - keywords: [x]\n"), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Fatalf("expected error for bucket without label")
	}
}
