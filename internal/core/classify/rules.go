package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bucket is one (label, keyword set) rule. Buckets are tested in declaration
// order and the first match wins, so order is part of the contract.
type Bucket struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Rules holds the keyword tables driving resume detection and genre
// fallback classification.
type Rules struct {
	ResumeKeywords []string `yaml:"resume_keywords"`
	Buckets        []Bucket `yaml:"buckets"`
}

// DefaultRules returns the built-in tables. The trailing empty "Other"
// bucket can never match; the universal fallback genre is "Document".
func DefaultRules() Rules {
	return Rules{
		ResumeKeywords: []string{
			"resume",
			"cv",
			"curriculum vitae",
			"professional experience",
			"education",
			"skills",
			"work experience",
		},
		Buckets: []Bucket{
			{Label: "Business", Keywords: []string{"business", "management", "finance", "marketing", "economics"}},
			{Label: "Technology", Keywords: []string{"programming", "software", "computer", "technology", "engineering"}},
			{Label: "Science", Keywords: []string{"science", "physics", "chemistry", "biology", "research"}},
			{Label: "Education", Keywords: []string{"education", "learning", "teaching", "academic", "school"}},
			{Label: "Other", Keywords: []string{}},
		},
	}
}

// LoadRules reads a YAML rules file. An empty path or an omitted section
// falls back to the built-in tables.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}

	def := DefaultRules()
	if len(rules.ResumeKeywords) == 0 {
		rules.ResumeKeywords = def.ResumeKeywords
	}
	if len(rules.Buckets) == 0 {
		rules.Buckets = def.Buckets
	}
	for i, bucket := range rules.Buckets {
		if bucket.Label == "" {
			return Rules{}, fmt.Errorf("rules file: bucket %d has no label", i)
		}
	}
	return rules, nil
}
