// Package canon holds the canonical ingredient-sentence scenarios used to
// pin down post-processor behavior independent of any trained model,
// loaded from a YAML fixture the way the teacher's spec package loads
// cooklang recipe fixtures.
package canon

// CanonicalTests is the top-level shape of testdata/canonical.yaml.
type CanonicalTests struct {
	Tests map[string]Scenario `yaml:"tests"`
}

// Scenario is one named canonical parse: a pre-labeled token sequence (the
// labels a trained CRF model would be expected to assign) and the
// ParsedIngredient fields that must result from post-processing it.
type Scenario struct {
	Source  string          `yaml:"source"`
	Tokens  []string        `yaml:"tokens"`
	Labels  []string        `yaml:"labels"`
	Options ScenarioOptions `yaml:"options"`
	Result  ExpectedResult  `yaml:"result"`
}

// ScenarioOptions mirrors the subset of postprocess.Options a canonical
// scenario needs to pin.
type ScenarioOptions struct {
	DiscardIsolatedStopWords bool `yaml:"discard_isolated_stop_words"`
	ExpectNameInOutput       bool `yaml:"expect_name_in_output"`
	SeparateNames            bool `yaml:"separate_names"`
}

// ExpectedResult is the set of ParsedIngredient fields a scenario checks.
// Fields left zero-valued in the fixture are not checked.
type ExpectedResult struct {
	Names       []string            `yaml:"names"`
	Amounts     []ExpectedAmount    `yaml:"amounts"`
	Composites  []ExpectedComposite `yaml:"composite_amounts"`
	Size        string              `yaml:"size"`
	Preparation string              `yaml:"preparation"`
	Comment     string              `yaml:"comment"`
	Purpose     string              `yaml:"purpose"`
}

// ExpectedAmount is one expected (quantity, unit) pair, plus the flags the
// scenario asserts are set.
type ExpectedAmount struct {
	Quantity    float64 `yaml:"quantity"`
	Max         float64 `yaml:"quantity_max"`
	Unit        string  `yaml:"unit"`
	Singular    bool    `yaml:"singular"`
	Approximate bool    `yaml:"approximate"`
}

// ExpectedComposite is an expected composite amount: its member amounts in
// order, plus the text joining them.
type ExpectedComposite struct {
	Amounts []ExpectedAmount `yaml:"amounts"`
	Join    string           `yaml:"join"`
}
