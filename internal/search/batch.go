package search

// Rule is one find→replace pair in an ordered batch.
type Rule struct {
	Find    string `json:"find"`
	Replace string `json:"replace"`
	Enabled bool   `json:"enabled"`
}

// RuleOutcome reports one rule of a batch pass.
type RuleOutcome struct {
	Rule    Rule
	Applied int
	Err     error
}

// BatchResult is the outcome of a full batch pass.
type BatchResult struct {
	NewText string
	Applied int
	Rules   []RuleOutcome
}

// ApplyBatch runs each enabled rule as a fresh scan-and-replace-all pass
// against the text produced by the previous rule: sequential composition,
// not simultaneous substitution. Disabled rules and rules with an empty find
// are skipped silently; a rule whose pattern fails to compile is skipped and
// reported in its outcome, keeping the output of earlier rules intact.
func ApplyBatch(text string, rules []Rule, opts Options) BatchResult {
	res := BatchResult{NewText: text}
	passOpts := opts
	passOpts.FirstOnly = false

	for _, rule := range rules {
		if !rule.Enabled || rule.Find == "" {
			continue
		}
		matches, err := Scan(res.NewText, rule.Find, passOpts)
		if err != nil {
			res.Rules = append(res.Rules, RuleOutcome{Rule: rule, Err: err})
			continue
		}
		r := Replace(res.NewText, matches, rule.Replace, passOpts, nil)
		res.NewText = r.NewText
		res.Applied += r.Applied
		res.Rules = append(res.Rules, RuleOutcome{Rule: rule, Applied: r.Applied})
	}
	return res
}
