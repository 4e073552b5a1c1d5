// Package evaluator drives C11, the AI test-case evaluator: it batches test
// cases into token-bounded LLM prompts built from a rubric and a compact
// requirement knowledge base, parses the Markdown evaluation tables the
// model returns, and computes priority-mix compliance.
package evaluator

// Range is an inclusive [Min, Max] percentage bound.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Rubric is the governing policy for acceptable test-case shapes, loaded
// from config/test_case_rules.json.
type Rubric struct {
	TitleMaxLength int             `json:"title_max_length"`
	MaxSteps       int             `json:"max_steps"`
	PriorityRatios map[string]Range `json:"priority_ratios"`
	Version        string          `json:"version"`
	LastUpdated    string          `json:"last_updated"`
}

// RequirementEntry is one entry in the requirement knowledge base.
type RequirementEntry struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Priority          string `json:"priority"`
	LocalCreatedTime  string `json:"local_created_time"`
}

// RequirementKB is the full requirement knowledge base, loaded from
// config/require_list_config.json.
type RequirementKB struct {
	Requirements []RequirementEntry `json:"requirements"`
}

// TestCase is one row imported from the test-case spreadsheet (§6, already
// remapped to canonical field names by filestore.TestCaseColumnMap).
type TestCase struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Precondition  string `json:"precondition"`
	Steps         string `json:"steps"`
	Expected      string `json:"expected"`
	Priority      string `json:"priority"`
}

// EvaluationItem is one row of a parsed evaluation table.
type EvaluationItem struct {
	Field      string `json:"field"`
	Content    string `json:"content"`
	Score      string `json:"score"`
	Suggestion string `json:"suggestion"`
}

// CaseEvaluation is the per-case result, keyed by the test case's id.
type CaseEvaluation struct {
	TestCaseID  string           `json:"test_case_id"`
	Evaluations []EvaluationItem `json:"evaluations"`
	ParseError  string           `json:"parse_error,omitempty"`
}

// BatchFailure records one batch's API failure; evaluation of subsequent
// batches proceeds regardless (§4.11, §7 ApiTransient/ApiPermanent).
type BatchFailure struct {
	BatchIndex int    `json:"batch_index"`
	Message    string `json:"message"`
}

// PriorityAnalysis is C11's priority-mix compliance report (§4.11, V6).
type PriorityAnalysis struct {
	Distribution map[string]float64 `json:"distribution"`
	Compliant    map[string]bool    `json:"compliant"`
	Rule         map[string]Range   `json:"rule"`
}

// Result is C11's full output, written via C2 to
// local_data/Proceed_TestCase_<timestamp>.json.
type Result struct {
	RunID            string           `json:"run_id"`
	Evaluations      []CaseEvaluation `json:"evaluations"`
	TotalCount       int              `json:"total_count"`
	StartedAt        string           `json:"started_at"`
	FinishedAt       string           `json:"finished_at"`
	PriorityAnalysis PriorityAnalysis `json:"priority_analysis"`
	Rubric           Rubric           `json:"rubric_snapshot"`
	BatchFailures    []BatchFailure   `json:"batch_failures,omitempty"`
}
