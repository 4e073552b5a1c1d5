package evaluator

import (
	"fmt"
	"strings"

	"tapdlens/internal/tokencount"
)

const requirementInfoPlaceholder = "{{REQUIREMENT_INFO}}"
const testCasesJSONPlaceholder = "{{TEST_CASES_JSON}}"

// buildTemplate renders the rubric's thresholds and priority mix into the
// static prompt template, leaving the requirement-info and test-case-JSON
// placeholders for per-batch substitution.
func buildTemplate(rubric Rubric) string {
	p0 := rubric.PriorityRatios["P0"]
	p1 := rubric.PriorityRatios["P1"]
	p2 := rubric.PriorityRatios["P2"]

	return fmt.Sprintf(`You are evaluating a batch of test cases against the following rules:

- Case title must not exceed %d characters.
- Test steps must not exceed %d steps.
- Priority mix across the batch: P0 %d%%-%d%%, P1 %d%%-%d%%, P2 %d%%-%d%%.

Requirement knowledge base:
%s

For each test case, return a Markdown table with rows for 用例标题 / 前置条件 / 步骤描述 / 预期结果
and columns 内容 | 评分(0-10) | 建议. Prefix each case's table with a line naming its case id.

Test cases:
%s
`,
		rubric.TitleMaxLength, rubric.MaxSteps,
		p0.Min, p0.Max, p1.Min, p1.Max, p2.Min, p2.Max,
		requirementInfoPlaceholder, testCasesJSONPlaceholder)
}

// templateBaseTokens counts the template's static text, with both dynamic
// placeholders removed — this is what gets subtracted from the request
// budget before computing the batch threshold.
func templateBaseTokens(counter *tokencount.Counter, template string) int {
	base := strings.ReplaceAll(template, requirementInfoPlaceholder, "")
	base = strings.ReplaceAll(base, testCasesJSONPlaceholder, "")
	return counter.Count(base)
}

// renderRequirementInfo renders a compact, token-bounded digest of the
// requirement knowledge base (id + short title + priority), per
// SPEC_FULL.md's supplemented feature #1 — the full description text would
// dominate the template budget.
func renderRequirementInfo(kb RequirementKB) string {
	if len(kb.Requirements) == 0 {
		return "(no requirements on file)"
	}
	var b strings.Builder
	for _, r := range kb.Requirements {
		title := r.Title
		if len([]rune(title)) > 40 {
			title = string([]rune(title)[:40]) + "…"
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", r.ID, title, r.Priority)
	}
	return b.String()
}

func renderPrompt(template, requirementInfo, testCasesJSON string) string {
	prompt := strings.ReplaceAll(template, requirementInfoPlaceholder, requirementInfo)
	prompt = strings.ReplaceAll(prompt, testCasesJSONPlaceholder, testCasesJSON)
	return prompt
}
