package evaluator

import (
	"strings"

	"tapdlens/internal/markdown"
)

// rowFields is the fixed, positional row-to-field mapping for the
// evaluation table §4.11 specifies: row order is always 用例标题 /
// 前置条件 / 步骤描述 / 预期结果, with no explicit field column in the
// table itself (see spec.md §8 scenario 6 — a 3-column header, four rows).
var rowFields = []string{"用例标题", "前置条件", "步骤描述", "预期结果"}

// parseBatchResponse locates each case's header line within response (the
// first line mentioning its id) and parses the table that immediately
// follows it, in case order. A case with no locatable header, or whose
// region contains no parseable table, gets an empty evaluation list and a
// parse-error note (§7 ParseError: retained, does not fail the batch).
func parseBatchResponse(response string, caseIDs []string) []CaseEvaluation {
	lines := strings.Split(response, "\n")

	type span struct {
		id         string
		lineOffset int
	}
	var spans []span
	for _, id := range caseIDs {
		idx := findHeaderLine(lines, id)
		if idx >= 0 {
			spans = append(spans, span{id: id, lineOffset: idx})
		}
	}

	results := make([]CaseEvaluation, 0, len(caseIDs))
	found := make(map[string]bool, len(spans))
	for i, sp := range spans {
		found[sp.id] = true
		end := len(lines)
		if i+1 < len(spans) {
			end = spans[i+1].lineOffset
		}
		segment := strings.Join(lines[sp.lineOffset:end], "\n")
		results = append(results, parseCaseSegment(sp.id, segment))
	}

	for _, id := range caseIDs {
		if !found[id] {
			results = append(results, CaseEvaluation{
				TestCaseID: id,
				ParseError: "no locatable header for this case id in the batch response",
			})
		}
	}

	return results
}

func findHeaderLine(lines []string, caseID string) int {
	if caseID == "" {
		return -1
	}
	for i, line := range lines {
		if strings.Contains(line, caseID) {
			return i
		}
	}
	return -1
}

func parseCaseSegment(caseID, segment string) CaseEvaluation {
	tables := markdown.ParseTables(segment)
	if len(tables) == 0 {
		return CaseEvaluation{
			TestCaseID: caseID,
			ParseError: "no parseable Markdown table found for this case",
		}
	}

	table := tables[0]
	items := make([]EvaluationItem, 0, len(table.Rows))
	for i, row := range table.Rows {
		field := ""
		if i < len(rowFields) {
			field = rowFields[i]
		}
		items = append(items, rowToItem(field, row))
	}

	return CaseEvaluation{TestCaseID: caseID, Evaluations: items}
}

func rowToItem(field string, row []string) EvaluationItem {
	item := EvaluationItem{Field: field}
	if len(row) > 0 {
		item.Content = row[0]
	}
	if len(row) > 1 {
		item.Score = row[1]
	}
	if len(row) > 2 {
		item.Suggestion = row[2]
	}
	return item
}
