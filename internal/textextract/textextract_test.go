package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tapdlens/internal/issuedata"
)

func TestExtract_Story_SkipsEmptyFields(t *testing.T) {
	rec := issuedata.Record{
		Kind:  issuedata.KindStory,
		ID:    "S1",
		Title: "订单列表分页",
		// Description and others left empty on purpose.
		Status:   "open",
		Priority: "High",
	}

	got := Extract(rec)

	assert.Equal(t, "name 订单列表分页 | status open | priority High | type: story | id: S1", got)
}

func TestExtract_Bug_AllFields(t *testing.T) {
	rec := issuedata.Record{
		Kind:        issuedata.KindBug,
		ID:          "B1",
		Title:       "支付回调超时",
		Description: "支付完成但回调未到达",
		Priority:    "P0",
		Severity:    "critical",
		Status:      "open",
		Reporter:    "alice",
		Regression:  "12",
		CreatedAt:   "2025-01-01 10:00:00",
		ModifiedAt:  "2025-01-02 10:00:00",
	}

	got := Extract(rec)

	assert.Equal(t,
		"title 支付回调超时 | description 支付完成但回调未到达 | priority P0 | severity critical | status open | "+
			"reporter alice | regression 12 | created 2025-01-01 10:00:00 | modified 2025-01-02 10:00:00 | "+
			"type: bug | id: B1",
		got)
}
