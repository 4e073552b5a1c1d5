// Package textextract projects an issue record to the single joined string
// used for embedding and keyword analysis.
package textextract

import (
	"strings"

	"tapdlens/internal/issuedata"
)

type field struct {
	label string
	value string
}

// Extract projects rec to one canonical string per §4.6: non-empty labeled
// fields joined with " | ", label and value joined with " ".
func Extract(rec issuedata.Record) string {
	var fields []field

	switch rec.Kind {
	case issuedata.KindStory:
		fields = []field{
			{"name", rec.Title},
			{"description", rec.Description},
			{"status", rec.Status},
			{"priority", rec.Priority},
			{"creator", rec.Creator},
			{"iteration_id", rec.IterationID},
			{"created", rec.CreatedAt},
			{"modified", rec.ModifiedAt},
		}
	case issuedata.KindBug:
		fields = []field{
			{"title", rec.Title},
			{"description", rec.Description},
			{"priority", rec.Priority},
			{"severity", rec.Severity},
			{"status", rec.Status},
			{"reporter", rec.Reporter},
			{"regression", rec.Regression},
			{"created", rec.CreatedAt},
			{"modified", rec.ModifiedAt},
		}
	}

	parts := make([]string, 0, len(fields)+2)
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		parts = append(parts, f.label+" "+f.value)
	}
	parts = append(parts, "type: "+string(rec.Kind))
	parts = append(parts, "id: "+rec.ID)

	return strings.Join(parts, " | ")
}
