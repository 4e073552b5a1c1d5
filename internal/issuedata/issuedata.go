// Package issuedata defines the canonical issue-tracker data model shared
// across the analysis engine: stories, bugs, the dataset that holds them,
// and the chunk metadata produced when the dataset is indexed.
package issuedata

import "encoding/json"

// Kind distinguishes a story (requirement) from a bug (defect).
type Kind string

const (
	KindStory Kind = "story"
	KindBug   Kind = "bug"
)

// Record is one issue-tracker item. Unknown fields from the source platform
// are preserved verbatim in Extra so C7 can echo them back in search results.
type Record struct {
	Kind Kind `json:"kind"`

	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`

	Creator  string `json:"creator,omitempty"`  // stories: creator
	Reporter string `json:"reporter,omitempty"` // bugs: reporter

	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`

	// Story-only fields.
	IterationID string `json:"iteration_id,omitempty"`
	Due         string `json:"due,omitempty"`
	Begin       string `json:"begin,omitempty"`

	// Bug-only fields.
	Severity   string `json:"severity,omitempty"`
	Regression string `json:"regression,omitempty"`

	// Extra holds every top-level JSON key that isn't one of the fields
	// above, keyed by its original name. UnmarshalJSON/MarshalJSON keep it
	// flattened into the wire representation rather than nested under an
	// "extra" key, so a source field this type doesn't know about survives
	// a load/save round trip and C7's original_items echo unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// recordFields mirrors Record's known fields for JSON purposes, without the
// Extra field, so UnmarshalJSON/MarshalJSON can decode/encode the known
// shape without recursing into Record's own custom methods.
type recordFields struct {
	Kind Kind `json:"kind"`

	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`

	Creator  string `json:"creator,omitempty"`
	Reporter string `json:"reporter,omitempty"`

	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`

	IterationID string `json:"iteration_id,omitempty"`
	Due         string `json:"due,omitempty"`
	Begin       string `json:"begin,omitempty"`

	Severity   string `json:"severity,omitempty"`
	Regression string `json:"regression,omitempty"`
}

// recordKnownKeys are the wire names recordFields claims; anything else in
// the source object falls through to Extra.
var recordKnownKeys = []string{
	"kind", "id", "title", "description", "status", "priority",
	"creator", "reporter", "created_at", "modified_at",
	"iteration_id", "due", "begin", "severity", "regression",
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var known recordFields
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range recordKnownKeys {
		delete(raw, key)
	}

	*r = Record{
		Kind: known.Kind, ID: known.ID, Title: known.Title,
		Description: known.Description, Status: known.Status, Priority: known.Priority,
		Creator: known.Creator, Reporter: known.Reporter,
		CreatedAt: known.CreatedAt, ModifiedAt: known.ModifiedAt,
		IterationID: known.IterationID, Due: known.Due, Begin: known.Begin,
		Severity: known.Severity, Regression: known.Regression,
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	known := recordFields{
		Kind: r.Kind, ID: r.ID, Title: r.Title,
		Description: r.Description, Status: r.Status, Priority: r.Priority,
		Creator: r.Creator, Reporter: r.Reporter,
		CreatedAt: r.CreatedAt, ModifiedAt: r.ModifiedAt,
		IterationID: r.IterationID, Due: r.Due, Begin: r.Begin,
		Severity: r.Severity, Regression: r.Regression,
	}

	base, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(r.Extra)+len(recordKnownKeys))
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Dataset is the authoritative, wholesale-replaceable issue-tracker snapshot
// persisted as a single JSON document.
type Dataset struct {
	Stories []Record `json:"stories"`
	Bugs    []Record `json:"bugs"`
}

// Records returns the ordered record list for the given kind.
func (d Dataset) Records(k Kind) []Record {
	switch k {
	case KindStory:
		return d.Stories
	case KindBug:
		return d.Bugs
	default:
		return nil
	}
}

// ChunkMeta describes one chunk produced during indexing. Order within a
// built index's metadata list matches the corresponding vector row order.
type ChunkMeta struct {
	ChunkID    string   `json:"chunk_id"`
	Kind       Kind     `json:"kind"`
	ChunkIndex int      `json:"chunk_index"`
	ItemIDs    []string `json:"item_ids"`
	ItemCount  int      `json:"item_count"`
	Records    []Record `json:"original_items"`
	Text       string   `json:"text"`
}
