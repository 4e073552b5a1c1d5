package issuedata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalJSON_PreservesUnknownFieldsInExtra(t *testing.T) {
	raw := []byte(`{
		"kind": "bug",
		"id": "B1",
		"title": "支付回调超时",
		"workspace_id": "ws-42",
		"custom_field_one": "urgent"
	}`)

	var r Record
	require.NoError(t, json.Unmarshal(raw, &r))

	assert.Equal(t, KindBug, r.Kind)
	assert.Equal(t, "B1", r.ID)
	assert.Equal(t, "支付回调超时", r.Title)
	require.Len(t, r.Extra, 2)
	assert.JSONEq(t, `"ws-42"`, string(r.Extra["workspace_id"]))
	assert.JSONEq(t, `"urgent"`, string(r.Extra["custom_field_one"]))
}

func TestRecord_UnmarshalJSON_NoUnknownFieldsLeavesExtraNil(t *testing.T) {
	raw := []byte(`{"kind": "story", "id": "S1", "title": "t"}`)

	var r Record
	require.NoError(t, json.Unmarshal(raw, &r))

	assert.Nil(t, r.Extra)
}

func TestRecord_MarshalJSON_FlattensExtraBackToTopLevel(t *testing.T) {
	r := Record{
		Kind:  KindBug,
		ID:    "B1",
		Title: "t",
		Extra: map[string]json.RawMessage{"workspace_id": json.RawMessage(`"ws-42"`)},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, "ws-42", obj["workspace_id"])
	assert.NotContains(t, obj, "extra")
}

func TestRecord_UnmarshalThenMarshal_RoundTripsUnknownFieldVerbatim(t *testing.T) {
	raw := []byte(`{"kind":"story","id":"S1","title":"t","description":"","status":"","priority":"","created_at":"","modified_at":"","workspace_id":"ws-42"}`)

	var r Record
	require.NoError(t, json.Unmarshal(raw, &r))

	out, err := json.Marshal(r)
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(out, &obj))
	assert.Equal(t, "ws-42", obj["workspace_id"])
}

func TestDataset_Records_SelectsByKind(t *testing.T) {
	ds := Dataset{
		Stories: []Record{{Kind: KindStory, ID: "S1"}},
		Bugs:    []Record{{Kind: KindBug, ID: "B1"}},
	}

	assert.Equal(t, ds.Stories, ds.Records(KindStory))
	assert.Equal(t, ds.Bugs, ds.Records(KindBug))
	assert.Nil(t, ds.Records(Kind("unknown")))
}
