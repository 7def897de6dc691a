package collection_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/dashboard/internal/collection"
)

func ids(records []collection.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID())
	}
	return out
}

func TestDecode_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantShape collection.Shape
		wantIDs   []string
	}{
		{
			name:      "bare array",
			payload:   `[{"id":1,"name":"a"},{"id":2,"name":"b"}]`,
			wantShape: collection.ShapeArray,
			wantIDs:   []string{"1", "2"},
		},
		{
			name:      "envelope",
			payload:   `{"count":2,"next":null,"results":[{"id":"x"},{"id":"y"}]}`,
			wantShape: collection.ShapeEnvelope,
			wantIDs:   []string{"x", "y"},
		},
		{
			name:      "empty array",
			payload:   ` [] `,
			wantShape: collection.ShapeArray,
			wantIDs:   []string{},
		},
		{
			name:      "empty envelope",
			payload:   `{"results":[]}`,
			wantShape: collection.ShapeEnvelope,
			wantIDs:   []string{},
		},
		{
			name:      "object without results",
			payload:   `{"detail":"nothing here"}`,
			wantShape: collection.ShapeUnrecognized,
			wantIDs:   []string{},
		},
		{
			name:      "results is not an array",
			payload:   `{"results":{"id":1}}`,
			wantShape: collection.ShapeUnrecognized,
			wantIDs:   []string{},
		},
		{
			name:      "null",
			payload:   `null`,
			wantShape: collection.ShapeUnrecognized,
			wantIDs:   []string{},
		},
		{
			name:      "scalar",
			payload:   `"users"`,
			wantShape: collection.ShapeUnrecognized,
			wantIDs:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := collection.Decode([]byte(tt.payload))
			require.NoError(t, err)

			assert.Equal(t, tt.wantShape, resp.Shape)
			records := resp.Unwrap()
			require.NotNil(t, records)
			assert.Equal(t, tt.wantIDs, ids(records))
		})
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	for _, payload := range []string{``, `{"results":[`, `not json`, `[{"id":1},]`} {
		_, err := collection.Decode([]byte(payload))
		assert.Error(t, err, "payload %q", payload)
	}
}

func TestDecode_PreservesRecordBytes(t *testing.T) {
	payload := `{"results":[{"id": 7, "score": 1.50, "name":"Tony"}]}`

	resp, err := collection.Decode([]byte(payload))
	require.NoError(t, err)

	records := resp.Unwrap()
	require.Len(t, records, 1)
	assert.Equal(t, `{"id": 7, "score": 1.50, "name":"Tony"}`, string(records[0].Raw()))

	out, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7,"score":1.50,"name":"Tony"}]`, string(out))
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "array", collection.ShapeArray.String())
	assert.Equal(t, "envelope", collection.ShapeEnvelope.String())
	assert.Equal(t, "unrecognized", collection.ShapeUnrecognized.String())
}
