package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest_AcceptsSocketPayloads(t *testing.T) {
	want := Request{ID: "abc", Op: OpDecode, Text: "t", Key: "k"}

	testCases := []struct {
		name    string
		payload any
	}{
		{name: "map", payload: map[string]any{"id": "abc", "op": "decode", "text": "t", "key": "k"}},
		{name: "json string", payload: `{"id":"abc","op":"decode","text":"t","key":"k"}`},
		{name: "json bytes", payload: []byte(`{"id":"abc","op":"decode","text":"t","key":"k"}`)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeRequest(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeRequest_Errors(t *testing.T) {
	_, err := DecodeRequest(nil)
	require.ErrorIs(t, err, ErrEmptyPayload)

	_, err = DecodeRequest("{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode payload")
}

func TestToPayload_UsesWireNames(t *testing.T) {
	payload, err := toPayload(RevealLine{ID: "r1", Index: 3, Line: "4. step"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "r1", "index": float64(3), "line": "4. step"}, payload)

	line, err := DecodeRevealLine(payload)
	require.NoError(t, err)
	assert.Equal(t, RevealLine{ID: "r1", Index: 3, Line: "4. step"}, line)
}

func TestToPayload_OmitsEmptyKey(t *testing.T) {
	payload, err := toPayload(Response{ID: "1", Op: OpExtract, Status: "malformed", Text: "x"})

	require.NoError(t, err)
	assert.NotContains(t, payload, "key")
}
