package ai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"code fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Here you go: {\"a\":{\"b\":2}} hope it helps", `{"a":{"b":2}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}

	_, err := extractJSON("no json here")
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestValidateResponse_Analysis(t *testing.T) {
	ok := json.RawMessage(`{"score":80,"errors":[{"type":"grammar","original":"a","correction":"b","explanation":"c"}],"suggestions":[]}`)
	assert.NoError(t, validateResponse(analysisSchema, ok))

	cases := map[string]string{
		"score out of range": `{"score":140,"errors":[],"suggestions":[]}`,
		"unknown error type": `{"score":50,"errors":[{"type":"spelling","original":"a","correction":"b","explanation":"c"}],"suggestions":[]}`,
		"missing errors":     `{"score":50,"suggestions":[]}`,
		"not json":           `{score:}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			err := validateResponse(analysisSchema, json.RawMessage(raw))
			var invalid *ErrInvalidResponse
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`anything`)))
}

func TestBuildGeminiSchema(t *testing.T) {
	s := buildGeminiSchema(analysisSchema.Definition)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"score", "errors", "suggestions"}, s.Required)
	require.Contains(t, s.Properties, "errors")
	errs := s.Properties["errors"]
	assert.Equal(t, genai.TypeArray, errs.Type)
	require.NotNil(t, errs.Items)
	assert.Equal(t, []string{"grammar", "vocabulary", "wordOrder", "politeness"}, errs.Items.Properties["type"].Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["score"].Type)
}

func TestMapGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	assert.ErrorAs(t, mapGeminiError(&genai.APIError{Code: 429, Message: "quota"}), &rl)

	var rejected *ErrRequestRejected
	require.ErrorAs(t, mapGeminiError(&genai.APIError{Code: 400, Message: "bad schema"}), &rejected)
	assert.Equal(t, 400, rejected.StatusCode)

	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, mapGeminiError(&genai.APIError{Code: 503}), &unavailable)
	assert.ErrorAs(t, mapGeminiError(errors.New("connection reset")), &unavailable)
}
