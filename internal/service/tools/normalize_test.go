package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRecordingListShapes(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLen   int
		wantTotal int
	}{
		{name: "bare array", raw: `[{"id": "r1"}, {"id": "r2"}]`, wantLen: 2, wantTotal: 2},
		{name: "data envelope", raw: `{"data": [{"id": "r1"}]}`, wantLen: 1, wantTotal: 1},
		{name: "explicit total", raw: `{"data": [{"id": "r1"}], "total": 57}`, wantLen: 1, wantTotal: 57},
		{name: "empty object", raw: `{}`, wantLen: 0, wantTotal: 0},
		{name: "null", raw: `null`, wantLen: 0, wantTotal: 0},
		{name: "garbage", raw: `"nope"`, wantLen: 0, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total := normalizeRecordingList(json.RawMessage(tt.raw))
			assert.Len(t, items, tt.wantLen)
			assert.Equal(t, tt.wantTotal, total)
			assert.NotNil(t, items)
		})
	}
}

func TestNormalizeTranscriptShapes(t *testing.T) {
	// bare string
	text, words, lang := normalizeTranscript(json.RawMessage(`"one two three"`))
	assert.Equal(t, "one two three", text)
	assert.Equal(t, 3, words)
	assert.Empty(t, lang)

	// object with explicit word count and language
	text, words, lang = normalizeTranscript(json.RawMessage(
		`{"transcript": "hola mundo", "wordCount": 2, "language": "es"}`))
	assert.Equal(t, "hola mundo", text)
	assert.Equal(t, 2, words)
	assert.Equal(t, "es", lang)

	// data envelope, word count derived from the text
	text, words, _ = normalizeTranscript(json.RawMessage(`{"data": {"text": "a b c d"}}`))
	assert.Equal(t, "a b c d", text)
	assert.Equal(t, 4, words)

	// unusable body
	text, words, _ = normalizeTranscript(json.RawMessage(`42`))
	assert.Empty(t, text)
	assert.Zero(t, words)
}

func TestNormalizeSummaryDefaultsLists(t *testing.T) {
	summary, actionItems, keyPoints, topics := normalizeSummary(json.RawMessage(`{"summary": "done"}`))
	assert.Equal(t, "done", summary)
	assert.Equal(t, []any{}, actionItems)
	assert.Equal(t, []any{}, keyPoints)
	assert.Equal(t, []any{}, topics)

	summary, actionItems, _, _ = normalizeSummary(json.RawMessage(
		`{"data": {"summary": "s", "actionItems": ["a", "b"]}}`))
	assert.Equal(t, "s", summary)
	assert.Equal(t, []any{"a", "b"}, actionItems)
}

func TestProjectRecordingIDFallbacks(t *testing.T) {
	assert.Equal(t, "x", projectRecording(map[string]any{"id": "x"})["id"])
	assert.Equal(t, "y", projectRecording(map[string]any{"_id": "y"})["id"])
	assert.Equal(t, "z", projectRecording(map[string]any{"fileId": "z"})["id"])
	assert.Equal(t, "", projectRecording(map[string]any{})["id"])
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", excerpt("abc", 5))
	assert.Equal(t, "abcde", excerpt("abcde", 5))
	assert.Equal(t, "abcde...", excerpt("abcdefgh", 5))

	// truncation counts runes, not bytes
	assert.Equal(t, "héllo...", excerpt("héllo wörld", 5))
}
