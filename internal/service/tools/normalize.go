package tools

import (
	"encoding/json"
	"strings"
)

// The ScreenApp API's response shapes are inconsistent across environments
// and versions. Each function in this file normalizes one upstream resource
// type into a predictable shape, defaulting every field the upstream may
// omit, so the executor never reasons about missing fields.

// normalizeRecordingList extracts the recordings array and total count from
// a list response. The array may live under "data", be the bare response
// body, or be absent entirely. When the upstream omits a total, the length
// of the returned array is used.
func normalizeRecordingList(raw json.RawMessage) ([]map[string]any, int) {
	var asArray []map[string]any
	if err := json.Unmarshal(raw, &asArray); err == nil {
		// a JSON null decodes into a nil slice
		if asArray == nil {
			asArray = []map[string]any{}
		}
		return asArray, len(asArray)
	}

	var asObject map[string]any
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return []map[string]any{}, 0
	}

	items := []map[string]any{}
	if data, ok := asObject["data"].([]any); ok {
		for _, item := range data {
			if m, ok := item.(map[string]any); ok {
				items = append(items, m)
			}
		}
	}

	total := len(items)
	if t, ok := asObject["total"].(float64); ok {
		total = int(t)
	}
	return items, total
}

// normalizeRecording unwraps a single-recording response, tolerating a
// "data" envelope around the recording object.
func normalizeRecording(raw json.RawMessage) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return map[string]any{}
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

// projectRecording reduces a recording object to the stable subset of fields
// exposed to clients, defaulting everything the upstream omits.
func projectRecording(rec map[string]any) map[string]any {
	title := stringField(rec, "title")
	if title == "" {
		title = stringField(rec, "name")
	}
	if title == "" {
		title = "Untitled"
	}

	participants, ok := rec["participants"].([]any)
	if !ok {
		participants = []any{}
	}

	return map[string]any{
		"id":           stringField(rec, "id", "_id", "fileId"),
		"title":        title,
		"createdAt":    stringField(rec, "createdAt", "created_at"),
		"duration":     numberField(rec, "duration"),
		"participants": participants,
	}
}

// projectRecordingDetail is the richer projection used by get_recording_details.
func projectRecordingDetail(rec map[string]any) map[string]any {
	detail := projectRecording(rec)
	detail["description"] = stringField(rec, "description", "summary")
	detail["status"] = stringField(rec, "status")
	detail["url"] = stringField(rec, "url", "shareUrl")
	return detail
}

// normalizeTranscript extracts the transcript text, word count and language
// from a transcript response. The response may be a bare string, an object
// with a "transcript" field, or a "data" envelope around either.
func normalizeTranscript(raw json.RawMessage) (text string, wordCount int, language string) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, len(strings.Fields(asString)), ""
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", 0, ""
	}
	if data, ok := obj["data"].(map[string]any); ok {
		obj = data
	}

	text = stringField(obj, "transcript", "text")
	language = stringField(obj, "language")

	wordCount = int(numberField(obj, "wordCount"))
	if wordCount == 0 && text != "" {
		wordCount = len(strings.Fields(text))
	}
	return text, wordCount, language
}

// normalizeSummary extracts the summary text and its list fields from a
// summary response, defaulting missing lists to empty arrays.
func normalizeSummary(raw json.RawMessage) (summary string, actionItems, keyPoints, topics []any) {
	actionItems, keyPoints, topics = []any{}, []any{}, []any{}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", actionItems, keyPoints, topics
	}
	if data, ok := obj["data"].(map[string]any); ok {
		obj = data
	}

	summary = stringField(obj, "summary", "text")
	if items, ok := obj["actionItems"].([]any); ok {
		actionItems = items
	}
	if points, ok := obj["keyPoints"].([]any); ok {
		keyPoints = points
	}
	if t, ok := obj["topics"].([]any); ok {
		topics = t
	}
	return summary, actionItems, keyPoints, topics
}

// stringField returns the first of the given keys that holds a non-empty
// string, or "".
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// numberField returns the first of the given keys that holds a number, or 0.
func numberField(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if n, ok := m[key].(float64); ok {
			return n
		}
	}
	return 0
}
