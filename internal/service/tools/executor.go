package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rakesh1308/screenapp-mcp-server/internal/telemetry"
)

const (
	listLimitDefault   = 20
	listLimitMax       = 100
	searchLimitDefault = 10

	// searchScanLimit bounds client-side search to the first page of
	// recordings. This is a documented limitation: the upstream search
	// endpoint is unreliable, so search is approximated locally and only
	// covers whatever the first 100 recordings contain.
	searchScanLimit = 100

	// answerExcerptLimit is the number of transcript characters included in
	// an answer before truncation.
	answerExcerptLimit = 2000
)

const (
	transcriptUnavailable = "[transcript unavailable]"
	summaryUnavailable    = "[summary unavailable]"

	answerPrefix = "Based on the transcript of this recording:\n\n"

	// proTierDisclaimer is appended to every answer. The server performs no
	// real question answering; it returns a bounded transcript excerpt.
	proTierDisclaimer = "Note: Full AI-powered Q&A requires a ScreenApp Pro plan or higher. " +
		"This answer is an excerpt from the transcript, not an AI-generated response."
)

// UpstreamAPI is the slice of the ScreenApp client the executor needs.
type UpstreamAPI interface {
	ListRecordings(ctx context.Context, limit, offset int) (json.RawMessage, error)
	GetRecording(ctx context.Context, id string) (json.RawMessage, error)
	GetTranscript(ctx context.Context, id, format string) (json.RawMessage, error)
	GetSummary(ctx context.Context, id string) (json.RawMessage, error)
	ListTeams(ctx context.Context) (json.RawMessage, error)
	GetTeam(ctx context.Context, id string) (json.RawMessage, error)
	GetProfile(ctx context.Context) (json.RawMessage, error)
	AddFileTag(ctx context.Context, fileID, key, value string) (json.RawMessage, error)
	RemoveFileTag(ctx context.Context, fileID, key string) (json.RawMessage, error)
	RegisterWebhook(ctx context.Context, webhookURL, name string) (json.RawMessage, error)
	UnregisterWebhook(ctx context.Context, webhookURL string) (json.RawMessage, error)
}

// Executor maps a canonical tool name plus arguments to one upstream
// workflow and returns exactly one Result per execution.
type Executor struct {
	api     UpstreamAPI
	metrics telemetry.ToolMetrics
}

// NewExecutor creates a tool executor backed by the given upstream API.
func NewExecutor(api UpstreamAPI, metrics telemetry.ToolMetrics) *Executor {
	return &Executor{api: api, metrics: metrics}
}

// Execute runs the named tool with the given arguments.
// Unknown tool names and argument errors yield a Failed result, never an error.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) Result {
	started := time.Now()

	result := e.execute(ctx, name, args)
	e.metrics.RecordToolCall(ctx, name, result.Outcome(), time.Since(started))

	return result
}

func (e *Executor) execute(ctx context.Context, name string, args map[string]any) Result {
	if args == nil {
		args = map[string]any{}
	}

	switch name {
	case "list_recordings":
		return e.listRecordings(ctx, args)
	case "search_recordings":
		return e.searchRecordings(ctx, args)
	case "get_recording_details":
		return e.getRecordingDetails(ctx, args)
	case "get_transcript":
		return e.getTranscript(ctx, args)
	case "get_summary":
		return e.getSummary(ctx, args)
	case "ask_question_about_recording", "ask_recording":
		return e.askRecording(ctx, args)
	case "list_teams":
		return e.listTeams(ctx)
	case "get_team":
		return e.getTeam(ctx, args)
	case "get_profile":
		return e.getProfile(ctx)
	case "add_file_tag":
		return e.addFileTag(ctx, args)
	case "remove_file_tag":
		return e.removeFileTag(ctx, args)
	case "register_webhook":
		return e.registerWebhook(ctx, args)
	case "unregister_webhook":
		return e.unregisterWebhook(ctx, args)
	default:
		return Failed(fmt.Sprintf("Unknown tool: %s", name))
	}
}

func (e *Executor) listRecordings(ctx context.Context, args map[string]any) Result {
	limit := clamp(intArg(args, "limit", listLimitDefault), 1, listLimitMax)
	offset := intArg(args, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	raw, err := e.api.ListRecordings(ctx, limit, offset)
	if err != nil {
		return Failed(fmt.Sprintf("failed to list recordings: %v", err))
	}

	items, total := normalizeRecordingList(raw)
	recordings := make([]map[string]any, len(items))
	for i, item := range items {
		recordings[i] = projectRecording(item)
	}

	return Ok(map[string]any{
		"recordings": recordings,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

func (e *Executor) searchRecordings(ctx context.Context, args map[string]any) Result {
	query := strings.TrimSpace(stringArg(args, "query"))
	if query == "" {
		return Failed("query argument is required and must not be empty")
	}
	limit := clamp(intArg(args, "limit", searchLimitDefault), 1, listLimitMax)

	// The upstream search endpoint is not used; see searchScanLimit.
	raw, err := e.api.ListRecordings(ctx, searchScanLimit, 0)
	if err != nil {
		return Failed(fmt.Sprintf("failed to search recordings: %v", err))
	}

	items, _ := normalizeRecordingList(raw)
	needle := strings.ToLower(query)

	matches := []map[string]any{}
	for _, item := range items {
		if len(matches) >= limit {
			break
		}
		haystack := strings.ToLower(
			stringField(item, "title", "name") + " " +
				stringField(item, "summary") + " " +
				stringField(item, "description"),
		)
		if strings.Contains(haystack, needle) {
			matches = append(matches, projectRecording(item))
		}
	}

	return Ok(map[string]any{
		"query":    query,
		"matches":  matches,
		"count":    len(matches),
		"searched": len(items),
	})
}

func (e *Executor) getRecordingDetails(ctx context.Context, args map[string]any) Result {
	recordingID := strings.TrimSpace(stringArg(args, "recording_id"))
	if recordingID == "" {
		return Failed("recording_id argument is required and must not be empty")
	}

	raw, err := e.api.GetRecording(ctx, recordingID)
	if err != nil {
		return Failed(fmt.Sprintf("failed to get recording %s: %v", recordingID, err))
	}

	return Ok(projectRecordingDetail(normalizeRecording(raw)))
}

// getTranscript degrades instead of failing when the upstream transcript
// endpoint is broken: the ask tool depends on it, and a placeholder payload
// is more useful to clients than a cascading failure.
func (e *Executor) getTranscript(ctx context.Context, args map[string]any) Result {
	recordingID := strings.TrimSpace(stringArg(args, "recording_id"))
	if recordingID == "" {
		return Failed("recording_id argument is required and must not be empty")
	}
	format := normalizeTranscriptFormat(stringArg(args, "format"))

	raw, err := e.api.GetTranscript(ctx, recordingID, format)
	if err != nil {
		return Degraded(map[string]any{
			"recordingId": recordingID,
			"format":      format,
			"transcript":  transcriptUnavailable,
			"wordCount":   0,
			"success":     false,
			"error":       err.Error(),
		}, err.Error())
	}

	text, wordCount, language := normalizeTranscript(raw)
	return Ok(map[string]any{
		"recordingId": recordingID,
		"format":      format,
		"transcript":  text,
		"wordCount":   wordCount,
		"language":    language,
		"success":     true,
	})
}

// getSummary degrades on upstream failure the same way getTranscript does.
func (e *Executor) getSummary(ctx context.Context, args map[string]any) Result {
	recordingID := strings.TrimSpace(stringArg(args, "recording_id"))
	if recordingID == "" {
		return Failed("recording_id argument is required and must not be empty")
	}

	raw, err := e.api.GetSummary(ctx, recordingID)
	if err != nil {
		return Degraded(map[string]any{
			"recordingId": recordingID,
			"summary":     summaryUnavailable,
			"actionItems": []any{},
			"keyPoints":   []any{},
			"success":     false,
			"error":       err.Error(),
		}, err.Error())
	}

	summary, actionItems, keyPoints, topics := normalizeSummary(raw)
	return Ok(map[string]any{
		"recordingId": recordingID,
		"summary":     summary,
		"actionItems": actionItems,
		"keyPoints":   keyPoints,
		"topics":      topics,
		"success":     true,
	})
}

func (e *Executor) askRecording(ctx context.Context, args map[string]any) Result {
	recordingID := strings.TrimSpace(stringArg(args, "recording_id"))
	if recordingID == "" {
		return Failed("recording_id argument is required and must not be empty")
	}
	question := strings.TrimSpace(stringArg(args, "question"))
	if question == "" {
		return Failed("question argument is required and must not be empty")
	}

	transcriptResult := e.getTranscript(ctx, map[string]any{
		"recording_id": recordingID,
		"format":       "text",
	})
	if transcriptResult.Status != StatusOk {
		// No transcript, no answer. Never fabricate content.
		return Degraded(map[string]any{
			"recordingId": recordingID,
			"question":    question,
			"answer":      "The transcript for this recording is unavailable, so the question cannot be answered.",
			"success":     false,
			"error":       transcriptResult.Reason,
		}, transcriptResult.Reason)
	}

	payload, _ := transcriptResult.Payload.(map[string]any)
	transcript, _ := payload["transcript"].(string)

	return Ok(map[string]any{
		"recordingId": recordingID,
		"question":    question,
		"answer":      answerPrefix + excerpt(transcript, answerExcerptLimit) + "\n\n" + proTierDisclaimer,
		"success":     true,
	})
}

func (e *Executor) listTeams(ctx context.Context) Result {
	raw, err := e.api.ListTeams(ctx)
	if err != nil {
		return Failed(fmt.Sprintf("failed to list teams: %v", err))
	}
	return Ok(rawPayload(raw))
}

func (e *Executor) getTeam(ctx context.Context, args map[string]any) Result {
	teamID := strings.TrimSpace(stringArg(args, "team_id"))
	if teamID == "" {
		return Failed("team_id argument is required and must not be empty")
	}

	raw, err := e.api.GetTeam(ctx, teamID)
	if err != nil {
		return Failed(fmt.Sprintf("failed to get team %s: %v", teamID, err))
	}
	return Ok(rawPayload(raw))
}

func (e *Executor) getProfile(ctx context.Context) Result {
	raw, err := e.api.GetProfile(ctx)
	if err != nil {
		return Failed(fmt.Sprintf("failed to get profile: %v", err))
	}
	return Ok(rawPayload(raw))
}

func (e *Executor) addFileTag(ctx context.Context, args map[string]any) Result {
	fileID := strings.TrimSpace(stringArg(args, "file_id"))
	key := strings.TrimSpace(stringArg(args, "key"))
	value := stringArg(args, "value")
	if fileID == "" || key == "" || value == "" {
		return Failed("file_id, key and value arguments are all required and must not be empty")
	}

	if _, err := e.api.AddFileTag(ctx, fileID, key, value); err != nil {
		return Failed(fmt.Sprintf("failed to add tag to file %s: %v", fileID, err))
	}
	return Ok(map[string]any{"fileId": fileID, "key": key, "value": value, "tagged": true})
}

func (e *Executor) removeFileTag(ctx context.Context, args map[string]any) Result {
	fileID := strings.TrimSpace(stringArg(args, "file_id"))
	key := strings.TrimSpace(stringArg(args, "key"))
	if fileID == "" || key == "" {
		return Failed("file_id and key arguments are required and must not be empty")
	}

	if _, err := e.api.RemoveFileTag(ctx, fileID, key); err != nil {
		return Failed(fmt.Sprintf("failed to remove tag from file %s: %v", fileID, err))
	}
	return Ok(map[string]any{"fileId": fileID, "key": key, "removed": true})
}

func (e *Executor) registerWebhook(ctx context.Context, args map[string]any) Result {
	webhookURL := strings.TrimSpace(stringArg(args, "url"))
	name := strings.TrimSpace(stringArg(args, "name"))
	if webhookURL == "" || name == "" {
		return Failed("url and name arguments are required and must not be empty")
	}

	if _, err := e.api.RegisterWebhook(ctx, webhookURL, name); err != nil {
		return Failed(fmt.Sprintf("failed to register webhook: %v", err))
	}
	return Ok(map[string]any{"url": webhookURL, "name": name, "registered": true})
}

func (e *Executor) unregisterWebhook(ctx context.Context, args map[string]any) Result {
	webhookURL := strings.TrimSpace(stringArg(args, "url"))
	if webhookURL == "" {
		return Failed("url argument is required and must not be empty")
	}

	if _, err := e.api.UnregisterWebhook(ctx, webhookURL); err != nil {
		return Failed(fmt.Sprintf("failed to unregister webhook: %v", err))
	}
	return Ok(map[string]any{"url": webhookURL, "removed": true})
}

// normalizeTranscriptFormat coerces any invalid format value to "text".
func normalizeTranscriptFormat(format string) string {
	switch format {
	case "text", "srt", "vtt", "json":
		return format
	default:
		return "text"
	}
}

// excerpt returns the first limit characters of s, appending an ellipsis
// marker when s is longer.
func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// rawPayload converts a raw upstream body into a JSON-serializable payload,
// passing it through untouched when it parses and wrapping it otherwise.
func rawPayload(raw json.RawMessage) any {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return map[string]any{"raw": string(raw)}
	}
	return payload
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg reads a numeric argument. JSON numbers arrive as float64; string
// digits are tolerated because some MCP clients send them. Malformed strings
// fall back rather than being partially parsed.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
