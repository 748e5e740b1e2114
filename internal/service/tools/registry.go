// Package tools provides the static MCP tool catalog and the executor that
// maps tool calls onto ScreenApp API workflows.
package tools

import "github.com/mark3labs/mcp-go/mcp"

// Registry is the static catalog of tools this server exposes.
// It is built once at startup and never mutated; List returns the tools in
// declaration order.
type Registry struct {
	catalog []mcp.Tool
}

// NewRegistry builds the tool catalog.
func NewRegistry() *Registry {
	return &Registry{catalog: []mcp.Tool{
		mcp.NewTool("list_recordings",
			mcp.WithDescription("List recordings from your ScreenApp team with pagination"),
			mcp.WithNumber("limit",
				mcp.Description("Number of recordings to return, between 1 and 100 (default: 20)"),
				mcp.DefaultNumber(20),
			),
			mcp.WithNumber("offset",
				mcp.Description("Pagination offset (default: 0)"),
				mcp.DefaultNumber(0),
			),
		),
		mcp.NewTool("search_recordings",
			mcp.WithDescription(
				"Search recordings by title or summary. Searches the most recent 100 recordings only.",
			),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search query, matched case-insensitively against recording titles and summaries"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of matches to return (default: 10)"),
				mcp.DefaultNumber(10),
			),
		),
		mcp.NewTool("get_recording_details",
			mcp.WithDescription("Get detailed information about a specific recording"),
			mcp.WithString("recording_id",
				mcp.Required(),
				mcp.Description("The recording/file ID"),
			),
		),
		mcp.NewTool("get_transcript",
			mcp.WithDescription("Get the transcript of a recording"),
			mcp.WithString("recording_id",
				mcp.Required(),
				mcp.Description("The recording/file ID"),
			),
			mcp.WithString("format",
				mcp.Description("Transcript format (default: text)"),
				mcp.Enum("text", "srt", "vtt", "json"),
				mcp.DefaultString("text"),
			),
		),
		mcp.NewTool("get_summary",
			mcp.WithDescription("Get the AI-generated summary of a recording, including action items and key points"),
			mcp.WithString("recording_id",
				mcp.Required(),
				mcp.Description("The recording/file ID"),
			),
		),
		mcp.NewTool("ask_question_about_recording",
			mcp.WithDescription(
				"Ask a question about a recording. Returns the opening excerpt of the transcript as context; "+
					"full AI-powered Q&A requires an upgraded ScreenApp plan.",
			),
			mcp.WithString("recording_id",
				mcp.Required(),
				mcp.Description("The recording/file ID"),
			),
			mcp.WithString("question",
				mcp.Required(),
				mcp.Description("Question to ask about the recording"),
			),
		),
		mcp.NewTool("list_teams",
			mcp.WithDescription("List all teams the user belongs to in ScreenApp"),
		),
		mcp.NewTool("get_team",
			mcp.WithDescription("Get detailed information about a specific team"),
			mcp.WithString("team_id",
				mcp.Required(),
				mcp.Description("The team ID"),
			),
		),
		mcp.NewTool("get_profile",
			mcp.WithDescription("Get the current user's ScreenApp profile information"),
		),
		mcp.NewTool("add_file_tag",
			mcp.WithDescription("Add a tag to a file/recording for organization"),
			mcp.WithString("file_id",
				mcp.Required(),
				mcp.Description("The file ID"),
			),
			mcp.WithString("key",
				mcp.Required(),
				mcp.Description("Tag key (e.g. 'project', 'category')"),
			),
			mcp.WithString("value",
				mcp.Required(),
				mcp.Description("Tag value"),
			),
		),
		mcp.NewTool("remove_file_tag",
			mcp.WithDescription("Remove a tag from a file/recording"),
			mcp.WithString("file_id",
				mcp.Required(),
				mcp.Description("The file ID"),
			),
			mcp.WithString("key",
				mcp.Required(),
				mcp.Description("Tag key to remove"),
			),
		),
		mcp.NewTool("register_webhook",
			mcp.WithDescription("Register a webhook URL to receive real-time notifications for team recording events"),
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Webhook URL (must be HTTPS)"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name/description of the webhook"),
			),
		),
		mcp.NewTool("unregister_webhook",
			mcp.WithDescription("Unregister/remove a webhook URL for the team"),
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Webhook URL to unregister"),
			),
		),
	}}
}

// List returns all tool definitions in declaration order.
// Callers must not modify the returned slice.
func (r *Registry) List() []mcp.Tool {
	return r.catalog
}

// Names returns the names of all tools in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.catalog))
	for i, t := range r.catalog {
		names[i] = t.GetName()
	}
	return names
}
