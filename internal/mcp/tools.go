package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name: "analyze_resume",
		Description: "Score a resume against a job description. Returns matchScore (keyword coverage, 0-100), " +
			"atsScore (ATS compatibility estimate, 0-100), up to 8 missingKeywords and a one-line summary.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"resume_text": map[string]interface{}{
					"type":        "string",
					"description": "Plain text of the resume",
				},
				"job_description": map[string]interface{}{
					"type":        "string",
					"description": "Plain text of the job description",
				},
				"label": map[string]interface{}{
					"type":        "string",
					"description": "Label stored with the audit, e.g. the company or role",
				},
				"save": map[string]interface{}{
					"type":        "boolean",
					"description": "Store the audit in history (default: true)",
				},
				"detailed": map[string]interface{}{
					"type":        "boolean",
					"description": "Include matched keywords, the full missing list, similarity and tier",
				},
			},
			"required": []string{"resume_text", "job_description"},
		},
	},
	{
		Name:        "extract_keywords",
		Description: "Extract the keywords an ATS would look for in a text, most frequent first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Job description or other text",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of keywords (default: 30)",
				},
			},
			"required": []string{"text"},
		},
	},
	{
		Name:        "list_audits",
		Description: "List stored resume audits, newest first, with optional filters.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"tier": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"strong", "moderate", "low", "insufficient", "all"},
					"description": "Filter by tier. Use 'all' or omit for no filter.",
				},
				"min_ats": map[string]interface{}{
					"type":        "integer",
					"description": "Only audits with at least this ATS score",
				},
				"since_days": map[string]interface{}{
					"type":        "integer",
					"description": "Only audits from the last N days",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "search_audits",
		Description: "Search stored audits by label, resume source or job description source.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "get_audit",
		Description: "Get one stored audit by ID, unique ID prefix, or 'last' for the most recent.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Audit ID, ID prefix, or 'last'",
				},
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get aggregate statistics over stored audits: averages, best ATS score, counts per tier and the most often missing keywords.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"since_days": map[string]interface{}{
					"type":        "integer",
					"description": "Calculate stats for the last N days only",
				},
			},
		},
	},
}
