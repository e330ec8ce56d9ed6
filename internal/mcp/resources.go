package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	uriLast    = "atsmatch://last"
	uriSummary = "atsmatch://summary"
	uriRecent  = "atsmatch://recent"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriLast,
		Name:        "Last Audit",
		Description: "Snapshot of the most recent audit (Match: N% | ATS: M%) with its missing keywords",
		MimeType:    "text/plain",
	},
	{
		URI:         uriSummary,
		Name:        "Audit Summary",
		Description: "Audit counts per tier, average scores and the most often missing keywords",
		MimeType:    "text/plain",
	},
	{
		URI:         uriRecent,
		Name:        "Recent Audits",
		Description: "The last 10 audits",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
