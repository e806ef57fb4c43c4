package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `prd-store keeps Product Requirements Documents (PRDs) in memory.

A PRD has a title, description, author, lifecycle status, priority, completion percentage and tags.
New PRDs start as Draft, Medium priority, 0% complete.

Typical workflow:
1) Browse: list_prds (filter by status, priority or author) or search_prds.
2) Create: create_prd with title, description and author.
3) Progress: update_prd_status, set_prd_completion, set_prd_priority, add_prd_tag.
4) Report: get_statistics for the status and priority histograms; get_recent_activity for the audit trail.
5) Retire: deactivate_prd. Deactivated PRDs can no longer be read or changed.

Docs:
- prd://docs/workflow (statuses, errors, conventions)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "prd://docs/workflow",
		Name:        "docs_workflow",
		Title:       "PRD workflow",
		Description: "Lifecycle statuses, priorities, error codes and tool conventions.",
		Content: `# PRD workflow

## Statuses

Draft → InReview → Approved → InDevelopment → Testing → Implemented → Archived

The order is the usual lifecycle, but it is not enforced: ` + "`update_prd_status`" + ` accepts any status
from any status. Status names are case-insensitive and ignore ` + "`_`" + `, ` + "`-`" + ` and spaces
(` + "`in_review`" + ` and ` + "`In Review`" + ` both mean InReview).

## Priorities

Low, Medium (default), High, Critical.

## Completion

` + "`set_prd_completion`" + ` clamps the value to 0..100 instead of rejecting it.

## Error codes

- ` + "`INVALID_ARGUMENT`" + `: a required field is blank or too long (title and author 256 characters, description 512).
- ` + "`INVALID_STATUS`" + ` / ` + "`INVALID_PRIORITY`" + `: unknown enum name.
- ` + "`PRD_NOT_FOUND`" + `: unknown or deactivated ID. The store is left unchanged.
- ` + "`CAPACITY_EXCEEDED`" + `: the store was configured with a maximum size and is full.

## Search

` + "`search_prds`" + ` matches the query as a case-insensitive substring of the title or description,
or of any tag. A blank query returns nothing.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
