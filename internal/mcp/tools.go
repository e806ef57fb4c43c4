package mcp

import (
	"context"
	"strings"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultActivityLimit = 20
	topAuthors           = 5
)

type tools struct {
	prds     PRDService
	activity ActivityService
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	t := &tools{prds: cfg.PRDs, activity: cfg.Activity}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_prd",
		Description: "Create a new PRD in Draft status with 0% completion",
	}, t.createPRD)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_prd",
		Description: "Get an active PRD by ID",
	}, t.getPRD)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_prd_status",
		Description: "Move a PRD to any lifecycle status",
	}, t.updateStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_prd_completion",
		Description: "Set the completion percentage of a PRD; values outside 0..100 are clamped",
	}, t.setCompletion)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_prd_priority",
		Description: "Change the priority of a PRD",
	}, t.setPriority)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_prd_tag",
		Description: "Attach a tag to a PRD",
	}, t.addTag)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "deactivate_prd",
		Description: "Soft-delete a PRD; it disappears from lookups, listings and statistics",
	}, t.deactivate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_prds",
		Description: "List active PRDs in creation order, optionally filtered by status, priority and author",
	}, t.listPRDs)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_prds",
		Description: "Case-insensitive search over PRD titles, descriptions and tags",
	}, t.searchPRDs)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_statistics",
		Description: "Counts per status and priority, average completion and top authors over active PRDs",
	}, t.getStatistics)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "Recent store mutations, newest first",
	}, t.getRecentActivity)
}

func (t *tools) createPRD(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreatePRDParams) (*sdkmcp.CallToolResult, PRDView, error) {
	req := prd.CreateRequest{
		Title:       in.Title,
		Description: in.Description,
		Author:      in.Author,
		Tags:        in.Tags,
	}
	if in.Priority != "" {
		priority, err := prd.ParsePriority(in.Priority)
		if err != nil {
			return nil, PRDView{}, toolError(err)
		}
		req.Priority = priority
	}
	return prdResult(t.prds.Create(ctx, req))
}

func (t *tools) getPRD(ctx context.Context, _ *sdkmcp.CallToolRequest, in PRDIDParams) (*sdkmcp.CallToolResult, PRDView, error) {
	return prdResult(t.prds.Get(ctx, in.ID))
}

func (t *tools) updateStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateStatusParams) (*sdkmcp.CallToolResult, PRDView, error) {
	status, err := prd.ParseStatus(in.Status)
	if err != nil {
		return nil, PRDView{}, toolError(err)
	}
	return prdResult(t.prds.UpdateStatus(ctx, in.ID, status))
}

func (t *tools) setCompletion(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetCompletionParams) (*sdkmcp.CallToolResult, PRDView, error) {
	return prdResult(t.prds.SetCompletion(ctx, in.ID, in.Percent))
}

func (t *tools) setPriority(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetPriorityParams) (*sdkmcp.CallToolResult, PRDView, error) {
	priority, err := prd.ParsePriority(in.Priority)
	if err != nil {
		return nil, PRDView{}, toolError(err)
	}
	return prdResult(t.prds.SetPriority(ctx, in.ID, priority))
}

func (t *tools) addTag(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddTagParams) (*sdkmcp.CallToolResult, PRDView, error) {
	return prdResult(t.prds.AddTag(ctx, in.ID, in.Tag))
}

func (t *tools) deactivate(ctx context.Context, _ *sdkmcp.CallToolRequest, in PRDIDParams) (*sdkmcp.CallToolResult, DeactivateResult, error) {
	if err := t.prds.Deactivate(ctx, in.ID); err != nil {
		return nil, DeactivateResult{}, toolError(err)
	}
	return nil, DeactivateResult{ID: in.ID, Deactivated: true}, nil
}

func (t *tools) listPRDs(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListPRDsParams) (*sdkmcp.CallToolResult, PRDListResult, error) {
	opts := prd.ListOptions{
		Author: strings.TrimSpace(in.Author),
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.Status != "" {
		status, err := prd.ParseStatus(in.Status)
		if err != nil {
			return nil, PRDListResult{}, toolError(err)
		}
		opts.Status = status
	}
	if in.Priority != "" {
		priority, err := prd.ParsePriority(in.Priority)
		if err != nil {
			return nil, PRDListResult{}, toolError(err)
		}
		opts.Priority = priority
	}

	prds, err := t.prds.List(ctx, opts)
	if err != nil {
		return nil, PRDListResult{}, toolError(err)
	}
	return nil, toPRDList(prds), nil
}

func (t *tools) searchPRDs(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchPRDsParams) (*sdkmcp.CallToolResult, PRDListResult, error) {
	prds, err := t.prds.Search(ctx, in.Query, prd.SearchOptions{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, PRDListResult{}, toolError(err)
	}
	return nil, toPRDList(prds), nil
}

func (t *tools) getStatistics(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GetStatisticsParams) (*sdkmcp.CallToolResult, StatisticsView, error) {
	stats, err := t.prds.Statistics(ctx)
	if err != nil {
		return nil, StatisticsView{}, toolError(err)
	}
	return nil, toStatisticsView(stats), nil
}

func (t *tools) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, ActivityListResult, error) {
	if t.activity == nil {
		return nil, ActivityListResult{Entries: []ActivityView{}}, nil
	}

	opts := activity.ListActivityOptions{
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultActivityLimit
	}
	if in.PRDID != "" {
		opts.PRDID = &in.PRDID
	}
	if in.Type != "" {
		typ := activity.ActivityType(in.Type)
		opts.ActivityType = &typ
	}

	entries, err := t.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, ActivityListResult{}, toolError(err)
	}
	return nil, toActivityList(entries), nil
}

func prdResult(p *prd.PRD, err error) (*sdkmcp.CallToolResult, PRDView, error) {
	if err != nil {
		return nil, PRDView{}, toolError(err)
	}
	return nil, toPRDView(p), nil
}
