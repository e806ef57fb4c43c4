package mcp

import (
	"context"
	"log/slog"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to clients during initialization.
const Version = "0.1.0"

// PRDService defines PRD store operations needed by MCP.
type PRDService interface {
	Create(ctx context.Context, req prd.CreateRequest) (*prd.PRD, error)
	Get(ctx context.Context, id string) (*prd.PRD, error)
	UpdateStatus(ctx context.Context, id string, status prd.Status) (*prd.PRD, error)
	SetCompletion(ctx context.Context, id string, percent int) (*prd.PRD, error)
	SetPriority(ctx context.Context, id string, priority prd.Priority) (*prd.PRD, error)
	AddTag(ctx context.Context, id, tag string) (*prd.PRD, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, opts prd.ListOptions) ([]prd.PRD, error)
	Search(ctx context.Context, query string, opts prd.SearchOptions) ([]prd.PRD, error)
	Statistics(ctx context.Context) (*prd.Statistics, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config contains server configuration.
type Config struct {
	PRDs     PRDService
	Activity ActivityService
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "prd-store",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}
