// Package mcpserver exposes the briefing and article pipelines as MCP tools.
//
// Soft extraction failures are returned as ordinary text holding one of the
// fixed "Error: ..." diagnostics; transport failures fail the tool call.
package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/economist-mcp/internal/diag"
)

// ServerName is the implementation name announced to clients.
const ServerName = "The Economist Agent"

// Tool names.
const (
	ToolLatestBriefing = "get_latest_briefing"
	ToolReadArticle    = "read_full_article"
)

// Service is the pipeline the tools delegate to.
type Service interface {
	LatestBriefing(ctx context.Context) (string, error)
	ReadArticle(ctx context.Context, url string) (string, error)
}

// BriefingInput takes no arguments.
type BriefingInput struct{}

// ArticleInput is the argument object of read_full_article.
type ArticleInput struct {
	URL string `json:"url" jsonschema:"absolute URL of the Economist article to read"`
}

// New builds a server with both tools registered.
func New(svc Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	server.AddReceivingMiddleware(loggingMiddleware())

	h := &handlers{svc: svc}
	mcp.AddTool(server, &mcp.Tool{
		Name: ToolLatestBriefing,
		Description: "Fetches the latest 'The World in Brief' summary. " +
			"Returns the full text of the briefing, including intro and mini-articles.",
		Annotations: &mcp.ToolAnnotations{Title: "Latest briefing", ReadOnlyHint: true},
	}, h.latestBriefing)
	mcp.AddTool(server, &mcp.Tool{
		Name: ToolReadArticle,
		Description: "Fetches the full text of a specific Economist article URL. " +
			"Use this when the user asks to 'read' a specific headline. " +
			"Returns the article title, subheading (if present), and full body text.",
		Annotations: &mcp.ToolAnnotations{Title: "Read full article", ReadOnlyHint: true},
	}, h.readArticle)
	return server
}

type handlers struct {
	svc Service
}

func (h *handlers) latestBriefing(ctx context.Context, _ *mcp.CallToolRequest, _ BriefingInput) (*mcp.CallToolResult, any, error) {
	return toResult(h.svc.LatestBriefing(ctx))
}

func (h *handlers) readArticle(ctx context.Context, _ *mcp.CallToolRequest, in ArticleInput) (*mcp.CallToolResult, any, error) {
	return toResult(h.svc.ReadArticle(ctx, in.URL))
}

// toResult renders pipeline output at the edge. Soft failures become their
// fixed diagnostic text; anything else is returned as a tool error.
func toResult(text string, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		msg, ok := diag.Message(err)
		if !ok {
			return nil, nil, err
		}
		text = msg
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func loggingMiddleware() mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			ev := log.Debug()
			if err != nil {
				ev = log.Warn().Err(err)
			}
			ev.Str("method", method).Dur("took", time.Since(start)).Msg("mcp request")
			return result, err
		}
	}
}
