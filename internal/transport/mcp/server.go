// Package mcp exposes GadgetBot as Model Context Protocol tools so other
// assistants can ask it about gadgets and query the catalog.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/chat"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const (
	defaultSession     = "mcp"
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type ChatHandler interface {
	Handle(ctx context.Context, sessionID, text string) (chat.Turn, error)
}

type StatsSource interface {
	Stats() core.LogStats
}

type Server struct {
	chat     ChatHandler
	listings core.CatalogSearcher
	stats    StatsSource
	mcp      *server.MCPServer
}

func NewServer(chat ChatHandler, listings core.CatalogSearcher, stats StatsSource) *Server {
	s := &Server{
		chat:     chat,
		listings: listings,
		stats:    stats,
		mcp: server.NewMCPServer(
			core.BotName,
			core.BotVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	s.mcp.AddTool(mcpproto.NewTool("ask_gadgetbot",
		mcpproto.WithDescription("Ask GadgetBot about smartphones: recommendations, specs and prices in Indonesia."),
		mcpproto.WithString("message", mcpproto.Required(), mcpproto.Description("Question in Indonesian or English")),
		mcpproto.WithString("session_id", mcpproto.Description("Conversation id; defaults to a shared MCP session")),
	), s.handleAsk)

	s.mcp.AddTool(mcpproto.NewTool("search_listings",
		mcpproto.WithDescription("Search store listings by title or store name, cheapest first."),
		mcpproto.WithString("query", mcpproto.Required(), mcpproto.Description("Free text, e.g. a brand or model")),
		mcpproto.WithNumber("limit", mcpproto.Description("Maximum number of listings (default 10)")),
	), s.handleSearch)

	s.mcp.AddTool(mcpproto.NewTool("interaction_stats",
		mcpproto.WithDescription("Aggregate statistics of the conversations handled so far."),
	), s.handleStats)

	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks the protocol over in/out until ctx ends or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log.FromCtx(ctx).Info().Msg("serving mcp over stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) handleAsk(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	session := req.GetString("session_id", defaultSession)

	turn, err := s.chat.Handle(ctx, session, message)
	if err != nil {
		return mcpproto.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}
	return mcpproto.NewToolResultText(turn.Reply), nil
}

func (s *Server) handleSearch(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", defaultSearchLimit)
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	listings, err := s.listings.Search(ctx, query)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("query", query).Msg("mcp listing search failed")
		return mcpproto.NewToolResultError("catalog search failed"), nil
	}
	if len(listings) > limit {
		listings = listings[:limit]
	}
	return jsonResult(listings)
}

func (s *Server) handleStats(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	return jsonResult(s.stats.Stats())
}

func jsonResult(v any) (*mcpproto.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcpproto.NewToolResultText(string(data)), nil
}
