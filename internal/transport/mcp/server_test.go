package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/chat"
)

type stubChat struct {
	session string
	err     error
}

func (s *stubChat) Handle(ctx context.Context, sessionID, text string) (chat.Turn, error) {
	s.session = sessionID
	if s.err != nil {
		return chat.Turn{}, s.err
	}
	return chat.Turn{Reply: "jawaban untuk " + text}, nil
}

type stubSearcher struct {
	listings []core.Listing
	err      error
}

func (s stubSearcher) Search(ctx context.Context, query string) ([]core.Listing, error) {
	return s.listings, s.err
}

type stubStats struct{}

func (stubStats) Stats() core.LogStats {
	return core.LogStats{TotalQueries: 7, IntentHistogram: map[core.QueryIntent]int{}, BrandHistogram: map[string]int{}}
}

func newTestClient(t *testing.T, s *Server) *client.Client {
	t.Helper()
	ctx := context.Background()

	cli, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })

	require.NoError(t, cli.Start(ctx))

	req := mcpproto.InitializeRequest{}
	req.Params.ProtocolVersion = mcpproto.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcpproto.Implementation{Name: "test", Version: "0"}
	_, err = cli.Initialize(ctx, req)
	require.NoError(t, err)
	return cli
}

func callTool(t *testing.T, cli *client.Client, name string, args map[string]any) *mcpproto.CallToolResult {
	t.Helper()
	req := mcpproto.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := cli.CallTool(context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcpproto.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcpproto.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestServer_ListTools(t *testing.T) {
	cli := newTestClient(t, NewServer(&stubChat{}, stubSearcher{}, stubStats{}))

	res, err := cli.ListTools(context.Background(), mcpproto.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"ask_gadgetbot", "search_listings", "interaction_stats"}, names)
}

func TestServer_Ask(t *testing.T) {
	ch := &stubChat{}
	cli := newTestClient(t, NewServer(ch, stubSearcher{}, stubStats{}))

	res := callTool(t, cli, "ask_gadgetbot", map[string]any{"message": "hp samsung"})
	assert.False(t, res.IsError)
	assert.Equal(t, "jawaban untuk hp samsung", resultText(t, res))
	assert.Equal(t, defaultSession, ch.session)

	callTool(t, cli, "ask_gadgetbot", map[string]any{"message": "x", "session_id": "abc"})
	assert.Equal(t, "abc", ch.session)

	res = callTool(t, cli, "ask_gadgetbot", map[string]any{})
	assert.True(t, res.IsError)

	ch.err = errors.New("boom")
	res = callTool(t, cli, "ask_gadgetbot", map[string]any{"message": "x"})
	assert.True(t, res.IsError)
}

func TestServer_SearchListings(t *testing.T) {
	listings := []core.Listing{{ID: 1, ListingTitle: "A"}, {ID: 2, ListingTitle: "B"}, {ID: 3, ListingTitle: "C"}}
	cli := newTestClient(t, NewServer(&stubChat{}, stubSearcher{listings: listings}, stubStats{}))

	res := callTool(t, cli, "search_listings", map[string]any{"query": "samsung", "limit": 2})
	require.False(t, res.IsError)

	var got []core.Listing
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestServer_SearchFailureIsToolError(t *testing.T) {
	cli := newTestClient(t, NewServer(&stubChat{}, stubSearcher{err: core.ErrPersistence}, stubStats{}))

	res := callTool(t, cli, "search_listings", map[string]any{"query": "samsung"})
	assert.True(t, res.IsError)
	assert.NotContains(t, resultText(t, res), "persistence")
}

func TestServer_Stats(t *testing.T) {
	cli := newTestClient(t, NewServer(&stubChat{}, stubSearcher{}, stubStats{}))

	res := callTool(t, cli, "interaction_stats", nil)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"totalQueries": 7`)
}
