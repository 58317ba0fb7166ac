package api

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/analytics"
	"github.com/sandevgo/gadgetbot/internal/service/chat"
	"github.com/sandevgo/gadgetbot/internal/service/fallback"
	"github.com/sandevgo/gadgetbot/internal/service/guard"
	"github.com/sandevgo/gadgetbot/internal/storage/sqlite"
)

type stubAssistant struct {
	reply string
	err   error
}

func (s stubAssistant) Ask(ctx context.Context, message string) (string, error) {
	return s.reply, s.err
}

type testEnv struct {
	handler  http.Handler
	pipeline *chat.Pipeline
}

func newTestEnv(t *testing.T, assistant Assistant) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sim, err := fallback.NewSimulation(0, 0)
	require.NoError(t, err)
	orchestrator := fallback.NewOrchestrator(sim, 0, fallback.Tier{Provider: fallback.NewRemote(nil, "")})
	pipeline := chat.NewPipeline(guard.New(guard.FailOpen), orchestrator, analytics.NewLogger(), chat.NewConversations())

	srv := NewServer(ctx, ":0", []string{"*"}, Deps{
		Listings:  sqlite.NewListings(db),
		Specs:     sqlite.NewSpecs(db),
		Chat:      pipeline,
		Assistant: assistant,
	})
	return &testEnv{handler: srv.Handler(), pipeline: pipeline}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestListings_Get(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	t.Run("newest first", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/listings", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]core.Listing](t, rec)
		require.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), 20)
		assert.Greater(t, got[0].ID, got[len(got)-1].ID)
	})

	t.Run("search cheapest first", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/listings?search=iphone", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]core.Listing](t, rec)
		require.Len(t, got, 3)
		assert.Equal(t, int64(11750000), got[0].PriceIDR)
	})

	t.Run("by id is an array", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/listings?id=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]core.Listing](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("unknown id is empty array", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/listings?id=9999", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/listings?id=abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListings_CreateThenGet(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	rec := env.do(t, http.MethodPost, "/listings", map[string]any{
		"store_id":       "ST-900",
		"store_name":     "Toko Baru",
		"sku_ref":        "VIV-V30",
		"listing_title":  "Vivo V30 Promo",
		"price_idr":      6500000,
		"stock":          5,
		"item_condition": "Baru",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[messageResponse](t, rec)
	assert.Equal(t, "Data berhasil ditambahkan", created.Message)
	require.NotZero(t, created.ID)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/listings?id=%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]core.Listing](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "Vivo V30 Promo", got[0].ListingTitle)
	assert.Equal(t, int64(6500000), got[0].PriceIDR)
	assert.Equal(t, "Toko Baru", got[0].StoreName)
}

func TestListings_CreateValidation(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	for _, body := range []any{
		map[string]any{"store_id": "ST-1"},
		map[string]any{"sku_ref": "SAM-S24"},
		"{not json",
	} {
		rec := env.do(t, http.MethodPost, "/listings", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "store_id dan sku_ref wajib ada")
	}
}

func TestListings_Update(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	rec := env.do(t, http.MethodPut, "/listings?id=1", map[string]any{"stock": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Data ID 1 berhasil diupdate", decode[messageResponse](t, rec).Message)

	got := decode[[]core.Listing](t, env.do(t, http.MethodGet, "/listings?id=1", nil))
	assert.Equal(t, 0, got[0].Stock)
	assert.Equal(t, int64(12999000), got[0].PriceIDR, "absent fields untouched")

	rec = env.do(t, http.MethodPut, "/listings", map[string]any{"stock": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/listings?id=9999", map[string]any{"stock": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListings_Delete(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	rec := env.do(t, http.MethodDelete, "/listings?id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Data ID 2 berhasil dihapus", decode[messageResponse](t, rec).Message)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/listings?id=2", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodDelete, "/listings", nil).Code)
}

func TestListings_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})
	rec := env.do(t, http.MethodPatch, "/listings?id=1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"Metode HTTP tidak didukung"}`, rec.Body.String())
}

func TestExports(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	t.Run("raw listings", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/export/listings.json", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "\n        \"sku_ref\": \"SAM-S24\"")
		assert.Len(t, decode[[]core.Listing](t, rec), 15)
	})

	t.Run("market feed", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/export/market.json", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		items := decode[[]marketItem](t, rec)
		require.Len(t, items, 15)
		first := items[0]
		assert.Equal(t, int64(1), first.ListingID)
		assert.Equal(t, "IDR", first.Pricing.Currency)
		assert.Equal(t, int64(12999000), first.Pricing.Amount)
		assert.Equal(t, "Erafone Jakarta", first.StoreInfo.Name)
		assert.Equal(t, "SAM-S24", first.Product.SKURef)
	})

	t.Run("specs xml", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/export/specs.xml", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.HasPrefix(body, "<?xml"))
		assert.Contains(t, body, `<gadget id="sku_SAM-S24">`)
		assert.Contains(t, body, `<ram satuan="GB">8</ram>`)
		assert.Contains(t, body, `<baterai satuan="mAh">4000</baterai>`)
		assert.Contains(t, body, `<layar tipe="Dynamic AMOLED 2X">6.2</layar>`)

		var catalog xmlCatalog
		require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &catalog))
		assert.Len(t, catalog.Gadgets, 13)
	})
}

func TestChat(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	rec := env.do(t, http.MethodPost, "/api/chat", chatRequest{Message: "hp samsung", SessionID: "web-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	turn := decode[chat.Turn](t, rec)
	assert.Contains(t, turn.Reply, "Galaxy S24")
	assert.Equal(t, core.IntentBrandSearch, turn.Intent)
	assert.NotEmpty(t, turn.LogID)

	rec = env.do(t, http.MethodPost, "/api/chat", chatRequest{Message: "isu politik terkini", SessionID: "web-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	turn = decode[chat.Turn](t, rec)
	assert.True(t, turn.Filtered)
	assert.Equal(t, guard.Deflection, turn.Reply)

	rec = env.do(t, http.MethodPost, "/api/chat", chatRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/sessions/web-1/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]core.ChatMessage](t, rec), 5)

	rec = env.do(t, http.MethodDelete, "/api/sessions/web-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decode[[]core.ChatMessage](t, rec)
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.WelcomeMessage, msgs[0].Content)
}

func TestAssistant(t *testing.T) {
	tests := []struct {
		name       string
		assistant  stubAssistant
		body       any
		wantStatus int
	}{
		{"ok", stubAssistant{reply: "Poco F5"}, chatRequest{Message: "gaming"}, http.StatusOK},
		{"missing message", stubAssistant{}, chatRequest{}, http.StatusBadRequest},
		{"not configured", stubAssistant{err: core.ErrNotConfigured}, chatRequest{Message: "x"}, http.StatusInternalServerError},
		{"upstream", stubAssistant{err: &core.UpstreamError{Service: "groq", Status: 429}}, chatRequest{Message: "x"}, http.StatusBadGateway},
		{"unreachable", stubAssistant{err: fmt.Errorf("%w: dial", core.ErrUnavailable)}, chatRequest{Message: "x"}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.assistant)
			rec := env.do(t, http.MethodPost, "/api/assistant", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"reply":"Poco F5"}`, rec.Body.String())
			}
		})
	}
}

func TestLogs(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	turn := decode[chat.Turn](t, env.do(t, http.MethodPost, "/api/chat", chatRequest{Message: "hp xiaomi", SessionID: "a"}))
	env.do(t, http.MethodPost, "/api/chat", chatRequest{Message: "hp samsung", SessionID: "b"})

	rec := env.do(t, http.MethodGet, "/api/logs?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	recent := decode[[]core.AILogEntry](t, rec)
	require.Len(t, recent, 1)
	assert.Equal(t, "b", recent[0].SessionID)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/logs?limit=x", nil).Code)

	bySession := decode[[]core.AILogEntry](t, env.do(t, http.MethodGet, "/api/logs/session/a", nil))
	require.Len(t, bySession, 1)
	assert.Equal(t, turn.LogID, bySession[0].ID)

	stats := decode[core.LogStats](t, env.do(t, http.MethodGet, "/api/logs/stats", nil))
	assert.Equal(t, 2, stats.TotalQueries)
	assert.Equal(t, 2, stats.IntentHistogram[core.IntentBrandSearch])

	rec = env.do(t, http.MethodPost, "/api/logs/"+turn.LogID+"/feedback", feedbackRequest{Feedback: core.FeedbackPositive})
	require.Equal(t, http.StatusOK, rec.Code)
	entry := decode[core.AILogEntry](t, rec)
	require.NotNil(t, entry.UserFeedback)
	assert.Equal(t, core.FeedbackPositive, *entry.UserFeedback)

	assert.Equal(t, http.StatusBadRequest,
		env.do(t, http.MethodPost, "/api/logs/"+turn.LogID+"/feedback", map[string]string{"feedback": "meh"}).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodPost, "/api/logs/nope/feedback", feedbackRequest{Feedback: core.FeedbackNegative}).Code)

	rec = env.do(t, http.MethodGet, "/api/logs/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ai-logs.json")
	assert.Len(t, decode[[]core.AILogEntry](t, rec), 2)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/logs", nil).Code)
	assert.Equal(t, 0, env.pipeline.Logger().Len())
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, stubAssistant{})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
