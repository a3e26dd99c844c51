package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iris-draft-api/internal/application/drafting"
	"iris-draft-api/internal/config"
	"iris-draft-api/internal/domain/entity"
	"iris-draft-api/internal/infrastructure/persistence/filestore"
	"iris-draft-api/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChatModel struct {
	reply    string
	err      error
	calls    int
	messages []*schema.Message
}

func (m *stubChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls++
	m.messages = input
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *stubChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

type stubFactory struct{ model *stubChatModel }

func (f stubFactory) Get(context.Context, string) (model.BaseChatModel, error) { return f.model, nil }
func (f stubFactory) ModelName(string) string                                  { return "claude-sonnet-4-20250514" }

type testServer struct {
	engine   *gin.Engine
	store    *filestore.Client
	outlines *filestore.OutlineRepository
	drafts   *filestore.DraftRepository
	model    *stubChatModel
}

const stubOutline = `{
  "hook": "Your CI is lying to you.",
  "sections": [
    {"heading": "Define", "key_points": ["flaky tests", "retries hide signal"]},
    {"heading": "Contrast", "key_points": ["green builds", "broken prod"]},
    {"heading": "Synthesize", "key_points": ["trust erodes", "velocity drops"]},
    {"heading": "Project", "key_points": ["quarantine", "measure", "fix"]}
  ],
  "closing": "Audit one pipeline this week."
}`

func newTestServer(t *testing.T, reply string) *testServer {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Name: "iris-draft-api", Agent: "agent-iris", Version: "1.0.0", Env: "test"},
		Drafting: config.DraftingConfig{
			Outline: config.GenerationConfig{Temperature: 0.7, MaxTokens: 2000},
			Draft:   config.GenerationConfig{Temperature: 0.7, MaxTokens: 3000},
		},
		Observability: config.ObservabilityConfig{Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"}},
	}

	store, err := filestore.NewClient(t.TempDir())
	require.NoError(t, err)
	outlines := filestore.NewOutlineRepository(store)
	drafts := filestore.NewDraftRepository(store)

	stub := &stubChatModel{reply: reply}
	factory := stubFactory{model: stub}
	voice := drafting.NewVoicePrintFromMap(nil)

	r := New(cfg, Handlers{
		Health:  handler.NewHealthHandler(cfg.App, voice, store, nil),
		Outline: handler.NewOutlineHandler(drafting.NewOutlineGenerator(factory, outlines, voice, cfg.Drafting.Outline), outlines),
		Draft:   handler.NewDraftHandler(drafting.NewDraftGenerator(factory, outlines, drafts, voice, cfg.Drafting.Draft), drafts),
	}, nil)

	return &testServer{engine: r.Engine(), store: store, outlines: outlines, drafts: drafts, model: stub}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "agent-iris", body["agent"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, true, body["voiceprint_loaded"])
}

func TestReadyAndLive(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":{"status":"disabled"}`)

	w = s.do(t, http.MethodGet, "/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOutlineEndToEnd(t *testing.T) {
	s := newTestServer(t, stubOutline)

	w := s.do(t, http.MethodPost, "/v1/outlines", map[string]any{"title": "X"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	outline := decode[entity.Outline](t, w)
	assert.Equal(t, "X", outline.IdeaTitle)
	require.Len(t, outline.Sections, 4)
	assert.Equal(t, []string{"Define", "Contrast", "Synthesize", "Project"}, []string{
		outline.Sections[0].Heading, outline.Sections[1].Heading, outline.Sections[2].Heading, outline.Sections[3].Heading,
	})
	assert.Equal(t, 800, outline.WordCountEstimate)
	assert.Equal(t, 1, countFiles(t, s.store.OutlinesDir()))

	w = s.do(t, http.MethodGet, "/v1/outlines/"+outline.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, outline.Hook, decode[entity.Outline](t, w).Hook)
}

func TestCreateOutlineValidation(t *testing.T) {
	s := newTestServer(t, stubOutline)

	w := s.do(t, http.MethodPost, "/v1/outlines", map[string]any{"content": "no title"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPost, "/v1/outlines", `{"title": `)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Zero(t, s.model.calls)
}

func TestCreateOutlineGenerationFailure(t *testing.T) {
	s := newTestServer(t, "I'd rather not.")

	w := s.do(t, http.MethodPost, "/v1/outlines", map[string]any{"title": "X"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode[map[string]any](t, w)
	assert.Contains(t, body["message"], "Outline generation failed: ")
	assert.Zero(t, countFiles(t, s.store.OutlinesDir()))
}

func TestCreateDraftTargetLengthRejectedBeforeGeneration(t *testing.T) {
	s := newTestServer(t, "draft body")

	for _, n := range []int{399, 1301, 0} {
		w := s.do(t, http.MethodPost, "/v1/drafts", map[string]any{
			"idea":          map[string]any{"title": "X"},
			"target_length": n,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "target_length=%d", n)
	}
	assert.Zero(t, s.model.calls)
}

func TestCreateDraftDefaultsAndMissingOutline(t *testing.T) {
	s := newTestServer(t, "A short generated post body.")

	w := s.do(t, http.MethodPost, "/v1/drafts", map[string]any{
		"outline_id": "outline_20200101_000000_000000_00000000",
		"idea":       map[string]any{"title": "X", "source_url": "https://src"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	draft := decode[entity.Draft](t, w)
	assert.Equal(t, "X", draft.Title)
	assert.Equal(t, 5, draft.WordCount)
	assert.Equal(t, 0.85, draft.VoiceScore)
	require.NotNil(t, draft.OutlineID)
	assert.Equal(t, "outline_20200101_000000_000000_00000000", *draft.OutlineID)
	assert.Equal(t, 800, draft.Metadata.TargetLength)
	assert.Equal(t, "https://src", draft.Metadata.SourceURL)
	assert.Equal(t, "claude-sonnet-4-20250514", draft.Metadata.Model)
	assert.Equal(t, 1, s.model.calls)

	w = s.do(t, http.MethodGet, "/v1/drafts/"+draft.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, draft.Content, decode[entity.Draft](t, w).Content)
}

func TestCreateDraftNullOutlineID(t *testing.T) {
	s := newTestServer(t, "body")

	w := s.do(t, http.MethodPost, "/v1/drafts", map[string]any{"idea": map[string]any{"title": "X"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outline_id":null`)
}

func TestGetNotFound(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/v1/drafts/draft_missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Draft draft_missing not found")
	assert.Contains(t, w.Body.String(), `"error_code":"3002"`)

	w = s.do(t, http.MethodGet, "/v1/outlines/outline_missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Outline outline_missing not found")
	assert.Contains(t, w.Body.String(), `"error_code":"3001"`)
}

func TestListDraftsLimitAndTotal(t *testing.T) {
	s := newTestServer(t, "")
	ctx := context.Background()

	ids := []string{
		"draft_20240101_090000_000001_aaaaaaaa",
		"draft_20240102_090000_000001_bbbbbbbb",
		"draft_20240103_090000_000001_cccccccc",
	}
	for _, id := range ids {
		d := entity.NewDraft(id, nil, "t", "body", entity.DraftMetadata{TargetLength: 800})
		d.CreatedAt = time.Now()
		require.NoError(t, s.drafts.Create(ctx, d))
	}

	w := s.do(t, http.MethodGet, "/v1/drafts?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total    int `json:"total"`
		Returned int `json:"returned"`
		Drafts   []struct {
			DraftID   string `json:"draft_id"`
			CreatedAt string `json:"created_at"`
		} `json:"drafts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.Returned)
	require.Len(t, body.Drafts, 2)
	assert.Equal(t, ids[2], body.Drafts[0].DraftID)
	assert.Equal(t, ids[1], body.Drafts[1].DraftID)
	assert.NotEmpty(t, body.Drafts[0].CreatedAt)

	w = s.do(t, http.MethodGet, "/v1/drafts", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Returned)

	w = s.do(t, http.MethodGet, "/v1/drafts?limit=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodGet, "/v1/drafts?limit=abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListDraftsEmpty(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/v1/drafts?limit=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":0,"returned":0,"drafts":[]}`, w.Body.String())
}

// legacyOutline 由旧版服务写入：created_at 不带时区
const legacyOutline = `{
  "outline_id": "outline_20250101_120000_123456",
  "idea_title": "Flaky CI",
  "hook": "Your CI is lying to you.",
  "sections": [
    {"heading": "Define", "key_points": ["flaky tests"]},
    {"heading": "Project", "key_points": ["quarantine"]}
  ],
  "closing": "Audit one pipeline this week.",
  "word_count_estimate": 800,
  "created_at": "2025-01-01T12:00:00.123456"
}`

func TestLegacyOutlineFileReadableAndUsedForDraft(t *testing.T) {
	s := newTestServer(t, "A generated post body.")
	const id = "outline_20250101_120000_123456"
	require.NoError(t, os.WriteFile(filepath.Join(s.store.OutlinesDir(), id+".json"), []byte(legacyOutline), 0o644))

	w := s.do(t, http.MethodGet, "/v1/outlines/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	outline := decode[entity.Outline](t, w)
	assert.Equal(t, "Your CI is lying to you.", outline.Hook)
	assert.Equal(t, 2025, outline.CreatedAt.Year())

	w = s.do(t, http.MethodPost, "/v1/drafts", map[string]any{
		"outline_id": id,
		"idea":       map[string]any{"title": "Flaky CI"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, s.model.calls)
	require.Len(t, s.model.messages, 1)
	assert.Contains(t, s.model.messages[0].Content, "**Hook**: Your CI is lying to you.")
	assert.Contains(t, s.model.messages[0].Content, "- quarantine")
}

func TestLegacyDraftFileReadable(t *testing.T) {
	s := newTestServer(t, "")
	const id = "draft_20250101_120000_123456"
	legacy := `{
  "draft_id": "` + id + `",
  "outline_id": null,
  "title": "Flaky CI",
  "content": "one two three",
  "word_count": 3,
  "voice_score": 0.85,
  "created_at": "2025-01-01T12:00:00.123456",
  "metadata": {"source_url": "", "target_length": 800, "model": "claude-sonnet-4-20250514"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(s.store.DraftsDir(), id+".json"), []byte(legacy), 0o644))

	w := s.do(t, http.MethodGet, "/v1/drafts/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "one two three", decode[entity.Draft](t, w).Content)
}
