package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iris-draft-api/internal/application/drafting"
	"iris-draft-api/internal/config"
	"iris-draft-api/internal/domain/entity"
	"iris-draft-api/internal/domain/repository"
	apperrors "iris-draft-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOutlineGenerator struct {
	outline *entity.Outline
	err     error
	got     *entity.Idea
}

func (s *stubOutlineGenerator) Generate(_ context.Context, idea *entity.Idea) (*entity.Outline, error) {
	s.got = idea
	return s.outline, s.err
}

type stubDraftGenerator struct {
	draft *entity.Draft
	err   error
	got   *drafting.DraftInput
}

func (s *stubDraftGenerator) Generate(_ context.Context, in *drafting.DraftInput) (*entity.Draft, error) {
	s.got = in
	return s.draft, s.err
}

type failingOutlineRepo struct{}

func (failingOutlineRepo) Create(context.Context, *entity.Outline) error { return errors.New("disk full") }
func (failingOutlineRepo) GetByID(context.Context, string) (*entity.Outline, error) {
	return nil, errors.New("permission denied")
}

type memDraftRepo struct{ result *repository.DraftListResult }

func (memDraftRepo) Create(context.Context, *entity.Draft) error { return nil }
func (memDraftRepo) GetByID(context.Context, string) (*entity.Draft, error) {
	return nil, nil
}
func (r memDraftRepo) ListRecent(_ context.Context, limit int) (*repository.DraftListResult, error) {
	items := r.result.Items
	if limit < len(items) {
		items = items[:limit]
	}
	return &repository.DraftListResult{Items: items, Total: r.result.Total}, nil
}

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

type stubVoice struct{ loaded bool }

func (s stubVoice) Loaded() bool   { return s.loaded }
func (s stubVoice) Source() string { return "default" }

func serve(method, path, body string, register func(*gin.Engine)) *httptest.ResponseRecorder {
	engine := gin.New()
	register(engine)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateOutlinePassesIdea(t *testing.T) {
	gen := &stubOutlineGenerator{outline: entity.NewOutline("outline_x", "X", "h", nil, "c")}
	h := NewOutlineHandler(gen, failingOutlineRepo{})

	w := serve(http.MethodPost, "/v1/outlines", `{"title":"X","url":"https://u","context":"ctx"}`, func(e *gin.Engine) {
		e.POST("/v1/outlines", h.CreateOutline)
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sections":[]`)
	require.NotNil(t, gen.got)
	assert.Equal(t, "https://u", gen.got.SourceLink())
	assert.Equal(t, "ctx", gen.got.Summary())
}

func TestCreateOutlineEmptyBody(t *testing.T) {
	gen := &stubOutlineGenerator{}
	h := NewOutlineHandler(gen, failingOutlineRepo{})

	w := serve(http.MethodPost, "/v1/outlines", "", func(e *gin.Engine) {
		e.POST("/v1/outlines", h.CreateOutline)
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "request body is required")
	assert.Nil(t, gen.got)
}

func TestCreateOutlineGenerationError(t *testing.T) {
	gen := &stubOutlineGenerator{
		err: apperrors.Wrap(errors.New("upstream timeout"), apperrors.CodeGenerationFailed, "Outline generation failed"),
	}
	h := NewOutlineHandler(gen, failingOutlineRepo{})

	w := serve(http.MethodPost, "/v1/outlines", `{"title":"X"}`, func(e *gin.Engine) {
		e.POST("/v1/outlines", h.CreateOutline)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Outline generation failed: upstream timeout")
}

func TestGetOutlineStorageError(t *testing.T) {
	h := NewOutlineHandler(&stubOutlineGenerator{}, failingOutlineRepo{})

	w := serve(http.MethodGet, "/v1/outlines/outline_x", "", func(e *gin.Engine) {
		e.GET("/v1/outlines/:id", h.GetOutline)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "permission denied")
	assert.Contains(t, w.Body.String(), `"error_code":"5004"`)
	assert.Contains(t, w.Body.String(), `"code":500`)
}

func TestGetDraftNotFoundCode(t *testing.T) {
	h := NewDraftHandler(&stubDraftGenerator{}, memDraftRepo{})

	w := serve(http.MethodGet, "/v1/drafts/draft_x", "", func(e *gin.Engine) {
		e.GET("/v1/drafts/:id", h.GetDraft)
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Error   struct {
			ErrorCode string `json:"error_code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "Draft draft_x not found", body.Message)
	assert.Equal(t, string(apperrors.CodeDraftNotFound), body.Error.ErrorCode)
}

func TestCreateDraftDefaults(t *testing.T) {
	gen := &stubDraftGenerator{draft: entity.NewDraft("draft_x", nil, "X", "body", entity.DraftMetadata{})}
	h := NewDraftHandler(gen, memDraftRepo{})

	w := serve(http.MethodPost, "/v1/drafts", `{"idea":{"title":"X"},"include_hashtags":true}`, func(e *gin.Engine) {
		e.POST("/v1/drafts", h.CreateDraft)
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gen.got)
	assert.Equal(t, drafting.DefaultTargetLength, gen.got.TargetLength)
	assert.True(t, gen.got.IncludeHashtags)
	assert.Nil(t, gen.got.OutlineID)
}

func TestCreateDraftValidation(t *testing.T) {
	cases := map[string]string{
		"missing idea":   `{"target_length":800}`,
		"missing title":  `{"idea":{"content":"c"}}`,
		"below range":    `{"idea":{"title":"X"},"target_length":399}`,
		"above range":    `{"idea":{"title":"X"},"target_length":1301}`,
		"malformed json": `{"idea":`,
		"wrong type":     `{"idea":{"title":"X"},"target_length":"long"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &stubDraftGenerator{}
			h := NewDraftHandler(gen, memDraftRepo{})

			w := serve(http.MethodPost, "/v1/drafts", body, func(e *gin.Engine) {
				e.POST("/v1/drafts", h.CreateDraft)
			})
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Nil(t, gen.got)
		})
	}
}

func TestCreateDraftBoundaryLengthsAccepted(t *testing.T) {
	for _, body := range []string{
		`{"idea":{"title":"X"},"target_length":400}`,
		`{"idea":{"title":"X"},"target_length":1300}`,
	} {
		gen := &stubDraftGenerator{draft: entity.NewDraft("draft_x", nil, "X", "body", entity.DraftMetadata{})}
		h := NewDraftHandler(gen, memDraftRepo{})

		w := serve(http.MethodPost, "/v1/drafts", body, func(e *gin.Engine) {
			e.POST("/v1/drafts", h.CreateDraft)
		})
		assert.Equal(t, http.StatusOK, w.Code, body)
	}
}

func TestListDraftsDefaultLimit(t *testing.T) {
	items := make([]*entity.DraftSummary, 25)
	for i := range items {
		items[i] = &entity.DraftSummary{ID: "draft_x"}
	}
	h := NewDraftHandler(&stubDraftGenerator{}, memDraftRepo{result: &repository.DraftListResult{Items: items, Total: 25}})

	w := serve(http.MethodGet, "/v1/drafts", "", func(e *gin.Engine) {
		e.GET("/v1/drafts", h.ListDrafts)
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":25`)
	assert.Contains(t, w.Body.String(), `"returned":20`)
}

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(config.AppConfig{Agent: "agent-iris", Version: "1.0.0"}, stubVoice{loaded: true}, stubChecker{}, nil)

	w := serve(http.MethodGet, "/healthz", "", func(e *gin.Engine) {
		e.GET("/healthz", h.Healthz)
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","agent":"agent-iris","version":"1.0.0","voiceprint_loaded":true}`, w.Body.String())
}

func TestReady(t *testing.T) {
	app := config.AppConfig{Agent: "agent-iris", Version: "1.0.0"}

	t.Run("storage failure is not ready", func(t *testing.T) {
		h := NewHealthHandler(app, stubVoice{loaded: true}, stubChecker{err: errors.New("read-only")}, nil)
		w := serve(http.MethodGet, "/ready", "", func(e *gin.Engine) { e.GET("/ready", h.Ready) })
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "read-only")
	})

	t.Run("redis failure degrades", func(t *testing.T) {
		h := NewHealthHandler(app, stubVoice{loaded: true}, stubChecker{}, stubChecker{err: errors.New("refused")})
		w := serve(http.MethodGet, "/ready", "", func(e *gin.Engine) { e.GET("/ready", h.Ready) })
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	})
}
