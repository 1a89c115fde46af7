package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/handler"
	"github.com/osse101/QuickCooking_Go/internal/session"
)

func sessionRouter(h *handler.SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Delete("/", h.HandleDelete)
			r.Post("/tick", h.HandleTick)
			r.Post("/slot", h.HandleSlot)
			r.Post("/select", h.HandleSelect)
			r.Post("/confirm", h.HandleConfirm)
			r.Post("/reset", h.HandleReset)
			r.Post("/slice", h.HandleSlice)
			r.Post("/slice/begin", h.HandleBeginSlice)
			r.Post("/slice/end", h.HandleEndSlice)
			r.Post("/stir", h.HandleStir)
			r.Post("/eat", h.HandleEat)
		})
	})
	return r
}

func send(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newRealRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)
	mgr := session.NewManager(cat, nil, nil, session.DefaultOptions(), 8, 0, nil)
	t.Cleanup(func() { mgr.Close(context.Background()) })
	return sessionRouter(handler.NewSessionHandler(mgr))
}

func createSession(t *testing.T, router http.Handler, seed int64) session.View {
	t.Helper()
	rec := send(t, router, http.MethodPost, "/sessions", handler.CreateSessionRequest{Seed: &seed})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[session.View](t, rec)
}

func TestSessionHandler_Playthrough(t *testing.T) {
	handler.InitValidator()
	router := newRealRouter(t)

	view := createSession(t, router, 7)
	assert.Equal(t, int64(7), view.Seed)
	assert.Equal(t, domain.StageSelection, view.Pipeline.Stage)
	assert.Equal(t, 1, view.Pipeline.Loop)

	base := "/sessions/" + view.ID.String()

	var pool []domain.IngredientID
	for _, slot := range view.Pipeline.Pool {
		if slot.Ingredient != nil {
			pool = append(pool, *slot.Ingredient)
		}
	}
	require.Len(t, pool, 3)

	t.Run("confirm before enough ingredients is refused", func(t *testing.T) {
		rec := send(t, router, http.MethodPost, base+"/confirm", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[handler.ActionResponse](t, rec)
		assert.False(t, resp.Accepted)
		assert.Contains(t, resp.Reason, domain.ErrMsgGuardNotSatisfied)
		assert.Equal(t, domain.StageSelection, resp.Session.Pipeline.Stage)
	})

	for _, id := range pool {
		rec := send(t, router, http.MethodPost, base+"/select", handler.SelectRequest{IngredientID: string(id)})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[handler.ActionResponse](t, rec)
		require.True(t, resp.Accepted, resp.Reason)
	}

	t.Run("selecting a held ingredient is refused", func(t *testing.T) {
		rec := send(t, router, http.MethodPost, base+"/select", handler.SelectRequest{IngredientID: string(pool[0])})
		resp := decode[handler.ActionResponse](t, rec)
		assert.False(t, resp.Accepted)
		assert.NotEmpty(t, resp.Reason)
	})

	rec := send(t, router, http.MethodPost, base+"/confirm", nil)
	resp := decode[handler.ActionResponse](t, rec)
	require.True(t, resp.Accepted, resp.Reason)
	assert.Equal(t, domain.StagePreparation, resp.Session.Pipeline.Stage)
	assert.ElementsMatch(t, pool, resp.Session.Pipeline.Inventory)
	assert.Equal(t, 25.0, resp.Session.Progression.Experience)

	t.Run("slice with an empty board is refused", func(t *testing.T) {
		rec := send(t, router, http.MethodPost, base+"/slice", map[string]any{
			"start":   domain.Point{X: -1},
			"end":     domain.Point{X: 1},
			"elapsed": 0.1,
		})
		resp := decode[handler.ActionResponse](t, rec)
		assert.False(t, resp.Accepted)
		assert.Contains(t, resp.Reason, domain.ErrMsgBoardEmpty)
	})

	rec = send(t, router, http.MethodPost, base+"/slot", handler.SlotRequest{Kind: "inventory", Index: 0})
	resp = decode[handler.ActionResponse](t, rec)
	require.True(t, resp.Accepted, resp.Reason)
	require.NotNil(t, resp.Session.Pipeline.Board)
	require.NotNil(t, resp.Session.Pipeline.Board.Ingredient)

	rec = send(t, router, http.MethodPost, base+"/slice", map[string]any{
		"start":   domain.Point{X: -1},
		"end":     domain.Point{X: 1},
		"elapsed": 0.1,
	})
	resp = decode[handler.ActionResponse](t, rec)
	require.True(t, resp.Accepted, resp.Reason)
	assert.Equal(t, 1, resp.Session.Pipeline.Board.Step)

	t.Run("tick timed gesture", func(t *testing.T) {
		rec := send(t, router, http.MethodPost, base+"/slice/end", handler.PositionRequest{Position: &domain.Point{X: 1}})
		resp := decode[handler.ActionResponse](t, rec)
		assert.False(t, resp.Accepted)
		assert.Contains(t, resp.Reason, domain.ErrMsgNoGesture)

		rec = send(t, router, http.MethodPost, base+"/slice/begin", handler.PositionRequest{Position: &domain.Point{X: -1}})
		resp = decode[handler.ActionResponse](t, rec)
		require.True(t, resp.Accepted, resp.Reason)
		assert.True(t, resp.Session.Pipeline.Board.Gesture)

		send(t, router, http.MethodPost, base+"/tick", handler.TickRequest{Elapsed: 0.1})

		rec = send(t, router, http.MethodPost, base+"/slice/end", handler.PositionRequest{Position: &domain.Point{X: 1}})
		resp = decode[handler.ActionResponse](t, rec)
		require.True(t, resp.Accepted, resp.Reason)
		assert.Equal(t, 2, resp.Session.Pipeline.Board.Step)
	})

	t.Run("stir outside cooking is refused", func(t *testing.T) {
		rec := send(t, router, http.MethodPost, base+"/stir", handler.PositionRequest{Position: &domain.Point{}})
		resp := decode[handler.ActionResponse](t, rec)
		assert.False(t, resp.Accepted)
		assert.Contains(t, resp.Reason, domain.ErrMsgWrongStage)
	})

	t.Run("eat outside consumption is refused", func(t *testing.T) {
		rec := send(t, router, http.MethodPost, base+"/eat", handler.EatRequest{PieceID: uuid.NewString()})
		resp := decode[handler.ActionResponse](t, rec)
		assert.False(t, resp.Accepted)
	})

	rec = send(t, router, http.MethodPost, base+"/tick", handler.TickRequest{Elapsed: 0.5})
	resp = decode[handler.ActionResponse](t, rec)
	assert.True(t, resp.Accepted)

	rec = send(t, router, http.MethodPost, base+"/reset", nil)
	resp = decode[handler.ActionResponse](t, rec)
	require.True(t, resp.Accepted)
	assert.Equal(t, domain.StageSelection, resp.Session.Pipeline.Stage)
	assert.Equal(t, 2, resp.Session.Pipeline.Loop)
	assert.Empty(t, resp.Session.Pipeline.Inventory)

	rec = send(t, router, http.MethodGet, "/sessions", nil)
	list := decode[handler.SessionListResponse](t, rec)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, []uuid.UUID{view.ID}, list.Sessions)

	rec = send(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = send(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, handler.ErrMsgSessionNotFoundHTTP, decode[handler.ErrorResponse](t, rec).Error)
}

func TestSessionHandler_CreateWithoutBody(t *testing.T) {
	router := newRealRouter(t)

	rec := send(t, router, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decode[session.View](t, rec)
	assert.NotEqual(t, uuid.Nil, view.ID)
}

func TestSessionHandler_SameSeedSameView(t *testing.T) {
	router := newRealRouter(t)

	a := createSession(t, router, 99)
	b := createSession(t, router, 99)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Pipeline.Pool, b.Pipeline.Pool)
	assert.Equal(t, a.Progression, b.Progression)
}

func TestSessionHandler_BadRequests(t *testing.T) {
	handler.InitValidator()
	router := newRealRouter(t)
	view := createSession(t, router, 1)
	base := "/sessions/" + view.ID.String()

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
		wantField  string
	}{
		{name: "malformed session id", path: "/sessions/not-a-uuid/tick", body: handler.TickRequest{}, wantStatus: http.StatusBadRequest},
		{name: "malformed json", path: base + "/tick", body: "{", wantStatus: http.StatusBadRequest},
		{name: "unknown field", path: base + "/tick", body: `{"elapsd":1}`, wantStatus: http.StatusBadRequest},
		{name: "negative elapsed", path: base + "/tick", body: handler.TickRequest{Elapsed: -1}, wantStatus: http.StatusBadRequest, wantField: "elapsed"},
		{name: "elapsed too large", path: base + "/tick", body: handler.TickRequest{Elapsed: 61}, wantStatus: http.StatusBadRequest, wantField: "elapsed"},
		{name: "unknown slot kind", path: base + "/slot", body: handler.SlotRequest{Kind: "fridge"}, wantStatus: http.StatusBadRequest, wantField: "kind"},
		{name: "negative slot index", path: base + "/slot", body: handler.SlotRequest{Kind: "pool", Index: -1}, wantStatus: http.StatusBadRequest, wantField: "index"},
		{name: "missing ingredient", path: base + "/select", body: handler.SelectRequest{}, wantStatus: http.StatusBadRequest, wantField: "ingredient_id"},
		{name: "missing slice end", path: base + "/slice", body: map[string]any{"start": domain.Point{}}, wantStatus: http.StatusBadRequest, wantField: "end"},
		{name: "missing stir position", path: base + "/stir", body: handler.PositionRequest{}, wantStatus: http.StatusBadRequest, wantField: "position"},
		{name: "piece id not a uuid", path: base + "/eat", body: handler.EatRequest{PieceID: "abc"}, wantStatus: http.StatusBadRequest, wantField: "piece_id"},
		{name: "unknown session", path: "/sessions/" + uuid.NewString() + "/confirm", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(t, router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantField != "" {
				resp := decode[handler.ValidationErrorResponse](t, rec)
				assert.Equal(t, handler.ErrMsgInvalidRequestSummary, resp.Error)
				assert.Contains(t, resp.Fields, tt.wantField)
			}
		})
	}
}

func TestSessionHandler_ManagerErrors(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		method     string
		path       string
		setupMock  func(*session.MockManager)
		wantStatus int
		wantError  string
	}{
		{
			name:   "create fails",
			method: http.MethodPost,
			path:   "/sessions",
			setupMock: func(m *session.MockManager) {
				m.On("Create", mock.Anything, (*int64)(nil)).Return(nil, errors.New("entropy exhausted"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  handler.ErrMsgCreateSessionFailed,
		},
		{
			name:   "session not found",
			method: http.MethodGet,
			path:   "/sessions/" + id.String(),
			setupMock: func(m *session.MockManager) {
				m.On("Do", mock.Anything, id, mock.Anything).Return(domain.ErrSessionNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  handler.ErrMsgSessionNotFoundHTTP,
		},
		{
			name:   "unexpected failure is not leaked",
			method: http.MethodPost,
			path:   "/sessions/" + id.String() + "/confirm",
			setupMock: func(m *session.MockManager) {
				m.On("Do", mock.Anything, id, mock.Anything).Return(errors.New("lock table corrupted"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  handler.ErrMsgGenericServerError,
		},
		{
			name:   "delete unknown session",
			method: http.MethodDelete,
			path:   "/sessions/" + id.String(),
			setupMock: func(m *session.MockManager) {
				m.On("Delete", mock.Anything, id).Return(domain.ErrSessionNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  handler.ErrMsgSessionNotFoundHTTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := &session.MockManager{}
			tt.setupMock(mgr)
			router := sessionRouter(handler.NewSessionHandler(mgr))

			rec := send(t, router, tt.method, tt.path, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decode[handler.ErrorResponse](t, rec).Error)
			mgr.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_ListEmpty(t *testing.T) {
	mgr := &session.MockManager{}
	mgr.On("IDs").Return(nil)
	router := sessionRouter(handler.NewSessionHandler(mgr))

	rec := send(t, router, http.MethodGet, "/sessions", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"sessions":[]}`, rec.Body.String())
}

func TestSessionHandler_ListLimit(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	mgr := &session.MockManager{}
	mgr.On("IDs").Return(ids)
	router := sessionRouter(handler.NewSessionHandler(mgr))

	rec := send(t, router, http.MethodGet, "/sessions?limit=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[handler.SessionListResponse](t, rec)
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, ids[:2], list.Sessions)

	rec = send(t, router, http.MethodGet, "/sessions?limit=abc", nil)
	assert.Len(t, decode[handler.SessionListResponse](t, rec).Sessions, 3)
}
