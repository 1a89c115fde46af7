package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/session"
)

// CreateSessionRequest optionally pins the session's random seed
type CreateSessionRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}

// TickRequest advances the session clock
type TickRequest struct {
	Elapsed float64 `json:"elapsed" validate:"gte=0,lte=60"`
}

// SlotRequest activates a pool or inventory slot
type SlotRequest struct {
	Kind  string `json:"kind" validate:"required,slotkind"`
	Index int    `json:"index" validate:"gte=0"`
}

// SelectRequest moves an ingredient from the pool into the inventory
type SelectRequest struct {
	IngredientID string `json:"ingredient_id" validate:"required,max=100"`
}

// SliceRequest is one complete slice gesture on the cutting board
type SliceRequest struct {
	Start   *domain.Point `json:"start" validate:"required"`
	End     *domain.Point `json:"end" validate:"required"`
	Elapsed float64       `json:"elapsed" validate:"gte=0"`
}

// PositionRequest carries a single touch position for stirring and
// tick-timed slice gestures
type PositionRequest struct {
	Position *domain.Point `json:"position" validate:"required"`
}

// EatRequest consumes a cooked piece
type EatRequest struct {
	PieceID string `json:"piece_id" validate:"required,uuid"`
}

// ActionResponse is returned by every gameplay action. A refused action is
// not an HTTP error: Accepted is false and Reason says why.
type ActionResponse struct {
	Accepted bool         `json:"accepted"`
	Reason   string       `json:"reason,omitempty"`
	Session  session.View `json:"session"`
}

// SessionListResponse lists live sessions
type SessionListResponse struct {
	Count    int         `json:"count"`
	Sessions []uuid.UUID `json:"sessions"`
}

// SessionHandler serves the session endpoints
type SessionHandler struct {
	manager session.Manager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// HandleCreate starts a new session
// POST /api/v1/sessions
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := DecodeOptionalRequest(r, w, &req, "Create session"); err != nil {
		return
	}

	s, err := h.manager.Create(r.Context(), req.Seed)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgCreateSessionFailed, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgCreateSessionFailed)
		return
	}

	var view session.View
	// the session is already registered, so read it under its lock
	err = h.manager.Do(r.Context(), s.ID, func(_ context.Context, s *session.Session) error {
		view = s.View()
		return nil
	})
	if err != nil {
		respondServiceError(w, r, "Create session", err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgSessionCreatedAPI, "session_id", s.ID, "seed", s.Seed)
	respondJSON(w, http.StatusCreated, view)
}

// HandleList returns the ids of live sessions; ?limit= caps the list but not count
// GET /api/v1/sessions
func (h *SessionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ids := h.manager.IDs()
	if ids == nil {
		ids = []uuid.UUID{}
	}
	count := len(ids)
	if limit := getQueryInt(r, "limit", 0); limit > 0 && limit < count {
		ids = ids[:limit]
	}
	respondJSON(w, http.StatusOK, SessionListResponse{Count: count, Sessions: ids})
}

// HandleGet returns a snapshot of the session
// GET /api/v1/sessions/{id}
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var view session.View
	err := h.manager.Do(r.Context(), id, func(_ context.Context, s *session.Session) error {
		view = s.View()
		return nil
	})
	if err != nil {
		respondServiceError(w, r, "Get session", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleDelete ends the session
// DELETE /api/v1/sessions/{id}
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	if err := h.manager.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete session", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionDeleted})
}

// HandleTick advances timers and settles stage guards
// POST /api/v1/sessions/{id}/tick
func (h *SessionHandler) HandleTick(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Tick", func(ctx context.Context, s *session.Session, req TickRequest) error {
		return s.Pipeline.Tick(ctx, req.Elapsed)
	})
}

// HandleSlot routes a slot activation to the active stage
// POST /api/v1/sessions/{id}/slot
func (h *SessionHandler) HandleSlot(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Slot", func(ctx context.Context, s *session.Session, req SlotRequest) error {
		kind, err := domain.ParseSlotKind(req.Kind)
		if err != nil {
			return err
		}
		return s.Pipeline.ActivateSlot(ctx, domain.SlotRef{Kind: kind, Index: req.Index})
	})
}

// HandleSelect picks an ingredient from the selection pool
// POST /api/v1/sessions/{id}/select
func (h *SessionHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Select", func(ctx context.Context, s *session.Session, req SelectRequest) error {
		return s.Pipeline.TrySelect(ctx, domain.IngredientID(req.IngredientID))
	})
}

// HandleConfirm leaves Selection
// POST /api/v1/sessions/{id}/confirm
func (h *SessionHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Confirm", func(ctx context.Context, s *session.Session, _ struct{}) error {
		return s.Pipeline.ConfirmAdvance(ctx)
	})
}

// HandleReset abandons the current loop without reward
// POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Reset", func(ctx context.Context, s *session.Session, _ struct{}) error {
		s.Pipeline.Reset(ctx)
		return nil
	})
}

// HandleSlice applies one slice gesture
// POST /api/v1/sessions/{id}/slice
func (h *SessionHandler) HandleSlice(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Slice", func(ctx context.Context, s *session.Session, req SliceRequest) error {
		return s.Pipeline.TryPrepareAction(ctx, *req.Start, *req.End, req.Elapsed)
	})
}

// HandleBeginSlice starts a tick-timed slice gesture
// POST /api/v1/sessions/{id}/slice/begin
func (h *SessionHandler) HandleBeginSlice(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Begin slice", func(ctx context.Context, s *session.Session, req PositionRequest) error {
		return s.Pipeline.BeginSlice(ctx, *req.Position)
	})
}

// HandleEndSlice finishes the gesture started by HandleBeginSlice
// POST /api/v1/sessions/{id}/slice/end
func (h *SessionHandler) HandleEndSlice(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "End slice", func(ctx context.Context, s *session.Session, req PositionRequest) error {
		return s.Pipeline.EndSlice(ctx, *req.Position)
	})
}

// HandleStir pushes pieces away from a touch in the pan
// POST /api/v1/sessions/{id}/stir
func (h *SessionHandler) HandleStir(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Stir", func(ctx context.Context, s *session.Session, req PositionRequest) error {
		return s.Pipeline.TryStir(ctx, *req.Position)
	})
}

// HandleEat consumes a cooked piece
// POST /api/v1/sessions/{id}/eat
func (h *SessionHandler) HandleEat(w http.ResponseWriter, r *http.Request) {
	handleSessionAction(h, w, r, "Eat", func(ctx context.Context, s *session.Session, req EatRequest) error {
		pieceID, err := uuid.Parse(req.PieceID)
		if err != nil {
			return errors.Join(domain.ErrInvalidInput, err)
		}
		return s.Pipeline.TryEat(ctx, pieceID)
	})
}

// handleSessionAction decodes REQ, runs action with exclusive access to the
// session, and reports the outcome with the resulting snapshot
func handleSessionAction[REQ any](
	h *SessionHandler,
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	action func(context.Context, *session.Session, REQ) error,
) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req REQ
	if err := DecodeOptionalRequest(r, w, &req, opName); err != nil {
		return
	}

	var (
		view     session.View
		rejected error
	)
	err := h.manager.Do(r.Context(), id, func(ctx context.Context, s *session.Session) error {
		rejected = action(ctx, s, req)
		view = s.View()
		return nil
	})
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	resp := ActionResponse{Accepted: rejected == nil, Session: view}
	if rejected != nil {
		logger.FromContext(r.Context()).Debug(LogMsgActionRejected, "operation", opName, "session_id", id, "reason", rejected)
		resp.Reason = rejected.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}
