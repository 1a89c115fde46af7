package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written and the
// handler should return.
//
// Example usage:
//
//	var req SliceRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Slice"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	return decodeAndValidate(r, w, req, actionName, false)
}

// DecodeOptionalRequest is DecodeAndValidateRequest for endpoints whose body
// may be omitted; an empty body leaves req at its zero value.
func DecodeOptionalRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	return decodeAndValidate(r, w, req, actionName, true)
}

func decodeAndValidate(r *http.Request, w http.ResponseWriter, req any, actionName string, allowEmpty bool) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// sessionIDParam parses the {id} route parameter. On failure the 400 has
// already been written.
func sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgDecodeFailed, "param", "id", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return uuid.Nil, false
	}
	return id, true
}

// GetOptionalQueryParam retrieves an optional query parameter, or defaultValue when absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// getQueryInt reads a positive integer query parameter, or defaultValue
func getQueryInt(r *http.Request, key string, defaultValue int) int {
	if valStr := r.URL.Query().Get(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil && val > 0 {
			return val
		}
	}
	return defaultValue
}
