package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MutationResponse reports whether a write took effect.
type MutationResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if payload == nil {
		w.WriteHeader(code)
		return
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		h.logger.Sugar().Errorw("failed to encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithDomainError logs err and answers with its mapped status.
func (h *Handler) respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Sugar().Errorw("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	h.respondWithError(w, code, msg)
}

// respondWithMutation reports a write as a success flag.
func (h *Handler) respondWithMutation(w http.ResponseWriter, r *http.Request, op, id string, err error) {
	h.mutations.ObserveMutation(op, err)
	if err != nil {
		code, msg := statusFor(err)
		if code == http.StatusInternalServerError {
			h.logger.Sugar().Errorw("mutation failed", zap.String("op", op), zap.Error(err))
		}
		h.respondWithJSON(w, code, MutationResponse{Success: false, Error: msg})
		return
	}

	code := http.StatusOK
	if r.Method == http.MethodPost && id != "" {
		code = http.StatusCreated
	}
	h.respondWithJSON(w, code, MutationResponse{Success: true, ID: id})
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("invalid request payload: %w", err)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid request payload: %w", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
