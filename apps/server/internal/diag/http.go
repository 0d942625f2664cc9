// Package diag exposes the diagnostic read APIs consumed by external
// tooling: decision traces, score modifiers and behavior profile codes.
package diag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"idlerpg-lite/engine"

	"idlerpg-lite/apps/server/internal/arena"
)

const routePrefix = "/api/diag/characters/"

type HTTPHandler struct {
	arena *arena.Arena
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type profileRequest struct {
	Code string `json:"code"`
}

func NewHTTPHandler(a *arena.Arena) *HTTPHandler {
	return &HTTPHandler{arena: a}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(routePrefix, h.handleCharacters)
}

// handleCharacters dispatches /api/diag/characters/{id}[/resource[/arg]].
func (h *HTTPHandler) handleCharacters(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, routePrefix), "/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "missing_character_id", "character id is required")
		return
	}
	characterID := parts[0]
	resource := ""
	if len(parts) > 1 {
		resource = parts[1]
	}
	arg := ""
	if len(parts) > 2 {
		arg = parts[2]
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	switch resource {
	case "":
		h.handleCharacter(w, r, characterID)
	case "trace":
		h.handleTrace(w, r, characterID)
	case "modifiers":
		h.handleModifiers(ctx, w, r, characterID, arg)
	case "profile":
		h.handleProfile(ctx, w, r, characterID)
	default:
		writeError(w, http.StatusNotFound, "unknown_resource", "unknown diagnostic resource")
	}
}

func (h *HTTPHandler) handleCharacter(w http.ResponseWriter, r *http.Request, characterID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	c, ok := h.arena.Character(characterID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_character", "character is not registered")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *HTTPHandler) handleTrace(w http.ResponseWriter, r *http.Request, characterID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	trace, ok := h.arena.Trace(characterID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_character", "character is not registered")
		return
	}
	writeJSON(w, http.StatusOK, trace)
}

func (h *HTTPHandler) handleModifiers(ctx context.Context, w http.ResponseWriter, r *http.Request, characterID, code string) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"items": h.arena.Modifiers(characterID),
		})
	case http.MethodPut, http.MethodPost:
		var m engine.Modifier
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeError(w, http.StatusBadRequest, "malformed_payload", "modifier payload is not valid JSON")
			return
		}
		if code != "" {
			m.Code = code
		}
		if err := h.arena.SetModifier(ctx, characterID, m); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	case http.MethodDelete:
		if code == "" {
			writeError(w, http.StatusBadRequest, "missing_modifier_code", "modifier code is required")
			return
		}
		if err := h.arena.DeleteModifier(ctx, characterID, code); err != nil {
			if errors.Is(err, engine.ErrModifierNotFound) {
				writeError(w, http.StatusNotFound, "unknown_modifier", "no modifier with that code")
				return
			}
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func (h *HTTPHandler) handleProfile(ctx context.Context, w http.ResponseWriter, r *http.Request, characterID string) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, profileRequest{Code: h.arena.ProfileCode(characterID)})
	case http.MethodPut, http.MethodPost:
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed_payload", "profile payload is not valid JSON")
			return
		}
		if err := h.arena.SetProfileCode(ctx, characterID, req.Code); err != nil {
			if errors.Is(err, engine.ErrUnknownProfile) {
				writeError(w, http.StatusBadRequest, "unknown_profile", "no behavior profile with that code")
				return
			}
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// writeServiceError maps engine validation errors to 400, everything
// else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *engine.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Code, ve.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", "diagnostic operation failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
