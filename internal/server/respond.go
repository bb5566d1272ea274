package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"callmonitor/internal/call/service"
	"callmonitor/internal/evidence"

	calldomain "callmonitor/internal/call/domain"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		respondJSON(w, statusForCode(svcErr.Code), errorEnvelope{
			Error: errorBody{Code: svcErr.Code, Message: svcErr.Message},
		})
		return
	}
	if errors.Is(err, calldomain.ErrInvalidLanguage) {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{
			Error: errorBody{Code: "INVALID_LANGUAGE", Message: err.Error()},
		})
		return
	}
	if errors.Is(err, evidence.ErrInvalidManifest) {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{
			Error: errorBody{Code: "INVALID_MANIFEST", Message: err.Error()},
		})
		return
	}
	log.Printf("server: internal error: %v", err)
	respondJSON(w, http.StatusInternalServerError, errorEnvelope{
		Error: errorBody{Code: "INTERNAL", Message: "internal error"},
	})
}

func statusForCode(code string) int {
	switch code {
	case "AUTH_REQUIRED":
		return http.StatusUnauthorized
	case "AUTH_ORG_MISMATCH", "AUTH_ADMIN_REQUIRED":
		return http.StatusForbidden
	case "CALL_START_ORG_NOT_FOUND", "CALL_NOT_FOUND":
		return http.StatusNotFound
	case "CALL_PROVIDER_REJECTED":
		return http.StatusBadGateway
	case "CALL_START_SYS_MISSING", "AI_SYSTEM_MISSING":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondValidationError(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, errorEnvelope{
		Error: errorBody{Code: "VALIDATION_FAILED", Message: err.Error()},
	})
}
