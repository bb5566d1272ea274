package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	calldomain "callmonitor/internal/call/domain"
	"callmonitor/internal/call/service"
	"callmonitor/internal/telemetry"
)

// Handler carries the call service and request-scoped helpers for the API
// endpoints.
type Handler struct {
	calls    *service.Service
	validate *validator.Validate
	emitter  telemetry.EventEmitter

	// bcrypt hash of the provider webhook shared secret; empty disables the check.
	webhookSecretHash string
	compareSecret     func(hash string, secret []byte) error
}

// NewHandler returns the API handler. compareSecret verifies the provider
// webhook secret against its stored hash.
func NewHandler(calls *service.Service, emitter telemetry.EventEmitter, webhookSecretHash string, compareSecret func(hash string, secret []byte) error) *Handler {
	return &Handler{
		calls:             calls,
		validate:          validator.New(),
		emitter:           emitter,
		webhookSecretHash: webhookSecretHash,
		compareSecret:     compareSecret,
	}
}

type startCallRequest struct {
	OrgID       string                 `json:"organization_id" validate:"required"`
	PhoneNumber string                 `json:"phone_number" validate:"required"`
	Modulations calldomain.Modulations `json:"modulations"`
}

type startCallResponse struct {
	Success  bool              `json:"success"`
	CallID   string            `json:"call_id"`
	CallSID  string            `json:"call_sid"`
	Warnings []service.Warning `json:"warnings,omitempty"`
}

// StartCall handles POST /api/calls/start.
func (h *Handler) StartCall(w http.ResponseWriter, r *http.Request) {
	var req startCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	actor, _ := GetUserID(r.Context())
	res, err := h.calls.StartCall(r.Context(), service.StartCallInput{
		OrgID:       req.OrgID,
		PhoneNumber: req.PhoneNumber,
		Modulations: req.Modulations,
	}, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	telemetry.EmitAsync(h.emitter, r.Context(), &telemetry.Event{
		OrgID:     req.OrgID,
		UserID:    actor,
		CallID:    res.CallID,
		EventType: "call_started",
		Source:    "server",
		CreatedAt: nowUTC(),
	})
	respondJSON(w, http.StatusCreated, startCallResponse{
		Success:  true,
		CallID:   res.CallID,
		CallSID:  res.CallSID,
		Warnings: res.Warnings,
	})
}

type callStatusResponse struct {
	Success    bool `json:"success"`
	Call       any  `json:"call"`
	AIRuns     any  `json:"ai_runs"`
	Recordings any  `json:"recordings"`
	Activity   any  `json:"activity"`
}

// GetCall handles GET /api/calls/{id}.
func (h *Handler) GetCall(w http.ResponseWriter, r *http.Request) {
	actor, _ := GetUserID(r.Context())
	status, err := h.calls.GetCallStatus(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, callStatusResponse{
		Success:    true,
		Call:       status.Call,
		AIRuns:     status.AIRuns,
		Recordings: status.Recordings,
		Activity:   status.Activity,
	})
}

// TriggerTranscription handles POST /api/calls/{id}/transcribe.
func (h *Handler) TriggerTranscription(w http.ResponseWriter, r *http.Request) {
	actor, _ := GetUserID(r.Context())
	callID := chi.URLParam(r, "id")
	run, err := h.calls.TriggerTranscription(r.Context(), callID, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	telemetry.EmitAsync(h.emitter, r.Context(), &telemetry.Event{
		UserID:    actor,
		CallID:    callID,
		EventType: "transcription_queued",
		Source:    "server",
		CreatedAt: nowUTC(),
	})
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"ai_run":  run,
	})
}

// CallActivity handles GET /api/call-activity.
func (h *Handler) CallActivity(w http.ResponseWriter, r *http.Request) {
	actor, _ := GetUserID(r.Context())
	orgID := r.URL.Query().Get("organization_id")
	if orgID == "" {
		orgID, _ = GetOrgID(r.Context())
	}
	limit := parseIntParam(r, "limit")
	offset := parseIntParam(r, "offset")
	entries, err := h.calls.CallActivity(r.Context(), orgID, actor, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"activity": entries,
	})
}

// CallCapabilities handles GET /api/call-capabilities.
func (h *Handler) CallCapabilities(w http.ResponseWriter, r *http.Request) {
	actor, _ := GetUserID(r.Context())
	orgID := r.URL.Query().Get("organization_id")
	if orgID == "" {
		orgID, _ = GetOrgID(r.Context())
	}
	caps, err := h.calls.Capabilities(r.Context(), orgID, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"capabilities": caps,
	})
}

type voiceConfigRequest struct {
	OrgID  string                 `json:"organization_id"`
	Config calldomain.VoiceConfig `json:"config"`
}

// PutVoiceConfig handles PUT /api/voice/config. Admin-only; language codes
// must be ISO-639-1.
func (h *Handler) PutVoiceConfig(w http.ResponseWriter, r *http.Request) {
	var req voiceConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, err)
		return
	}
	if req.OrgID == "" {
		req.OrgID, _ = GetOrgID(r.Context())
	}
	actor, _ := GetUserID(r.Context())
	applied, err := h.calls.UpdateVoiceConfig(r.Context(), req.OrgID, actor, req.Config)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config":  applied,
	})
}

type recordingCallbackRequest struct {
	CallID          string          `json:"call_id" validate:"required"`
	CallSID         string          `json:"call_sid"`
	RecordingSID    string          `json:"recording_sid" validate:"required"`
	RecordingURL    string          `json:"recording_url" validate:"required"`
	DurationSeconds int             `json:"duration_seconds"`
	Manifest        json.RawMessage `json:"manifest,omitempty"`
}

// RecordingCallback handles POST /api/provider/recording-callback. The
// provider authenticates with the shared webhook secret, not a user token.
func (h *Handler) RecordingCallback(w http.ResponseWriter, r *http.Request) {
	if h.webhookSecretHash != "" {
		secret := r.Header.Get("X-Provider-Secret")
		if secret == "" || h.compareSecret == nil || h.compareSecret(h.webhookSecretHash, []byte(secret)) != nil {
			respondJSON(w, http.StatusUnauthorized, errorEnvelope{
				Error: errorBody{Code: "AUTH_REQUIRED", Message: "invalid webhook secret"},
			})
			return
		}
	}
	var req recordingCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	rec, err := h.calls.HandleRecordingCallback(r.Context(), service.RecordingCallbackInput{
		CallID:          req.CallID,
		CallSID:         req.CallSID,
		RecordingSID:    req.RecordingSID,
		RecordingURL:    req.RecordingURL,
		DurationSeconds: req.DurationSeconds,
		Manifest:        req.Manifest,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	telemetry.EmitAsync(h.emitter, r.Context(), &telemetry.Event{
		OrgID:     rec.OrgID,
		CallID:    rec.CallID,
		EventType: "call_completed",
		Source:    "provider_callback",
		CreatedAt: nowUTC(),
	})
	respondJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"recording": rec,
	})
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func nowUTC() time.Time { return time.Now().UTC() }

func parseIntParam(r *http.Request, name string) int32 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0
	}
	return int32(n)
}
