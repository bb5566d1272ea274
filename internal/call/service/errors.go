package service

// Error is a coded workflow failure. Hard failures abort the workflow and are
// returned as the error; handlers map codes to HTTP statuses.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// Hard failures for the call workflow.
var (
	ErrAuthRequired         = &Error{Code: "AUTH_REQUIRED", Message: "unauthenticated"}
	ErrOrgNotFound          = &Error{Code: "CALL_START_ORG_NOT_FOUND", Message: "organization not found"}
	ErrOrgMismatch          = &Error{Code: "AUTH_ORG_MISMATCH", Message: "actor not authorized for organization"}
	ErrAdminRequired        = &Error{Code: "AUTH_ADMIN_REQUIRED", Message: "organization admin or owner required"}
	ErrControlSystemMissing = &Error{Code: "CALL_START_SYS_MISSING", Message: "control system not registered"}
	ErrAISystemMissing      = &Error{Code: "AI_SYSTEM_MISSING", Message: "AI system not registered"}
	ErrCallNotFound         = &Error{Code: "CALL_NOT_FOUND", Message: "call not found"}
	ErrProviderRejected     = &Error{Code: "CALL_PROVIDER_REJECTED", Message: "call provider rejected the call"}
)

// Warning is a non-fatal failure collected on an otherwise successful result.
// Callers must inspect warnings even on success.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarnAISystemMissing is collected when transcription was requested but no AI
// system is registered; the call itself still proceeds.
var WarnAISystemMissing = Warning{Code: "AI_SYSTEM_MISSING", Message: "AI system not registered; transcription skipped"}
