package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wonnda/internal/service"
	"wonnda/internal/validation"
	"wonnda/internal/wizard"
)

// Mensajes visibles para el cliente. El detalle de los errores de colaboradores solo se loguea.
const (
	msgInvalidEmail       = "Invalid email address"
	msgAccountExists      = "An account with this email already exists"
	msgSendFailed         = "Failed to send verification email"
	msgCodeSent           = "Verification code sent successfully"
	msgInvalidOrExpired   = "Invalid or expired verification code"
	msgEmailVerified      = "Email verified successfully"
	msgInvalidForm        = "Invalid form data"
	msgNotVerified        = "Email not verified or verification expired"
	msgRetailerCreated    = "Account created successfully"
	msgSupplierCreated    = "Supplier account created successfully"
	msgCreateFailed       = "Failed to create account"
	msgTooManyRequests    = "Too many requests. Please try again later."
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Not authenticated"
	msgDraftNotFound      = "Onboarding draft not found"
	msgDraftCompleted     = "Onboarding already completed"
	msgStepOutOfOrder     = "Please complete the current step first"
	msgProfileNotFound    = "Profile not found"
	msgInternal           = "Internal server error"
	msgSignedIn           = "Signed in successfully"
	msgSignedOut          = "Signed out successfully"
)

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    any                    `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Details validation.FieldErrors `json:"details,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string, details validation.FieldErrors) {
	c.JSON(status, envelope{Success: false, Error: message, Details: details})
}

// respondServiceError traduce los errores de servicio al envelope. Los errores no
// clasificados se loguean y se responden con fallbackStatus y el mensaje genérico fallback.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error, fallbackStatus int, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Message, verr.Fields)
	case errors.Is(err, service.ErrAccountExists):
		respondError(c, http.StatusBadRequest, msgAccountExists, nil)
	case errors.Is(err, service.ErrEmailNotVerified):
		respondError(c, http.StatusBadRequest, msgNotVerified, nil)
	case errors.Is(err, service.ErrInvalidOrExpiredCode):
		respondError(c, http.StatusBadRequest, msgInvalidOrExpired, nil)
	case errors.Is(err, service.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, msgTooManyRequests, nil)
	case errors.Is(err, service.ErrEmailSendFailure):
		logger.Warn("verification email not delivered", zap.Error(err))
		respondError(c, http.StatusBadRequest, msgSendFailed, nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, msgInvalidCredentials, nil)
	case errors.Is(err, service.ErrDraftNotFound), errors.Is(err, wizard.ErrUnknownStep):
		respondError(c, http.StatusNotFound, msgDraftNotFound, nil)
	case errors.Is(err, service.ErrDraftCompleted):
		respondError(c, http.StatusConflict, msgDraftCompleted, nil)
	case errors.Is(err, service.ErrStepOutOfOrder):
		respondError(c, http.StatusConflict, msgStepOutOfOrder, nil)
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, msgProfileNotFound, nil)
	default:
		logger.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		respondError(c, fallbackStatus, fallback, nil)
	}
}
