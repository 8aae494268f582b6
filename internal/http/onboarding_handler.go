package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wonnda/internal/domain"
	"wonnda/internal/service"
	"wonnda/internal/validation"
	"wonnda/internal/wizard"
)

// OnboardingHandler expone el wizard de alta sobre borradores persistidos.
type OnboardingHandler struct {
	logger        *zap.Logger
	onboarding    *service.OnboardingService
	sessions      *service.SessionService
	secureCookies bool
}

func NewOnboardingHandler(logger *zap.Logger, onboarding *service.OnboardingService, sessions *service.SessionService, secureCookies bool) *OnboardingHandler {
	return &OnboardingHandler{
		logger:        logger,
		onboarding:    onboarding,
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

// Steps maneja GET /api/onboarding/steps/:role.
func (h *OnboardingHandler) Steps(c *gin.Context) {
	steps, err := wizard.Sequence(domain.Role(c.Param("role")))
	if err != nil {
		respondError(c, http.StatusNotFound, "Unknown account type", nil)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"steps": steps})
}

// StartDraft maneja POST /api/onboarding/drafts.
func (h *OnboardingHandler) StartDraft(c *gin.Context) {
	var req struct {
		Role domain.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidForm, nil)
		return
	}
	state, err := h.onboarding.StartDraft(c.Request.Context(), req.Role)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
		return
	}
	respondOK(c, http.StatusCreated, "Onboarding started", state)
}

// GetDraft maneja GET /api/onboarding/drafts/:id.
func (h *OnboardingHandler) GetDraft(c *gin.Context) {
	state, err := h.onboarding.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
		return
	}
	respondOK(c, http.StatusOK, "", state)
}

// SubmitStep maneja POST /api/onboarding/drafts/:id/steps/:step. El último paso crea la
// cuenta y deja la sesión iniciada.
func (h *OnboardingHandler) SubmitStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		respondError(c, http.StatusNotFound, msgDraftNotFound, nil)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidForm, nil)
		return
	}
	res, err := h.onboarding.SubmitStep(c.Request.Context(), c.Param("id"), step, json.RawMessage(body))
	if err != nil {
		fallback, status := msgInternal, http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailSendFailure) {
			fallback, status = msgSendFailed, http.StatusBadRequest
		}
		respondServiceError(c, h.logger, err, status, fallback)
		return
	}

	message := "Step saved"
	if res.Account != nil {
		h.signIn(c, res)
		message = msgRetailerCreated
		if res.Account.Role == domain.RoleSupplier {
			message = msgSupplierCreated
		}
	}
	respondOK(c, http.StatusOK, message, res)
}

// Back maneja POST /api/onboarding/drafts/:id/back.
func (h *OnboardingHandler) Back(c *gin.Context) {
	state, err := h.onboarding.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
		return
	}
	respondOK(c, http.StatusOK, "", state)
}

func (h *OnboardingHandler) signIn(c *gin.Context, res service.StepResult) {
	var info validation.PersonalInfo
	if raw, ok := res.Draft.Answers[wizard.StepPersonalInfo]; ok {
		_ = json.Unmarshal(raw, &info)
	}
	identity := service.Identity{
		ID:            res.Account.UserID,
		Email:         res.Draft.Email,
		FirstName:     info.FirstName,
		LastName:      info.LastName,
		Role:          res.Account.Role,
		EmailVerified: true,
	}
	session, err := h.sessions.Issue(c.Request.Context(), identity, service.SignupSessionTTL)
	if err != nil {
		h.logger.Warn("auto sign in after onboarding failed", zap.Error(err), zap.String("user_id", identity.ID))
		return
	}
	setSessionCookie(c, session, service.SignupSessionTTL, h.secureCookies)
}
