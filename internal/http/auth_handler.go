package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wonnda/internal/email"
	"wonnda/internal/service"
	"wonnda/internal/validation"
)

// AuthHandler atiende verificación de email, alta de cuentas y sesiones.
type AuthHandler struct {
	logger        *zap.Logger
	accounts      *service.AccountService
	credentials   *service.CredentialService
	sessions      *service.SessionService
	sender        email.Sender
	secureCookies bool
	devMode       bool
}

// NewAuthHandler crea el handler. secureCookies marca las cookies como Secure (producción);
// devMode habilita el endpoint de prueba de email.
func NewAuthHandler(
	logger *zap.Logger,
	accounts *service.AccountService,
	credentials *service.CredentialService,
	sessions *service.SessionService,
	sender email.Sender,
	secureCookies bool,
	devMode bool,
) *AuthHandler {
	return &AuthHandler{
		logger:        logger,
		accounts:      accounts,
		credentials:   credentials,
		sessions:      sessions,
		sender:        sender,
		secureCookies: secureCookies,
		devMode:       devMode,
	}
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendVerification maneja POST /api/auth/send-verification.
func (h *AuthHandler) SendVerification(c *gin.Context) {
	h.sendCode(c, h.accounts.RequestEmailVerification)
}

// ResendVerification maneja POST /api/auth/resend-verification.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	h.sendCode(c, h.accounts.ResendVerificationCode)
}

func (h *AuthHandler) sendCode(c *gin.Context, send func(context.Context, string) (service.VerificationResult, error)) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidEmail, nil)
		return
	}
	res, err := send(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusBadRequest, msgSendFailed)
		return
	}
	var data any
	if res.OTP != "" {
		data = gin.H{"otp": res.OTP, "expiresAt": res.ExpiresAt}
	}
	respondOK(c, http.StatusOK, msgCodeSent, data)
}

// VerifyEmail maneja POST /api/auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid email or code", nil)
		return
	}
	if err := h.accounts.VerifyEmailCode(c.Request.Context(), req.Email, req.Code); err != nil {
		respondServiceError(c, h.logger, err, http.StatusBadRequest, msgInvalidOrExpired)
		return
	}
	respondOK(c, http.StatusOK, msgEmailVerified, nil)
}

// SignupRetailer maneja POST /api/auth/signup-retailer y deja la sesión iniciada.
func (h *AuthHandler) SignupRetailer(c *gin.Context) {
	var req validation.RetailerSignup
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidForm, nil)
		return
	}
	res, err := h.accounts.CreateRetailerAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusBadRequest, msgCreateFailed)
		return
	}
	h.signInCreated(c, res, req.Email, req.PersonalInfo)
	respondOK(c, http.StatusOK, msgRetailerCreated, signupData(res))
}

// SignupSupplier maneja POST /api/auth/signup-supplier.
func (h *AuthHandler) SignupSupplier(c *gin.Context) {
	var req validation.SupplierSignup
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidForm, nil)
		return
	}
	res, err := h.accounts.CreateSupplierAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusBadRequest, msgCreateFailed)
		return
	}
	h.signInCreated(c, res, req.Email, req.PersonalInfo)
	respondOK(c, http.StatusOK, msgSupplierCreated, signupData(res))
}

func signupData(res service.AccountResult) gin.H {
	return gin.H{
		"userId":         res.UserID,
		"role":           res.Role,
		"shouldRedirect": true,
		"redirectUrl":    res.RedirectURL,
	}
}

// signInCreated emite la cookie de sesión para la cuenta recién creada. Si falla, el alta
// sigue siendo exitosa y el cliente puede iniciar sesión a mano.
func (h *AuthHandler) signInCreated(c *gin.Context, res service.AccountResult, emailAddr string, info validation.PersonalInfo) {
	identity := service.Identity{
		ID:            res.UserID,
		Email:         strings.ToLower(strings.TrimSpace(emailAddr)),
		FirstName:     strings.TrimSpace(info.FirstName),
		LastName:      strings.TrimSpace(info.LastName),
		Role:          res.Role,
		EmailVerified: true,
	}
	session, err := h.sessions.Issue(c.Request.Context(), identity, service.SignupSessionTTL)
	if err != nil {
		h.logger.Warn("auto sign in after signup failed", zap.Error(err), zap.String("user_id", res.UserID))
		return
	}
	setSessionCookie(c, session, service.SignupSessionTTL, h.secureCookies)
}

// SignIn maneja POST /api/auth/signin (sesión de 30 días).
func (h *AuthHandler) SignIn(c *gin.Context) {
	h.signIn(c, service.ProviderSessionTTL)
}

// SignInAfterSignup maneja POST /api/auth/signin-after-signup (sesión de 7 días).
func (h *AuthHandler) SignInAfterSignup(c *gin.Context) {
	h.signIn(c, service.SignupSessionTTL)
}

func (h *AuthHandler) signIn(c *gin.Context, ttl time.Duration) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidCredentials, nil)
		return
	}
	identity, err := h.credentials.Authorize(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
		return
	}
	session, err := h.sessions.Issue(c.Request.Context(), identity, ttl)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
		return
	}
	setSessionCookie(c, session, ttl, h.secureCookies)
	respondOK(c, http.StatusOK, msgSignedIn, gin.H{
		"user": gin.H{
			"id":    identity.ID,
			"email": identity.Email,
			"name":  strings.TrimSpace(identity.FirstName + " " + identity.LastName),
			"role":  identity.Role,
		},
		"expires":     session.ExpiresAt,
		"redirectUrl": identity.Role.DashboardPath(),
	})
}

// SignOut maneja POST /api/auth/signout.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if token := sessionToken(c, true); token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			h.logger.Warn("revoke session failed", zap.Error(err))
		}
	}
	clearSessionCookie(c, h.secureCookies)
	respondOK(c, http.StatusOK, msgSignedOut, nil)
}

// Session maneja GET /api/auth/session. Sin sesión responde {user: null}.
func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		respondOK(c, http.StatusOK, "", gin.H{"user": nil})
		return
	}
	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	respondOK(c, http.StatusOK, "", gin.H{"user": claims.Identity, "expires": expires})
}

// TestEmail maneja POST /api/test-email: envía un código fijo para probar la configuración
// del proveedor de email. Solo existe fuera de producción.
func (h *AuthHandler) TestEmail(c *gin.Context) {
	if !h.devMode {
		respondError(c, http.StatusNotFound, "Not found", nil)
		return
	}
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		respondError(c, http.StatusBadRequest, "Email is required", nil)
		return
	}
	err := h.sender.SendVerificationCode(c.Request.Context(), strings.TrimSpace(req.Email), "1234", time.Now().Add(10*time.Minute))
	if err != nil {
		h.logger.Error("test email failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to send test email", nil)
		return
	}
	respondOK(c, http.StatusOK, "Test email sent", nil)
}
