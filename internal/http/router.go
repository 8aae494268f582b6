package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wonnda/internal/metrics"
	"wonnda/internal/service"
)

// Handlers agrupa los handlers montados por NewRouter.
type Handlers struct {
	Auth       *AuthHandler
	Onboarding *OnboardingHandler
	Profile    *ProfileHandler
}

// RouterOptions son dependencias de infraestructura del router. Metrics nil no monta /metrics;
// AuthLimiter nil no limita /api/auth.
type RouterOptions struct {
	Recorder    metrics.Recorder
	Metrics     http.Handler
	AuthLimiter *IPRateLimiter
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, sessions *service.SessionService, h Handlers, opts RouterOptions) *gin.Engine {
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.Nop{}
	}

	r := gin.New()
	r.Use(zapLoggerMiddleware(logger, rec), gin.Recovery(), RouteGuard(sessions))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	api := r.Group("/api", jsonContentTypeMiddleware(), SessionMiddleware(sessions))

	auth := api.Group("/auth")
	if opts.AuthLimiter != nil {
		auth.Use(opts.AuthLimiter.Middleware())
	}
	auth.POST("/send-verification", h.Auth.SendVerification)
	auth.POST("/resend-verification", h.Auth.ResendVerification)
	auth.POST("/verify-email", h.Auth.VerifyEmail)
	auth.POST("/signup-retailer", h.Auth.SignupRetailer)
	auth.POST("/signup-supplier", h.Auth.SignupSupplier)
	auth.POST("/signin", h.Auth.SignIn)
	auth.POST("/signin-after-signup", h.Auth.SignInAfterSignup)
	auth.POST("/signout", h.Auth.SignOut)
	auth.GET("/session", h.Auth.Session)
	api.POST("/test-email", h.Auth.TestEmail)

	onboarding := api.Group("/onboarding")
	onboarding.GET("/steps/:role", h.Onboarding.Steps)
	drafts := onboarding.Group("/drafts")
	if opts.AuthLimiter != nil {
		drafts.Use(opts.AuthLimiter.Middleware())
	}
	drafts.POST("", h.Onboarding.StartDraft)
	drafts.GET("/:id", h.Onboarding.GetDraft)
	drafts.POST("/:id/steps/:step", h.Onboarding.SubmitStep)
	drafts.POST("/:id/back", h.Onboarding.Back)

	users := api.Group("/users", RequireSession())
	users.GET("/me", h.Profile.Me)
	users.PATCH("/me", h.Profile.UpdateMe)

	dashboard := r.Group("/dashboard")
	dashboard.GET("", h.Profile.Dashboard)
	dashboard.GET("/retailer", h.Profile.RetailerDashboard)
	dashboard.GET("/supplier", h.Profile.SupplierDashboard)
	dashboard.GET("/manufacturer", h.Profile.SupplierDashboard)

	return r
}

// zapLoggerMiddleware loguea cada request con zap y cuenta el status.
func zapLoggerMiddleware(logger *zap.Logger, rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		rec.RecordHTTPStatus(status)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
