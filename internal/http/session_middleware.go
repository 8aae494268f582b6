package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wonnda/internal/service"
)

// SessionCookieName es la cookie que emite el servicio.
const SessionCookieName = "next-auth.session-token"

const sessionClaimsKey = "session_claims"

// sessionCookieNames son las variantes aceptadas al leer la sesión.
var sessionCookieNames = []string{
	SessionCookieName,
	"__Secure-next-auth.session-token",
	"next-auth.session-token.0",
	"__Host-next-auth.session-token",
}

// protectedPrefixes requieren sesión. Las rutas de entrada (/auth/signin, /auth/signup...)
// no redirigen a usuarios ya autenticados.
var protectedPrefixes = []string{"/dashboard", "/dashboard/retailer", "/dashboard/supplier"}

// sessionToken busca el token en las cookies conocidas y, si allowBearer, en Authorization.
func sessionToken(c *gin.Context, allowBearer bool) string {
	for _, name := range sessionCookieNames {
		if v, err := c.Cookie(name); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if !allowBearer {
		return ""
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return ""
}

// SessionMiddleware valida la sesión si viene y guarda los claims en el contexto.
// Nunca corta la request: cada ruta decide si exige sesión.
func SessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, true)
		if token != "" && sessions != nil {
			if claims, err := sessions.Parse(c.Request.Context(), token); err == nil {
				c.Set(sessionClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireSession responde 401 si SessionMiddleware no encontró una sesión válida.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSessionClaims(c); !ok {
			respondError(c, http.StatusUnauthorized, msgUnauthorized, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RouteGuard redirige a /auth/signin?callbackUrl=<path> las rutas protegidas sin sesión.
// Solo mira cookies, como la navegación del browser.
func RouteGuard(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !isProtected(path) {
			c.Next()
			return
		}
		token := sessionToken(c, false)
		if token != "" && sessions != nil {
			if claims, err := sessions.Parse(c.Request.Context(), token); err == nil {
				c.Set(sessionClaimsKey, claims)
				c.Next()
				return
			}
		}
		c.Redirect(http.StatusFound, "/auth/signin?callbackUrl="+url.QueryEscape(path))
		c.Abort()
	}
}

func isProtected(path string) bool {
	for _, p := range protectedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// GetSessionClaims obtiene los claims de sesión desde el contexto.
func GetSessionClaims(c *gin.Context) (service.SessionClaims, bool) {
	val, ok := c.Get(sessionClaimsKey)
	if !ok {
		return service.SessionClaims{}, false
	}
	claims, ok := val.(service.SessionClaims)
	return claims, ok
}

// setSessionCookie escribe la cookie httpOnly, SameSite=Lax, path /.
func setSessionCookie(c *gin.Context, session service.Session, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session.Token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
