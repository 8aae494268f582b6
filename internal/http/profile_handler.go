package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wonnda/internal/domain"
	"wonnda/internal/service"
	"wonnda/internal/validation"
)

// ProfileHandler sirve /api/users/me y los dashboards por rol.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{logger: logger, profiles: profiles}
}

// Me maneja GET /api/users/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	claims, _ := GetSessionClaims(c)
	user, err := h.profiles.GetUser(c.Request.Context(), claims.Identity.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"user": user})
}

// UpdateMe maneja PATCH /api/users/me.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	claims, _ := GetSessionClaims(c)
	var req validation.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidForm, nil)
		return
	}
	user, err := h.profiles.UpdateUser(c.Request.Context(), claims.Identity.ID, req)
	if err != nil {
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

// Dashboard maneja GET /dashboard: redirige al dashboard del rol de la sesión.
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	claims, _ := GetSessionClaims(c)
	c.Redirect(http.StatusFound, claims.Identity.Role.DashboardPath())
}

// RetailerDashboard maneja GET /dashboard/retailer.
func (h *ProfileHandler) RetailerDashboard(c *gin.Context) {
	h.roleDashboard(c, domain.RoleRetailer)
}

// SupplierDashboard maneja GET /dashboard/supplier y /dashboard/manufacturer.
func (h *ProfileHandler) SupplierDashboard(c *gin.Context) {
	h.roleDashboard(c, domain.RoleSupplier)
}

// roleDashboard responde el perfil del rol. Un usuario de otro rol vuelve a /auth/signin y
// uno sin perfil al alta de su rol.
func (h *ProfileHandler) roleDashboard(c *gin.Context, role domain.Role) {
	claims, _ := GetSessionClaims(c)
	d, err := h.profiles.Dashboard(c.Request.Context(), claims.Identity.ID, role)
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, "", d)
	case errors.Is(err, service.ErrUserNotFound):
		c.Redirect(http.StatusFound, "/auth/signin")
	case errors.Is(err, service.ErrProfileNotFound):
		if claims.Identity.Role != role {
			c.Redirect(http.StatusFound, "/auth/signin")
			return
		}
		c.Redirect(http.StatusFound, "/auth/signup/"+string(role))
	default:
		respondServiceError(c, h.logger, err, http.StatusInternalServerError, msgInternal)
	}
}
