package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simpleapi/simpleapi/internal/config"
	"github.com/simpleapi/simpleapi/internal/identity"
	"github.com/simpleapi/simpleapi/pkg/logger"
	"github.com/simpleapi/simpleapi/pkg/metrics"
	"github.com/simpleapi/simpleapi/pkg/problem"
)

// AuthHandler serves the account endpoints: registration, login and the
// smoke-test endpoint.
type AuthHandler struct {
	cfg *config.Config
	svc *identity.Service
}

func NewAuthHandler(cfg *config.Config, svc *identity.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, svc: svc}
}

// RegisterRoutes mounts the account routes on the engine. All three are
// anonymous; login is where callers obtain tokens for the protected routes.
func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/users", h.SignUp)
	r.POST("/users/login", h.Login)
	r.GET("/test", h.Test)
}

// SignUp handles POST /users. A successful registration returns 200 with an
// empty body; store rejections come back as a 400 problem with one detail
// per reason.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var input identity.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		h.badRequest(c, "Bad request", err.Error(), "ValidationError", nil)
		return
	}

	if err := h.svc.SignUp(c.Request.Context(), input); err != nil {
		var rej *identity.RegistrationError
		if errors.As(err, &rej) {
			metrics.SignupsTotal.WithLabelValues("rejected").Inc()
			h.badRequest(c, rej.Message, rej.Message, "UserCreation", rej.Details)
			return
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		h.internalError(c, err)
		return
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	c.Status(http.StatusOK)
}

// Login handles POST /users/login. Every credential failure returns the same
// generic 400 so callers cannot probe which emails have accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var input identity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		h.badRequest(c, "Bad request", err.Error(), "ValidationError", nil)
		return
	}

	out, err := h.svc.Login(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			h.badRequest(c, "Login failed", identity.ErrInvalidCredentials.Error(), "InvalidCredentials", nil)
			return
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.internalError(c, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssued.WithLabelValues("access").Inc()
	metrics.TokensIssued.WithLabelValues("refresh").Inc()
	c.JSON(http.StatusOK, out)
}

// Test handles GET /test, a trivial liveness probe for API consumers.
func (h *AuthHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) badRequest(c *gin.Context, title, detail, typ string, details []string) {
	problem.Problem{
		Title:   title,
		Detail:  detail,
		Status:  http.StatusBadRequest,
		Type:    typ,
		Details: details,
	}.Abort(c, !h.cfg.IsProduction())
}

func (h *AuthHandler) internalError(c *gin.Context, err error) {
	logger.Errorf("unexpected error: %v", err)
	problem.Problem{
		Title:  "Unexpected error happened",
		Detail: err.Error(),
		Status: http.StatusInternalServerError,
		Type:   "Unexpected",
	}.Abort(c, !h.cfg.IsProduction())
}
