package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/callscope/core/internal/middleware"
	"github.com/callscope/core/internal/pkg/response"
)

type Handler struct {
	svc        *Service
	cookieTTL  int
	secureOnly bool
}

// NewHandler builds the auth handler. secureOnly marks the session cookie
// Secure, which production should always set.
func NewHandler(svc *Service, secureOnly bool) *Handler {
	return &Handler{
		svc:        svc,
		cookieTTL:  int(svc.issuer.TTL().Seconds()),
		secureOnly: secureOnly,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/signup", h.signup)
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)

	a := rg.Group("", authMW)
	a.GET("/profile", h.getProfile)
	a.PUT("/profile", h.updateProfile)
	a.POST("/validate-token", h.validateToken)
}

func (h *Handler) signup(c *gin.Context) {
	var dto SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Signup(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, "User already exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    u.Safe(),
	})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tok, u, err := h.svc.Login(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.InternalError(c, err)
		return
	}

	h.setSessionCookie(c, tok, h.cookieTTL)
	response.Success(c, gin.H{
		"message": "Authenticated",
		"user": gin.H{
			"email":     u.Email,
			"firstname": u.FirstName,
		},
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, gin.H{"message": "Logged out"})
}

func (h *Handler) getProfile(c *gin.Context) {
	u, err := h.svc.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"user": u.Safe()})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"message": "Profile updated",
		"user":    u.Safe(),
	})
}

// validateToken answers for clients restoring a session on page load. The
// auth middleware already verified the token, so the claims are enough.
func (h *Handler) validateToken(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Forbidden(c, "Invalid Token")
		return
	}
	response.Success(c, gin.H{
		"firstname": claims.FirstName,
		"email":     claims.Email,
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, value, maxAge, "/", "", h.secureOnly, true)
}
