package handlers

import (
	"fmt"
	"net/http"
	"time"

	"interview-booking-api/internal/auth"
	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/middleware"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService      *services.AuthService
	cookieExpireDays int
	secureCookie     bool
}

func NewAuthHandler(authService *services.AuthService, cookieExpireDays int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		cookieExpireDays: cookieExpireDays,
		secureCookie:     secureCookie,
	}
}

// TokenResponse represents the token response
type TokenResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UserResponse wraps the authenticated user
type UserResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    models.User `json:"data"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Message string `json:"message" example:"Resource not found."`
		Code    string `json:"code" example:"NOT_FOUND"`
	} `json:"error"`
}

// Register godoc
// @Summary Register a new user
// @Description Create a user account and return a JWT. The token is also set as the token cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "User registration data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(fmt.Errorf("bind register request: %v: %w", err, apperrors.ErrMalformedBody))
		return
	}

	_, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.sendToken(c, http.StatusOK, token)
}

// Login godoc
// @Summary Login user
// @Description Authenticate with email and password and return a JWT
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.LoginRequest
	if err := c.ShouldBind(&creds); err != nil {
		_ = c.Error(fmt.Errorf("bind login request: %v: %w", err, apperrors.ErrMalformedBody))
		return
	}

	_, token, err := h.authService.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.sendToken(c, http.StatusOK, token)
}

// GetMe godoc
// @Summary Current user
// @Description Return the user that owns the supplied token
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Success: true, Data: *user})
}

// Logout godoc
// @Summary Logout
// @Description Clear the token cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "token",
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

func (h *AuthHandler) sendToken(c *gin.Context, status int, token *auth.TokenDetails) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "token",
		Value:    token.Token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cookieExpireDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	c.JSON(status, TokenResponse{Success: true, Token: token.Token})
}
