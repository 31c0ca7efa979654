package handlers

import (
	"net/http"

	"github.com/Waleed-420/E-Clinical/services/user"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration and sign-in endpoints.
type AuthHandler struct {
	Svc user.AuthService
}

func NewAuthHandler(svc user.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// Signup handles POST /api/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidInput("no data received"))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful!",
		"user":    u,
	})
}

// Signin handles POST /api/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidInput("email and password required"))
		return
	}

	u, token, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Bad credentials always surface as 401, never as 404.
		if appErr, ok := err.(*utils.AppError); ok && appErr.Code == utils.CodeNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    u,
		"token":   token,
	})
}

// CheckEmail handles POST /api/check_email.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidInput("email is required"))
		return
	}

	exists, err := h.Svc.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	msg := "Email available"
	if exists {
		msg = "Email already registered"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exists": exists, "message": msg})
}
