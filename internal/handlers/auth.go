package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid), err)
		return
	}
	user, err := h.authService.RegisterUser(c.Request.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "User registered successfully", "email": user.Email})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid), err)
		return
	}
	token, err := h.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"access_token": token, "token_type": "bearer"})
}
