package handlers

import (
	"skyfare/internal/adapters/http/middleware"
	"skyfare/internal/core/services"
	"skyfare/internal/pkg/response"
	"skyfare/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles sign-up, sign-in and sign-out endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp handles public registration
// @Summary Sign up
// @Description Register a new client account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignUpInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var input services.SignUpInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.authService.SignUp(c.Context(), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "User registered successfully", fiber.Map{
		"user": user,
	})
}

// SignInRequest represents sign-in request body
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignIn handles sign-in
// @Summary Sign in
// @Description Exchange credentials for a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	token, err := h.authService.SignIn(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Signed in successfully", fiber.Map{
		"token": token,
	})
}

// SignOut handles sign-out
// @Summary Sign out
// @Description Revoke the current session token
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	tok := middleware.ExtractToken(c)
	if tok == "" {
		return response.Unauthorized(c, "Session token required")
	}

	if err := h.authService.SignOut(c.Context(), tok); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Signed out successfully", nil)
}
