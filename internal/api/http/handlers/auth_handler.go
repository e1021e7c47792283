package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/api/dto"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/service"
	apperrors "github.com/ohhpeejoshi/grievance-management-system-sub000/pkg/util/errorutil"
)

// AuthHandler manages account registration and the two-step login.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	role := domain.AccountRole(strings.ToUpper(req.Role))
	switch role {
	case domain.RoleOfficeBearer, domain.RoleApprovingAuthority, domain.RoleAdmin:
	default:
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}

	account, err := h.service.Register(c.Context(), req.Name, req.Email, req.Mobile, req.Password, role, req.DepartmentID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":    account.ID,
		"email": account.Email,
		"role":  account.Role,
	}})
}

// Login POST /auth/login. On success a one-time code is mailed.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.RequestLoginOTP(c.Context(), req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "one-time code sent"}})
}

// VerifyOTP POST /auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	account, token, expiresAt, err := h.service.VerifyLoginOTP(c.Context(), req.Email, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Role:        string(account.Role),
	}})
}
