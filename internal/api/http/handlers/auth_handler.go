package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/service"
	"github.com/spec-kit/account-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	accounts *service.AccountService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accountService}
}

// Login handles POST /login. Any credential mismatch, including an
// unknown email, yields the same 401 body.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password required", nil)
	}

	id, err := h.accounts.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		var domainErr *util.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == util.CodeInvalidCredentials {
			return c.Status(http.StatusUnauthorized).JSON(dto.LoginResponse{
				Status:  "failed",
				Message: "Invalid credentials",
			})
		}
		return err
	}

	return c.JSON(dto.LoginResponse{
		Status:  "success",
		Message: "User logged in successfully",
		UserID:  id,
	})
}
