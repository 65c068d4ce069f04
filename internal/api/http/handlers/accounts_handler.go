package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/service"
	"github.com/spec-kit/account-service/pkg/util"
)

// AccountsHandler exposes account CRUD endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// Home handles GET / with a service banner.
func (h *AccountsHandler) Home(c *fiber.Ctx) error {
	return c.SendString("User Management System")
}

// List handles GET /users with limit/offset pagination.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultListLimit)))
	if err != nil {
		return util.NewValidationError("invalid limit or offset, must be integers", nil)
	}
	offset, err := strconv.Atoi(c.Query("offset", strconv.Itoa(service.DefaultListOffset)))
	if err != nil {
		return util.NewValidationError("invalid limit or offset, must be integers", nil)
	}

	accounts, err := h.accounts.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(toAccountResponses(accounts))
}

// Get handles GET /user/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	account, err := h.accounts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.AccountResponse{ID: account.ID, Name: account.Name, Email: account.Email})
}

// Create handles POST /users.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	var req dto.RegisterAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	if _, err := h.accounts.Register(c.UserContext(), req.Name, req.Email, req.Password); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "User created successfully"})
}

// Update handles PUT /user/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	if err := h.accounts.Update(c.UserContext(), id, req.Name, req.Email); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User updated successfully"})
}

// Delete handles DELETE /user/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

// Search handles GET /search?name= with case-insensitive substring match.
func (h *AccountsHandler) Search(c *fiber.Ctx) error {
	accounts, err := h.accounts.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return err
	}
	return c.JSON(toAccountResponses(accounts))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewValidationError("invalid user id", nil)
	}
	return id, nil
}

// toAccountResponses always yields a non-nil slice so empty results
// serialize as [] rather than null.
func toAccountResponses(accounts []domain.Account) []dto.AccountResponse {
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, dto.AccountResponse{ID: account.ID, Name: account.Name, Email: account.Email})
	}
	return out
}
