package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/model"
)

// maxImportSize bounds the in-memory part of a multipart CSV upload.
const maxImportSize = 10 << 20

// AccountService defines administrator-facing account management operations.
type AccountService interface {
	Provision(ctx context.Context, params model.CreateAccountParams) (model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	Get(ctx context.Context, id uuid.UUID) (model.Account, error)
	Update(ctx context.Context, id uuid.UUID, params model.CreateAccountParams) (model.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProvisionService runs batch imports of previously uploaded CSV files.
type ProvisionService interface {
	ImportAccounts(ctx context.Context, key string) (model.ImportResult, error)
}

// Account handles HTTP endpoints for account management.
type Account struct {
	accountService   AccountService
	provisionService ProvisionService
	storage          model.Storage
	logger           *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(
	accountService AccountService,
	provisionService ProvisionService,
	storage model.Storage,
	logger *logger.Logger,
) *Account {
	return &Account{
		accountService:   accountService,
		provisionService: provisionService,
		storage:          storage,
		logger:           logger,
	}
}

type accountDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAccountDTO(account model.Account) accountDTO {
	return accountDTO{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role,
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// Create provisions a single account with a generated temporary password.
// POST /api/accounts
func (h *Account) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accountService.Provision(r.Context(), model.CreateAccountParams{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		h.logger.Error("Account handler: creation failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountDTO(account))
}

// List returns all accounts.
// GET /api/accounts
func (h *Account) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List(r.Context())
	if err != nil {
		h.logger.Error("Account handler: list failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	dtos := make([]accountDTO, 0, len(accounts))
	for _, account := range accounts {
		dtos = append(dtos, toAccountDTO(account))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// Get returns a single account by id.
// GET /api/accounts/{id}
func (h *Account) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid account id")
		return
	}

	account, err := h.accountService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountDTO(account))
}

// Update merges non-empty fields into an account.
// PUT /api/accounts/{id}
func (h *Account) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accountService.Update(r.Context(), id, model.CreateAccountParams{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		h.logger.Error("Account handler: update failed",
			"account_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountDTO(account))
}

// Delete removes an account by id.
// DELETE /api/accounts/{id}
func (h *Account) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.accountService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "account removed successfully")
}

// Import accepts a multipart CSV upload, stages it in object storage and runs
// the batch provisioning pipeline over it. Row-level failures are reported in
// the response; only an unreadable file fails the request.
// POST /api/accounts/import
func (h *Account) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	key := fmt.Sprintf("imports/%s.csv", uuid.New())
	if err := h.storage.Upload(r.Context(), key, file); err != nil {
		h.logger.Error("Account handler: failed to stage import file",
			"key", key,
			"error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "failed to store import file")
		return
	}

	result, err := h.provisionService.ImportAccounts(r.Context(), key)
	if err != nil {
		h.logger.Error("Account handler: import failed",
			"key", key,
			"error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "failed to process import file")
		return
	}

	created := make([]accountDTO, 0, len(result.Created))
	for _, account := range result.Created {
		created = append(created, toAccountDTO(account))
	}

	importErrors := make([]map[string]string, 0, len(result.Errors))
	for _, rowErr := range result.Errors {
		importErrors = append(importErrors, map[string]string{
			"email": rowErr.Email,
			"error": rowErr.Message,
		})
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "accounts created successfully from CSV",
		"created": created,
		"errors":  importErrors,
	})
}
