package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/model"
)

// Provision runs batch account imports from uploaded CSV files.
//
// Rows are processed strictly sequentially. Creation commits before the next
// row starts, so a duplicate email later in the same file is caught by the
// live store lookup. A concurrent redesign would need a locked
// check-and-create at the store level.
type Provision struct {
	accounts *Account
	storage  model.Storage
	logger   *logger.Logger
}

func NewProvision(accounts *Account, storage model.Storage, logger *logger.Logger) *Provision {
	return &Provision{
		accounts: accounts,
		storage:  storage,
		logger:   logger,
	}
}

const (
	rowErrMissingFields = "name and email are mandatory"
	rowErrAlreadyExists = "account already exists"
)

// ImportAccounts processes the uploaded CSV stored under key and returns one
// outcome per input row. A single row's failure never aborts the batch; only
// an unreadable or malformed stream does. The stored object is removed
// exactly once on every exit path.
func (s *Provision) ImportAccounts(ctx context.Context, key string) (model.ImportResult, error) {
	result := model.ImportResult{}

	released := false
	release := func() {
		if released {
			return
		}
		released = true
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("Provision service: failed to remove import file",
				"key", key,
				"error", err.Error())
		}
	}
	defer release()

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return result, fmt.Errorf("%w: %v", model.ErrSourceUnreadable, err)
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	// Rows with missing trailing columns yield blank fields and become
	// per-row validation errors instead of failing the stream.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file: nothing to do, not an error.
			return result, nil
		}
		return result, fmt.Errorf("%w: %v", model.ErrSourceUnreadable, err)
	}

	columns := columnIndex(header)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken stream aborts the whole batch, unlike row-level errors.
			return result, fmt.Errorf("%w: %v", model.ErrSourceUnreadable, err)
		}

		params := model.CreateAccountParams{
			Name:  field(row, columns, "name"),
			Email: field(row, columns, "email"),
			Role:  field(row, columns, "role"),
		}

		outcome := s.importRow(ctx, params)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Created {
			result.Created = append(result.Created, outcome.Account)
		} else {
			result.Errors = append(result.Errors, model.RowError{Email: outcome.Email, Message: outcome.Err})
		}
	}

	s.logger.Info("Provision service: import finished",
		"key", key,
		"rows", len(result.Outcomes),
		"created", len(result.Created),
		"failed", len(result.Errors))

	return result, nil
}

func (s *Provision) importRow(ctx context.Context, params model.CreateAccountParams) model.RowOutcome {
	account, err := s.accounts.Provision(ctx, params)
	switch {
	case err == nil:
		return model.RowOutcome{Email: params.Email, Created: true, Account: account}
	case errors.Is(err, model.ErrMissingFields):
		return model.RowOutcome{Email: params.Email, Err: rowErrMissingFields}
	case errors.Is(err, model.ErrDuplicateEmail):
		return model.RowOutcome{Email: params.Email, Err: rowErrAlreadyExists}
	default:
		s.logger.Error("Provision service: row failed",
			"email", params.Email,
			"error", err.Error())
		return model.RowOutcome{Email: params.Email, Err: "failed to create account"}
	}
}

func columnIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func field(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
