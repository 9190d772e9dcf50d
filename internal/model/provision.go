package model

// CreateAccountParams contains parameters to provision a single account.
type CreateAccountParams struct {
	Name  string
	Email string
	Role  string
}

// RowError describes a single failed row of a provisioning batch.
type RowError struct {
	Email   string
	Message string
}

// RowOutcome is the per-row result of a provisioning batch, in input order.
type RowOutcome struct {
	Email   string
	Created bool
	Account Account
	Err     string
}

// ImportResult aggregates the outcome of one provisioning batch. It is
// returned once to the caller and never persisted.
type ImportResult struct {
	Outcomes []RowOutcome
	Created  []Account
	Errors   []RowError
}
