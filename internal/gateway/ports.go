// Package gateway defines the ports of the remote budgeting service.
// The data cache talks to these interfaces only; the api and memory
// packages provide the outbound adapters.
package gateway

import (
	"context"

	"paycheckbuddy/internal/core"
)

type (
	// UserDataFetcher loads everything the current user can see in one call.
	UserDataFetcher interface {
		FetchUserData(ctx context.Context) (core.UserData, error)
	}

	// TimePeriodWriter creates time periods. Periods are a shared
	// resource: there is deliberately no update or delete.
	TimePeriodWriter interface {
		CreateTimePeriod(ctx context.Context, draft core.TimePeriodDraft) (core.TimePeriod, error)
	}

	ExpenseStore interface {
		CreateExpense(ctx context.Context, timePeriodID int64, draft core.ExpenseDraft) (core.Expense, error)
		UpdateExpense(ctx context.Context, timePeriodID, expenseID int64, draft core.ExpenseDraft) (core.Expense, error)
		DeleteExpense(ctx context.Context, timePeriodID, expenseID int64) error
	}

	PaycheckStore interface {
		CreatePaycheck(ctx context.Context, timePeriodID int64, draft core.PaycheckDraft) (core.Paycheck, error)
		UpdatePaycheck(ctx context.Context, timePeriodID, paycheckID int64, draft core.PaycheckDraft) (core.Paycheck, error)
		DeletePaycheck(ctx context.Context, timePeriodID, paycheckID int64) error
	}

	// Authenticator exchanges credentials for a token pair. The actual
	// authentication mechanism lives on the server; this client only
	// carries tokens around.
	Authenticator interface {
		Login(ctx context.Context, username, password string) (Credentials, error)
		Register(ctx context.Context, username, password string) (Credentials, error)
		RefreshToken(ctx context.Context, refreshToken string) (string, error)
	}

	// CredentialSource supplies the bearer token for outgoing requests
	// and can mint a fresh one when the server rejects the current one.
	CredentialSource interface {
		AccessToken() string
		RefreshAccessToken(ctx context.Context) (string, error)
	}
)

// Credentials is the result of a successful login or registration.
type Credentials struct {
	User         core.User
	AccessToken  string
	RefreshToken string
}
