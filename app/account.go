package app

import (
	"context"

	"github.com/CrestNiraj12/igreply/domain"
)

// AccountService manages the linked accounts known to the backend.
type AccountService interface {
	// ListAccounts returns every linked account.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CreateAccount links an account from a name and a raw access token.
	CreateAccount(ctx context.Context, name, accessToken string) (domain.Account, error)

	// AuthURL returns the OAuth authorization URL for linking a new account.
	AuthURL(ctx context.Context) (domain.AuthURL, error)

	// DeleteAccount unlinks an account.
	DeleteAccount(ctx context.Context, id string) error
}
