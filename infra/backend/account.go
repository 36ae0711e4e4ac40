package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/CrestNiraj12/igreply/domain"
)

// accountService implements app.AccountService against the backend.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by the REST API.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	data, err := s.client.Get(ctx, "/api/accounts", nil)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	var accounts []wireAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parsing accounts: %w", err)
	}

	out := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, mapAccount(a))
	}
	return out, nil
}

func (s *accountService) CreateAccount(ctx context.Context, name, accessToken string) (domain.Account, error) {
	body := map[string]string{
		"name":         name,
		"access_token": accessToken,
	}
	data, err := s.client.Post(ctx, "/api/accounts", nil, body)
	if err != nil {
		return domain.Account{}, fmt.Errorf("creating account: %w", err)
	}

	var a wireAccount
	if err := json.Unmarshal(data, &a); err != nil {
		return domain.Account{}, fmt.Errorf("parsing account: %w", err)
	}
	return mapAccount(a), nil
}

func (s *accountService) AuthURL(ctx context.Context) (domain.AuthURL, error) {
	data, err := s.client.Get(ctx, "/api/auth/instagram/url", nil)
	if err != nil {
		return domain.AuthURL{}, fmt.Errorf("fetching login url: %w", err)
	}

	var u wireAuthURL
	if err := json.Unmarshal(data, &u); err != nil {
		return domain.AuthURL{}, fmt.Errorf("parsing login url: %w", err)
	}
	return domain.AuthURL{URL: u.AuthURL, State: u.State}, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, id string) error {
	path := "/api/accounts/" + url.PathEscape(id)
	if _, err := s.client.Delete(ctx, path, nil); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return nil
}
