package domain

import "errors"

var (
	// ErrEmptyReply indicates the user submitted an empty or whitespace-only reply.
	ErrEmptyReply = errors.New("reply cannot be empty")

	// ErrMissingAccountFields indicates a direct-token account without a name or token.
	ErrMissingAccountFields = errors.New("account name and access token are required")

	// ErrNoAccountSelected indicates an action that needs a selected account.
	ErrNoAccountSelected = errors.New("no account selected")
)
