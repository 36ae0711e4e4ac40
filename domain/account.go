package domain

import "time"

// Account is a linked Instagram identity managed through the backend.
type Account struct {
	ID        string
	Name      string
	UserID    string // Platform user id, empty until linked
	Username  string // Platform username, empty until linked
	CreatedAt time.Time
	IsActive  bool
}

// Label renders the account the way the selector shows it.
func (a Account) Label() string {
	if a.Username == "" {
		return a.Name
	}
	return a.Name + " (@" + a.Username + ")"
}

// AuthURL is the authorization endpoint handed out by the backend.
type AuthURL struct {
	URL   string
	State string
}
