package domain

// Cross-window message types posted by the OAuth callback page.
const (
	AuthSuccessType = "instagram_auth_success"
	AuthErrorType   = "instagram_auth_error"
)

// AuthMessage is the payload the OAuth callback page relays back to the client.
type AuthMessage struct {
	Type      string `json:"type"`
	AccountID string `json:"accountId,omitempty"`
	Username  string `json:"username,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Terminal reports whether the message ends the handshake.
func (m AuthMessage) Terminal() bool {
	return m.Type == AuthSuccessType || m.Type == AuthErrorType
}
