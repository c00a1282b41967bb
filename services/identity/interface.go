package identity

import (
	"context"
	"time"
)

// Token is the issuance receipt for a one-time code: the provider-side user
// ID the code is bound to and an opaque request id for the pending exchange.
type Token struct {
	UserID          string `json:"userId"`
	SecretRequestID string `json:"secret"`
}

// Session is the provider-issued credential for a verified identity. Held as
// an opaque handle; this service never inspects it beyond UserID and Expiry.
type Session struct {
	UserID string    `json:"userId"`
	Token  string    `json:"token"`
	Expiry time.Time `json:"expire"`
}

// Identity describes the account behind an active session.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Client wraps the hosted identity provider's token and session lifecycle.
type Client interface {
	// IssuePhoneToken sends a one-time code over SMS to the given E.164 number.
	IssuePhoneToken(ctx context.Context, uniqueID, phone string) (*Token, error)
	// IssueEmailToken sends a one-time code to the given email address.
	IssueEmailToken(ctx context.Context, uniqueID, email string) (*Token, error)
	// ExchangeToken trades a delivered code for a session. Fails when the code
	// is invalid or expired.
	ExchangeToken(ctx context.Context, userID, code string) (*Session, error)
	// CurrentIdentity resolves the account behind a session token.
	CurrentIdentity(ctx context.Context, sessionToken string) (*Identity, error)
	// DeleteSession closes the session behind a token. Callers tolerate
	// failure; a stale session must never block a new sign-in.
	DeleteSession(ctx context.Context, sessionToken string) error
}
