package auth

import (
	"context"
	"time"

	clinicRepo "ayursutra/database/repository/clinic"
	"ayursutra/services/identity"
	"ayursutra/utils"
)

// Sign-in channels and roles.
const (
	ChannelPhone = "phone"
	ChannelEmail = "email"

	RoleUser   = "user"
	RoleClinic = "clinic"
)

// Client-visible routes the flow resolves to.
const (
	RouteSignin          = "/signin"
	RouteUserSignup      = "/users/signup"
	RouteClinicSignup    = "/clinics/signup"
	RouteClinicDashboard = "/clinics/doctordashbord"
)

// AuthService orchestrates the sign-in / OTP-verification / role-routing flow.
type AuthService interface {
	// RequestCode validates and normalizes the identifier, issues a one-time
	// code through the identity provider, and records the pending flow.
	RequestCode(ctx context.Context, identifier, channel, role string) (*CodeRequest, error)
	// ResendCode re-issues the code for a pending flow. Rejected with
	// ResendBlockedError while the 30-second window is still open.
	ResendCode(ctx context.Context, userID string) (*CodeRequest, error)
	// Verify exchanges the entered code for a session and resolves the
	// post-sign-in route for the caller's role.
	Verify(ctx context.Context, in VerifyInput) (*VerifyResult, error)
	// Profile fetches the signed-in account from the identity provider.
	Profile(ctx context.Context, sessionToken string) (*identity.Identity, error)
	// SignOut closes the provider session and revokes the minted token (both
	// best effort), then clears the session context. The context clear is a
	// required postcondition.
	SignOut(ctx context.Context, userID, bearerToken, sessionToken string) error
}

// CodeRequest is the outcome of a successful code issuance.
type CodeRequest struct {
	UserID          string `json:"userId"`
	SecretRequestID string `json:"secretRequestId"`
	Channel         string `json:"channel"`
	Role            string `json:"role"`
	VerifyRoute     string `json:"verifyRoute"`
}

// VerifyInput carries everything the verify step needs. PriorSessionToken, if
// present, names a leftover session to close before the exchange.
type VerifyInput struct {
	UserID            string
	Digits            []string
	Role              string
	PriorSessionToken string
}

// VerifyResult is a established session plus the resolved route.
type VerifyResult struct {
	UserID       string `json:"userId"`
	Token        string `json:"token"`
	SessionToken string `json:"sessionToken"`
	Route        string `json:"route"`
	ClinicID     string `json:"clinicId,omitempty"`
}

// SessionStore persists sign-in flow state between the request and verify steps.
type SessionStore interface {
	Save(userID string, session utils.AuthSession) error
	Get(userID string) (*utils.AuthSession, error)
	Delete(userID string) error
}

// ContextStore persists the per-user session context (cached clinic id,
// contact email).
type ContextStore interface {
	Load(ctx context.Context, userID string) (*utils.SessionContext, error)
	Save(ctx context.Context, userID string, sc utils.SessionContext) error
	Clear(ctx context.Context, userID string) error
}

// ResendGate enforces the resend cooldown. Acquire returns zero when the gate
// opens for the key (and closes it for the interval), or the remaining wait.
type ResendGate interface {
	Acquire(ctx context.Context, key string) (time.Duration, error)
}

// TokenRevoker blocks minted session tokens ahead of their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Identity identity.Client
	Clinics  clinicRepo.ClinicRepository
	Sessions SessionStore
	Context  ContextStore
	Resend   ResendGate
	Tokens   TokenRevoker
}
