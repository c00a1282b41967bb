// File: utils/constants.go
package utils

import "time"

// AuthSessionPrefix is the prefix used for Redis auth flow session keys.
const AuthSessionPrefix = "authSession:"

// AuthSessionTTL is the time-to-live for auth flow sessions.
const AuthSessionTTL = 10 * time.Minute

// SessionContextPrefix is the prefix used for Redis session context keys.
const SessionContextPrefix = "sessionCtx:"

// SessionContextTTL is the time-to-live for session context entries.
const SessionContextTTL = 30 * 24 * time.Hour

// ResendGatePrefix is the prefix used for Redis resend gate keys.
const ResendGatePrefix = "resend:"

// ResendInterval is how long the resend affordance stays disabled after a code request.
const ResendInterval = 30 * time.Second

// SessionTokenTTL is the lifetime of a minted session token.
const SessionTokenTTL = 72 * time.Hour

// RevokedTokenPrefix is the prefix used for Redis revoked-token keys.
const RevokedTokenPrefix = "revokedToken:"
