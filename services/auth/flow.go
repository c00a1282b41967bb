package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ayursutra/services/identity"
	"ayursutra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phone identifiers are normalized with a fixed country prefix before submission.
const countryPrefix = "+91"

var tenDigits = regexp.MustCompile(`^[0-9]{10}$`)

// normalizePhone validates a raw 10-digit number and prefixes the country code.
func normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !tenDigits.MatchString(raw) {
		return "", &ValidationError{Message: "Please enter a valid 10-digit mobile number"}
	}
	return countryPrefix + raw, nil
}

func (s *DefaultAuthService) RequestCode(ctx context.Context, identifier, channel, role string) (*CodeRequest, error) {
	logger := utils.GetLogger()

	var normalized string
	switch channel {
	case ChannelPhone:
		var err error
		if normalized, err = normalizePhone(identifier); err != nil {
			return nil, err
		}
	case ChannelEmail:
		normalized = strings.TrimSpace(identifier)
		if normalized == "" {
			return nil, &ValidationError{Message: "Email is required"}
		}
	default:
		return nil, &ValidationError{Message: "Unknown sign-in channel"}
	}

	token, err := s.issueToken(ctx, channel, normalized)
	if err != nil {
		// Provider errors are surfaced verbatim; the flow stays unauthenticated.
		return nil, err
	}

	session := utils.AuthSession{
		UserID:          token.UserID,
		Identifier:      normalized,
		Channel:         channel,
		Role:            role,
		SecretRequestID: token.SecretRequestID,
		Status:          utils.AuthStatusCodeRequested,
		CreatedAt:       time.Now(),
	}
	// The flow record is an audit trail, not a dependency of verify: a failed
	// save must not block sign-in.
	if err := s.Sessions.Save(token.UserID, session); err != nil {
		logger.Warn("failed to record sign-in flow state", zap.Error(err))
	}
	if _, err := s.Resend.Acquire(ctx, token.UserID); err != nil {
		logger.Warn("failed to arm resend gate", zap.Error(err))
	}

	return &CodeRequest{
		UserID:          token.UserID,
		SecretRequestID: token.SecretRequestID,
		Channel:         channel,
		Role:            role,
		VerifyRoute:     verifyRoute(token.UserID, channel, role),
	}, nil
}

func (s *DefaultAuthService) ResendCode(ctx context.Context, userID string) (*CodeRequest, error) {
	logger := utils.GetLogger()

	session, err := s.Sessions.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sign-in state: %w", err)
	}
	if session == nil {
		return nil, &ValidationError{Message: "Sign-in expired. Please restart the sign-in process."}
	}

	wait, err := s.Resend.Acquire(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check resend window: %w", err)
	}
	if wait > 0 {
		return nil, &ResendBlockedError{RetryAfter: wait}
	}

	token, err := s.issueToken(ctx, session.Channel, session.Identifier)
	if err != nil {
		return nil, err
	}

	// The provider binds each issued code to a fresh user id; move the flow
	// record to the new key so verify can still find it.
	if err := s.Sessions.Delete(userID); err != nil {
		logger.Warn("failed to drop stale sign-in flow state", zap.Error(err))
	}
	session.UserID = token.UserID
	session.SecretRequestID = token.SecretRequestID
	session.Status = utils.AuthStatusCodeRequested
	if err := s.Sessions.Save(token.UserID, *session); err != nil {
		logger.Warn("failed to record sign-in flow state", zap.Error(err))
	}
	if _, err := s.Resend.Acquire(ctx, token.UserID); err != nil {
		logger.Warn("failed to arm resend gate", zap.Error(err))
	}

	return &CodeRequest{
		UserID:          token.UserID,
		SecretRequestID: token.SecretRequestID,
		Channel:         session.Channel,
		Role:            session.Role,
		VerifyRoute:     verifyRoute(token.UserID, session.Channel, session.Role),
	}, nil
}

func (s *DefaultAuthService) Verify(ctx context.Context, in VerifyInput) (*VerifyResult, error) {
	logger := utils.GetLogger()

	code, ok := joinDigits(in.Digits)
	if !ok {
		return nil, &ValidationError{Message: "Please enter a valid 6-digit code"}
	}

	// Best-effort close of any pre-existing session. A stale session must
	// never block a new sign-in attempt.
	if in.PriorSessionToken != "" {
		if err := s.Identity.DeleteSession(ctx, in.PriorSessionToken); err != nil {
			logger.Warn("no active session to delete", zap.Error(err))
		}
	}

	if in.UserID == "" || code == "" {
		return nil, &ValidationError{Message: "Missing userId or OTP. Please restart the sign-in process."}
	}

	if flow, err := s.Sessions.Get(in.UserID); err == nil && flow != nil {
		flow.Status = utils.AuthStatusCodeEntered
		if err := s.Sessions.Save(in.UserID, *flow); err != nil {
			logger.Warn("failed to update sign-in flow state", zap.Error(err))
		}
	}

	session, err := s.Identity.ExchangeToken(ctx, in.UserID, code)
	if err != nil {
		s.markFailed(in.UserID)
		return nil, fmt.Errorf("verification failed: %w", err)
	}
	if session == nil || session.UserID == "" {
		s.markFailed(in.UserID)
		return nil, errors.New("session creation failed. Please try again.")
	}

	// The flow record may be gone (expired, or verify reached from a cold
	// start); the exchange alone is authoritative.
	identifier := ""
	if flow, err := s.Sessions.Get(in.UserID); err == nil && flow != nil {
		identifier = flow.Identifier
		flow.Status = utils.AuthStatusSessionEstablished
		if err := s.Sessions.Save(in.UserID, *flow); err != nil {
			logger.Warn("failed to update sign-in flow state", zap.Error(err))
		}
	}

	token, err := utils.GenerateToken(session.UserID, identifier, utils.SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to establish session: %w", err)
	}

	result := &VerifyResult{
		UserID:       session.UserID,
		Token:        token,
		SessionToken: session.Token,
		Route:        RouteUserSignup,
	}

	// Role routing is evaluated only after the session exists. A verified
	// identity and a completed clinic registration are independent facts;
	// the distinguishing signal is the owner lookup, and any ambiguity there
	// resolves toward "let them (re)register".
	if in.Role == RoleClinic {
		clinic, err := s.Clinics.GetByOwner(session.UserID)
		switch {
		case err != nil:
			logger.Warn("clinic lookup failed; routing to signup", zap.Error(err))
			result.Route = RouteClinicSignup
		case clinic == nil:
			result.Route = RouteClinicSignup
		default:
			result.ClinicID = clinic.ID
			result.Route = RouteClinicDashboard
			s.cacheClinicID(ctx, session.UserID, clinic.ID)
		}
	}

	// The flow record stays behind as an audit trail until its TTL; Routed is
	// its terminal status.
	if flow, err := s.Sessions.Get(in.UserID); err == nil && flow != nil {
		flow.Status = utils.AuthStatusRouted
		if err := s.Sessions.Save(in.UserID, *flow); err != nil {
			logger.Warn("failed to update sign-in flow state", zap.Error(err))
		}
	}

	return result, nil
}

func (s *DefaultAuthService) Profile(ctx context.Context, sessionToken string) (*identity.Identity, error) {
	if sessionToken == "" {
		return nil, &ValidationError{Message: "Session token is required"}
	}
	account, err := s.Identity.CurrentIdentity(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *DefaultAuthService) SignOut(ctx context.Context, userID, bearerToken, sessionToken string) error {
	logger := utils.GetLogger()

	if sessionToken != "" {
		if err := s.Identity.DeleteSession(ctx, sessionToken); err != nil {
			logger.Warn("failed to close provider session on sign-out", zap.Error(err))
		}
	}
	if bearerToken != "" && s.Tokens != nil {
		if err := s.Tokens.Revoke(ctx, bearerToken); err != nil {
			logger.Warn("failed to revoke session token", zap.Error(err))
		}
	}
	if err := s.Context.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear session context: %w", err)
	}
	return nil
}

func (s *DefaultAuthService) issueToken(ctx context.Context, channel, identifier string) (*identityToken, error) {
	switch channel {
	case ChannelPhone:
		token, err := s.Identity.IssuePhoneToken(ctx, uuid.NewString(), identifier)
		if err != nil {
			return nil, err
		}
		return &identityToken{UserID: token.UserID, SecretRequestID: token.SecretRequestID}, nil
	case ChannelEmail:
		token, err := s.Identity.IssueEmailToken(ctx, uuid.NewString(), identifier)
		if err != nil {
			return nil, err
		}
		return &identityToken{UserID: token.UserID, SecretRequestID: token.SecretRequestID}, nil
	default:
		return nil, &ValidationError{Message: "Unknown sign-in channel"}
	}
}

type identityToken struct {
	UserID          string
	SecretRequestID string
}

func (s *DefaultAuthService) markFailed(userID string) {
	flow, err := s.Sessions.Get(userID)
	if err != nil || flow == nil {
		return
	}
	flow.Status = utils.AuthStatusFailed
	if err := s.Sessions.Save(userID, *flow); err != nil {
		utils.GetLogger().Warn("failed to mark sign-in flow failed", zap.Error(err))
	}
}

func (s *DefaultAuthService) cacheClinicID(ctx context.Context, userID, clinicID string) {
	logger := utils.GetLogger()
	sc, err := s.Context.Load(ctx, userID)
	if err != nil {
		logger.Warn("failed to load session context", zap.Error(err))
		sc = &utils.SessionContext{}
	}
	sc.ClinicID = clinicID
	if err := s.Context.Save(ctx, userID, *sc); err != nil {
		logger.Warn("failed to cache clinic id", zap.Error(err))
	}
}

// joinDigits validates exactly six single numeric digits and joins them.
func joinDigits(digits []string) (string, bool) {
	if len(digits) != 6 {
		return "", false
	}
	var b strings.Builder
	for _, d := range digits {
		if len(d) != 1 || d[0] < '0' || d[0] > '9' {
			return "", false
		}
		b.WriteString(d)
	}
	return b.String(), true
}

func verifyRoute(userID, channel, role string) string {
	return fmt.Sprintf("/verify?userId=%s&type=%s&userType=%s", userID, channel, role)
}
