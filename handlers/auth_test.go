package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ayursutra/services/auth"
	"ayursutra/services/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	requestResult *auth.CodeRequest
	requestErr    error
	verifyResult  *auth.VerifyResult
	verifyErr     error
	resendResult  *auth.CodeRequest
	resendErr     error
	profileResult *identity.Identity
	profileErr    error
}

func (f *fakeAuthService) RequestCode(context.Context, string, string, string) (*auth.CodeRequest, error) {
	return f.requestResult, f.requestErr
}

func (f *fakeAuthService) ResendCode(context.Context, string) (*auth.CodeRequest, error) {
	return f.resendResult, f.resendErr
}

func (f *fakeAuthService) Verify(context.Context, auth.VerifyInput) (*auth.VerifyResult, error) {
	return f.verifyResult, f.verifyErr
}

func (f *fakeAuthService) Profile(context.Context, string) (*identity.Identity, error) {
	return f.profileResult, f.profileErr
}

func (f *fakeAuthService) SignOut(context.Context, string, string, string) error {
	return nil
}

func postJSON(handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestSignInHandlerHappyPath(t *testing.T) {
	svc := &fakeAuthService{requestResult: &auth.CodeRequest{
		UserID:      "u1",
		Channel:     auth.ChannelPhone,
		Role:        auth.RoleClinic,
		VerifyRoute: "/verify?userId=u1&type=phone&userType=clinic",
	}}

	w := postJSON(SignInHandler(svc), `{"identifier":"9876543210","channel":"phone","role":"clinic"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, "/verify?userId=u1&type=phone&userType=clinic", body["verifyRoute"])
}

func TestSignInHandlerMapsValidationTo400(t *testing.T) {
	svc := &fakeAuthService{requestErr: &auth.ValidationError{Message: "Please enter a valid 10-digit mobile number"}}

	w := postJSON(SignInHandler(svc), `{"identifier":"12","channel":"phone","role":"user"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "10-digit")
}

func TestSignInHandlerMapsProviderFailureTo502(t *testing.T) {
	svc := &fakeAuthService{requestErr: errors.New("Rate limit for the current endpoint has been exceeded")}

	w := postJSON(SignInHandler(svc), `{"identifier":"9876543210","channel":"phone","role":"user"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit")
}

func TestVerifyHandlerMapsFailureTo401(t *testing.T) {
	svc := &fakeAuthService{verifyErr: errors.New("verification failed: Invalid token passed in the request")}

	w := postJSON(VerifyHandler(svc), `{"userId":"u1","digits":["1","2","3","4","5","6"],"role":"user"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "verification failed")
}

func TestVerifyHandlerReturnsRoute(t *testing.T) {
	svc := &fakeAuthService{verifyResult: &auth.VerifyResult{
		UserID:   "owner-1",
		Token:    "jwt-tok",
		Route:    auth.RouteClinicDashboard,
		ClinicID: "clinic-9",
	}}

	w := postJSON(VerifyHandler(svc), `{"userId":"u1","digits":["1","2","3","4","5","6"],"role":"clinic"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, auth.RouteClinicDashboard, body["route"])
	assert.Equal(t, "clinic-9", body["clinicId"])
}

func TestProfileHandlerReturnsAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAuthService{profileResult: &identity.Identity{ID: "u1", Name: "Asha", Email: "a@b.c"}}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Session-Token", "sess-tok")
	ProfileHandler(svc)(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a@b.c", body["email"])
}

func TestProfileHandlerMapsProviderErrorTo401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAuthService{profileErr: errors.New("User (role: guests) missing scope (account)")}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Session-Token", "stale")
	ProfileHandler(svc)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing scope")
}

func TestResendHandlerMapsBlockedTo429(t *testing.T) {
	svc := &fakeAuthService{resendErr: &auth.ResendBlockedError{RetryAfter: 12 * time.Second}}

	w := postJSON(ResendHandler(svc), `{"userId":"u1"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(12), body["retryAfter"])
}
