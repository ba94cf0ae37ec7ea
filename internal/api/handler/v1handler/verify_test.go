package v1handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"verifier/pkg/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestVerify_ValidOutcome(t *testing.T) {
	v, h := newTestHandler(t)

	v.EXPECT().Verify(gomock.Any(), "user@example.com", false).
		Return(domain.Valid("mailbox accepted"))

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", strings.NewReader(`{"email":"user@example.com"}`))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.JSONEq(t,
		`{"email":"user@example.com","status":"valid","reason":"mailbox accepted"}`,
		rec.Body.String())
}

func TestVerify_SkipProbeFlag(t *testing.T) {
	v, h := newTestHandler(t)

	v.EXPECT().Verify(gomock.Any(), "user@example.com", true).
		Return(domain.Unknown("domain-level deliverability confirmed but mailbox not attempted"))

	req := httptest.NewRequest(http.MethodPost, "/v1/verify",
		strings.NewReader(`{"email":"user@example.com","skip_smtp":true}`))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t,
		`{"email":"user@example.com","status":"unknown","reason":"domain-level deliverability confirmed but mailbox not attempted"}`,
		rec.Body.String())
}

func TestVerify_EmptyEmailStillVerified(t *testing.T) {
	// An empty address is a verification subject, not a malformed request;
	// the pipeline labels it invalid.
	v, h := newTestHandler(t)

	v.EXPECT().Verify(gomock.Any(), "", false).
		Return(domain.Invalid("empty address"))

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", strings.NewReader(`{"email":""}`))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
	require.JSONEq(t, `{"email":"","status":"invalid","reason":"empty address"}`, rec.Body.String())
}

func TestVerify_MissingEmailField(t *testing.T) {
	_, h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", strings.NewReader(`{"skip_smtp":true}`))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Result().StatusCode)
	require.JSONEq(t, `{"error_message":"missing email field"}`, rec.Body.String())
}

func TestVerify_UnknownFieldsIgnored(t *testing.T) {
	v, h := newTestHandler(t)

	v.EXPECT().Verify(gomock.Any(), "user@example.com", false).
		Return(domain.Invalid("mailbox rejected, code 550"))

	req := httptest.NewRequest(http.MethodPost, "/v1/verify",
		strings.NewReader(`{"email":"user@example.com","note":"ignore me"}`))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
}

func TestVerify_EmptyBody(t *testing.T) {
	_, h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", strings.NewReader(""))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Result().StatusCode)
}

func TestHealth(t *testing.T) {
	_, h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
