package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ansh808s/cause-drop/internal/pkg/jwt"
)

func postJSON(t *testing.T, router http.Handler, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func putJSON(t *testing.T, router http.Handler, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func getPath(t *testing.T, router http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func signIn(t *testing.T, router http.Handler, wallet testWallet) string {
	t.Helper()
	resp := getPath(t, router, "/api/v1/auth/challenge?address="+wallet.address, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	message, _ := decodeData(t, resp)["message"].(string)
	require.NotEmpty(t, message)

	resp = postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"address":   wallet.address,
		"signature": wallet.sign(message),
		"message":   message,
	}, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	token, _ := decodeData(t, resp)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignInFlow(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	wallet := newTestWallet(t)
	token := signIn(t, router, wallet)

	resp := postJSON(t, router, "/api/v1/auth/verify", nil, map[string]string{"Authorization": token})
	require.Equal(t, http.StatusOK, resp.Code)
	data := decodeData(t, resp)
	require.Equal(t, true, data["valid"])
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, wallet.address, user["address"])
}

func TestSignInRejectsTamperedSignature(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	wallet := newTestWallet(t)
	resp := getPath(t, router, "/api/v1/auth/challenge?address="+wallet.address, nil)
	message, _ := decodeData(t, resp)["message"].(string)

	resp = postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"address":   wallet.address,
		"signature": wallet.sign(message + "tampered"),
		"message":   message,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSignInRejectsUnknownFields(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	wallet := newTestWallet(t)
	resp := postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"address":   wallet.address,
		"signature": "sig",
		"message":   "msg",
		"extra":     "field",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

// A well-signed token for a user id that has no row must not open
// protected routes.
func TestProtectedRouteRejectsUnknownUser(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	token, err := jwt.GenerateToken("user-without-a-row", "addr", testJWTSecret, time.Hour)
	require.NoError(t, err)

	resp := getPath(t, router, "/api/v1/app/campaign", map[string]string{"Authorization": token})
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestVerifyRequiresToken(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	resp := postJSON(t, router, "/api/v1/auth/verify", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = postJSON(t, router, "/api/v1/auth/verify", nil, map[string]string{"Authorization": "bogus"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
