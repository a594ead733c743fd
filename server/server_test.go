package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/LandDroid/Oppacu-Search-by-Customer/auth/validatorfake"
	"github.com/LandDroid/Oppacu-Search-by-Customer/customers"
	"github.com/LandDroid/Oppacu-Search-by-Customer/customers/gatewayfake"
	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/config"
	"github.com/LandDroid/Oppacu-Search-by-Customer/server"
	"github.com/LandDroid/Oppacu-Search-by-Customer/sessions"
)

const (
	testUsername = "reports_reader"
	testPassword = "password123"
)

// testFixture holds all test dependencies
type testFixture struct {
	server    *httptest.Server
	store     *sessions.Store
	validator *validatorfake.FakeValidator
	gateway   *gatewayfake.FakeGateway
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	validator := validatorfake.NewFakeValidator()
	validator.Allow(testUsername, testPassword)

	gateway := gatewayfake.NewFakeGateway(
		customers.Customer{AccountNo: "C003", Name: "Charlie", Surname: "Smith", Email: "charlie@example.com"},
		customers.Customer{AccountNo: "C001", Name: "Alice", Surname: "Smithers", Email: "alice@example.com"},
		customers.Customer{AccountNo: "C002", Name: "Bob", Surname: "Jones", Email: "bob@example.com"},
	)

	store := sessions.NewStore(30 * time.Minute)

	srv, err := server.New(config.New(), store, validator, gateway)
	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return &testFixture{
		server:    ts,
		store:     store,
		validator: validator,
		gateway:   gateway,
	}
}

func (f *testFixture) login(t *testing.T, username, password string) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	resp, err := http.Post(f.server.URL+server.RouteLogin, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp, decodeObject(t, resp)
}

func (f *testFixture) loginToken(t *testing.T) string {
	t.Helper()
	resp, body := f.login(t, testUsername, testPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := body["sessionId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func (f *testFixture) request(t *testing.T, method, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeObject(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeRows(t *testing.T, resp *http.Response) []customers.Customer {
	t.Helper()
	defer resp.Body.Close()
	var rows []customers.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	return rows
}

func TestLoginIssuesValidSession(t *testing.T) {
	f := setupTestFixture(t)

	token := f.loginToken(t)

	session, err := f.store.Validate(token)
	require.NoError(t, err)
	require.Equal(t, testUsername, session.Username)
	require.Equal(t, testPassword, session.Password)
}

func TestLoginMissingFields(t *testing.T) {
	f := setupTestFixture(t)

	for _, creds := range [][2]string{{"", ""}, {testUsername, ""}, {"", testPassword}} {
		resp, body := f.login(t, creds[0], creds[1])
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, false, body["success"])
		require.Equal(t, "Username and password required", body["message"])
	}
	// Field validation happens before any credential check.
	require.Zero(t, f.validator.Calls())
}

func TestLoginInvalidCredentialsCreatesNoSession(t *testing.T) {
	f := setupTestFixture(t)

	resp, body := f.login(t, testUsername, "wrongpass")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid credentials", body["message"])
	require.Zero(t, f.store.Len())
}

func TestQueryWithoutTokenUnauthorized(t *testing.T) {
	f := setupTestFixture(t)

	for _, token := range []string{"", "unknown-token"} {
		resp := f.request(t, http.MethodGet, server.RouteCustomers, token)
		body := decodeObject(t, resp)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Unauthorized", body["error"])
	}
}

func TestCustomersListSortedAndCapped(t *testing.T) {
	f := setupTestFixture(t)
	token := f.loginToken(t)

	resp := f.request(t, http.MethodGet, server.RouteCustomers, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decodeRows(t, resp)

	require.LessOrEqual(t, len(rows), customers.DefaultListLimit)
	for i := 1; i < len(rows); i++ {
		require.LessOrEqual(t, rows[i-1].Name, rows[i].Name)
	}
}

func TestQueryUsesSessionCredentials(t *testing.T) {
	f := setupTestFixture(t)
	token := f.loginToken(t)

	resp := f.request(t, http.MethodGet, server.RouteCustomers, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	creds := f.gateway.LastCredentials()
	require.Equal(t, testUsername, creds.Username)
	require.Equal(t, testPassword, creds.Password)
}

func TestSearchBySurname(t *testing.T) {
	f := setupTestFixture(t)
	token := f.loginToken(t)

	resp := f.request(t, http.MethodGet, server.RouteCustomerSearch+"?column=surname&term=Smith", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decodeRows(t, resp)

	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Contains(t, row.Surname, "Smith")
	}
}

func TestSearchInvalidColumn(t *testing.T) {
	f := setupTestFixture(t)
	token := f.loginToken(t)

	resp := f.request(t, http.MethodGet, server.RouteCustomerSearch+"?column=password&term=x", token)
	body := decodeObject(t, resp)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid search column", body["error"])
}

func TestQueryFailureReturnsGenericError(t *testing.T) {
	f := setupTestFixture(t)
	token := f.loginToken(t)
	f.gateway.FailWith(errors.New("Login failed for user 'reports_reader'"))

	resp := f.request(t, http.MethodGet, server.RouteCustomers, token)
	body := decodeObject(t, resp)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	// Driver detail is logged, never surfaced.
	require.Equal(t, "Failed to load customer data", body["error"])

	resp = f.request(t, http.MethodGet, server.RouteCustomerSearch+"?column=name&term=a", token)
	body = decodeObject(t, resp)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "Search failed", body["error"])
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	token := f.loginToken(t)

	for i := 0; i < 2; i++ {
		resp := f.request(t, http.MethodPost, server.RouteLogout, token)
		body := decodeObject(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, true, body["success"])
	}

	resp := f.request(t, http.MethodPost, server.RouteLogout, "never-a-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginQuerySearchLogoutFlow(t *testing.T) {
	f := setupTestFixture(t)

	token := f.loginToken(t)

	resp := f.request(t, http.MethodGet, server.RouteCustomers, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decodeRows(t, resp)
	require.NotEmpty(t, rows)

	resp = f.request(t, http.MethodGet, server.RouteCustomerSearch+"?column=surname&term=smith", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	matched := decodeRows(t, resp)
	require.NotEmpty(t, matched)

	resp = f.request(t, http.MethodPost, server.RouteLogout, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.request(t, http.MethodGet, server.RouteCustomers, token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestTwoLoginsYieldIndependentSessions(t *testing.T) {
	f := setupTestFixture(t)

	first := f.loginToken(t)
	second := f.loginToken(t)
	require.NotEqual(t, first, second)

	resp := f.request(t, http.MethodPost, server.RouteLogout, first)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Revoking one does not touch the other.
	resp = f.request(t, http.MethodGet, server.RouteCustomers, second)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCorsPreflight(t *testing.T) {
	f := setupTestFixture(t)

	req, err := http.NewRequest(http.MethodOptions, f.server.URL+server.RouteCustomers, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://ui.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}
