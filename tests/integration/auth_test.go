//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mergington/activities-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	c := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := c.POST("/auth/register", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reg struct {
		Message string `json:"message"`
		Email   string `json:"email"`
		Role    string `json:"role"`
	}
	testutil.DecodeJSON(t, resp, &reg)
	assert.Equal(t, "Registration successful", reg.Message)
	assert.Equal(t, email, reg.Email)
	assert.Equal(t, "member", reg.Role)

	resp, err = c.POST("/auth/login", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, resp, &login)
	assert.Equal(t, "Login successful", login.Message)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, email, login.User.Email)
	assert.Equal(t, "member", login.User.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	c := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := c.POST("/auth/register", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.NoError(t, err)
	closeBody(resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = c.POST("/auth/register", map[string]string{
		"email":    email,
		"password": "other456",
	})
	require.NoError(t, err)
	defer closeBody(resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_InvalidPayload(t *testing.T) {
	c := newTestClient(t)

	cases := []struct {
		name string
		body map[string]string
		want int
	}{
		{"missing email", map[string]string{"password": "secret123"}, http.StatusBadRequest},
		{"malformed email", map[string]string{"email": "not-an-email", "password": "secret123"}, http.StatusBadRequest},
		{"missing password", map[string]string{"email": testutil.RandomEmail()}, http.StatusBadRequest},
		{"unknown role", map[string]string{"email": testutil.RandomEmail(), "password": "secret123", "role": "principal"}, http.StatusBadRequest},
		{"privileged role", map[string]string{"email": testutil.RandomEmail(), "password": "secret123", "role": "admin"}, http.StatusForbidden},
		{"supervisor role", map[string]string{"email": testutil.RandomEmail(), "password": "secret123", "role": "supervisor"}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := c.POST("/auth/register", tc.body)
			require.NoError(t, err)
			defer closeBody(resp)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	c := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := c.POST("/auth/register", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.NoError(t, err)
	closeBody(resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	c.LoginAs(t, strings.ToUpper(email), "secret123")

	resp, err = c.GET("/auth/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	testutil.DecodeJSON(t, resp, &me)
	assert.Equal(t, email, me.Email, "stored email is the lowercase form")
}

func TestLogin_BadCredentials(t *testing.T) {
	c := newTestClient(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"unknown user", map[string]string{"email": testutil.RandomEmail(), "password": "whatever1"}},
		{"wrong password", map[string]string{"email": "member@mergington.edu", "password": "wrongpass"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := c.POST("/auth/login", tc.body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			// Both failures return the same message so callers cannot
			// probe which accounts exist.
			body := testutil.ReadBody(t, resp)
			assert.Contains(t, body, "invalid email or password")
		})
	}
}

func TestMe_RequiresToken(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.GET("/auth/me")
	require.NoError(t, err)
	defer closeBody(resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_RevokesSession(t *testing.T) {
	c := newTestClient(t)
	c.LoginAsMember(t)

	resp, err := c.GET("/auth/me")
	require.NoError(t, err)
	closeBody(resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = c.POST("/auth/logout", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, resp, &out)
	assert.Equal(t, "Logged out member@mergington.edu", out.Message)

	// The token is dead now.
	resp, err = c.GET("/auth/me")
	require.NoError(t, err)
	defer closeBody(resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_RejectsMalformedHeader(t *testing.T) {
	c := newTestClient(t)
	c.LoginAsMember(t)

	req, err := http.NewRequest("GET", server.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "bearer "+c.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer closeBody(resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"scheme prefix must match exactly")
}
