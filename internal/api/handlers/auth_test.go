package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/dstone-dev/taskboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegistrationAndLogin(t *testing.T) {
	ts := testutil.NewTestServer(t)
	agent := ts.Agent(t)

	t.Run("renders register page", func(t *testing.T) {
		resp, err := agent.Get(ts.URL("/register"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Register")
	})

	t.Run("registers a new user", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/register"), url.Values{
			"username": {"alice"},
			"email":    {"a@x.com"},
			"password": {"secret1"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")
	})

	t.Run("rejects an already existing user with a generic message", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/register"), url.Values{
			"username": {"alice"},
			"email":    {"a@x.com"},
			"password": {"secret1"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Registration failed")
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/register"), url.Values{
			"username": {"bob"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("renders login page", func(t *testing.T) {
		resp, err := agent.Get(ts.URL("/login"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Login")
	})

	t.Run("logs in with valid credentials", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/login"), url.Values{
			"email":    {"a@x.com"},
			"password": {"secret1"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/home")

		resp, err = agent.Get(ts.URL("/home"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "alice")
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/login"), url.Values{
			"email":    {"invalid@example.com"},
			"password": {"secret1"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "User not found")
	})

	t.Run("rejects an incorrect password", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/login"), url.Values{
			"email":    {"a@x.com"},
			"password": {"wrongpassword"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Incorrect password")
	})
}

func TestLogoutAndAuthGate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("redirects anonymous clients to login", func(t *testing.T) {
		agent := ts.Agent(t)

		for _, path := range []string{"/home", "/settings"} {
			resp, err := agent.Get(ts.URL(path))
			require.NoError(t, err)
			resp.Body.Close()

			testutil.AssertRedirect(t, resp, "/login")
		}
	})

	t.Run("logs out and locks the old session", func(t *testing.T) {
		_, agent := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		resp, err := agent.Post(ts.URL("/logout"), "application/x-www-form-urlencoded", nil)
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")

		resp, err = agent.Get(ts.URL("/home"))
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")
	})

	t.Run("logout without a session still redirects", func(t *testing.T) {
		agent := ts.Agent(t)

		resp, err := agent.Post(ts.URL("/logout"), "application/x-www-form-urlencoded", nil)
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")
	})

	t.Run("evicts sessions of deleted accounts", func(t *testing.T) {
		user, agent := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		require.NoError(t, ts.DB.DB.Delete(user).Error)

		resp, err := agent.Get(ts.URL("/home"))
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")
	})
}

func TestSettings(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("renders the settings page for authenticated users", func(t *testing.T) {
		_, agent := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		resp, err := agent.Get(ts.URL("/settings"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Settings")
	})

	t.Run("rejects a password change when new passwords differ", func(t *testing.T) {
		_, agent := testutil.NewUserBuilder().WithPassword("current123").BuildAndLogin(t, ts)

		resp, err := agent.PostForm(ts.URL("/settings/password"), url.Values{
			"currentPassword": {"current123"},
			"newPassword":     {"newpassword123"},
			"confirmPassword": {"differentpassword123"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("rejects a password change with a wrong current password", func(t *testing.T) {
		_, agent := testutil.NewUserBuilder().WithPassword("current123").BuildAndLogin(t, ts)

		resp, err := agent.PostForm(ts.URL("/settings/password"), url.Values{
			"currentPassword": {"wrongpassword"},
			"newPassword":     {"newpassword123"},
			"confirmPassword": {"newpassword123"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("changing the password forces re-login", func(t *testing.T) {
		_, agent := testutil.NewUserBuilder().WithPassword("current123").BuildAndLogin(t, ts)

		resp, err := agent.PostForm(ts.URL("/settings/password"), url.Values{
			"currentPassword": {"current123"},
			"newPassword":     {"newpassword123"},
			"confirmPassword": {"newpassword123"},
		})
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")

		resp, err = agent.Get(ts.URL("/home"))
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")
	})

	t.Run("updates the username and redirects home", func(t *testing.T) {
		_, agent := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		resp, err := agent.PostForm(ts.URL("/settings/username"), url.Values{
			"username": {"updatedUsername"},
		})
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/home")

		resp, err = agent.Get(ts.URL("/home"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "updatedUsername")
	})

	t.Run("rejects a taken username and keeps the session", func(t *testing.T) {
		testutil.NewUserBuilder().WithUsername("claimed").Build(t, ts.DB.DB)
		_, agent := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		resp, err := agent.PostForm(ts.URL("/settings/username"), url.Values{
			"username": {"claimed"},
		})
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

		resp, err = agent.Get(ts.URL("/home"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})
}
