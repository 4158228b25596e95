package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/dstone-dev/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	agent := ts.Agent(t)

	user, _ := testutil.NewUserBuilder().
		WithUsername("forgetful").
		WithEmail("forgetful@example.com").
		WithPassword("lostpassword").
		Build(t, ts.DB.DB)

	t.Run("renders the forgot-password form", func(t *testing.T) {
		resp, err := agent.Get(ts.URL("/forgot-password"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Forgot Password")
	})

	t.Run("answers unknown usernames with a message", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/forgot-password"), url.Values{
			"username": {"whoisthis"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "User not found")
	})

	var token string

	t.Run("issues a token for a known username", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/forgot-password"), url.Values{
			"username": {"forgetful"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var issued struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expiresAt"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&issued))
		require.NotEmpty(t, issued.Token)
		assert.True(t, issued.ExpiresAt.After(time.Now()))

		token = issued.Token
	})

	t.Run("verifies the issued token", func(t *testing.T) {
		resp, err := agent.Get(ts.URL("/verify-token?token=" + token))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, token)
	})

	t.Run("rejects a bogus token", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/verify-token"), url.Values{
			"token": {"bogus"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Invalid or expired token")
	})

	t.Run("rejects mismatched new passwords", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/reset-password/"+token), url.Values{
			"newPassword":     {"freshstart123"},
			"confirmPassword": {"somethingelse"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("completes the reset and redirects to login", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/reset-password/"+token), url.Values{
			"newPassword":     {"freshstart123"},
			"confirmPassword": {"freshstart123"},
		})
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/login")

		resp, err = agent.PostForm(ts.URL("/login"), url.Values{
			"email":    {user.Email},
			"password": {"freshstart123"},
		})
		require.NoError(t, err)
		resp.Body.Close()

		testutil.AssertRedirect(t, resp, "/home")
	})

	t.Run("refuses the consumed token", func(t *testing.T) {
		resp, err := agent.PostForm(ts.URL("/reset-password/"+token), url.Values{
			"newPassword":     {"anotherone456"},
			"confirmPassword": {"anotherone456"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertBodyContains(t, resp, "Invalid or expired token")
	})
}

func TestExpiredResetTokenOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)
	agent := ts.Agent(t)

	user, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	require.NoError(t, ts.Repos.User.SetResetToken(
		context.Background(), user.ID, "expiredtoken", time.Now().Add(-time.Second)))

	resp, err := agent.Get(ts.URL("/verify-token?token=expiredtoken"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertBodyContains(t, resp, "Invalid or expired token")
}
