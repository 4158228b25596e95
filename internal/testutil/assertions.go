package testutil

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertRedirect verifies a 302 response pointing at location
func AssertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, resp.StatusCode, "unexpected status code")
	assert.Equal(t, location, resp.Header.Get("Location"), "unexpected redirect target")
}

// AssertBodyContains verifies the response body includes the message
func AssertBodyContains(t *testing.T, resp *http.Response, message string) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	assert.Contains(t, string(body), message, "response body mismatch")
}
