//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const jsonContentType = "application/json; charset=utf-8"

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

func AssertJSON(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	AssertHeaders(t, w, map[string]string{"Content-Type": jsonContentType})
}

// AssertSessionCookie checks the flags browsers rely on to keep the admin token away from scripts.
func AssertSessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) {
	t.Helper()

	cookie := ExtractCookie(w, name)
	if !assert.NotNil(t, cookie, "cookie %s not set", name) {
		return
	}
	assert.True(t, cookie.HttpOnly, "cookie %s must be HttpOnly", name)
	assert.Equal(t, "/", cookie.Path)
	assert.NotEmpty(t, cookie.Value)
}
