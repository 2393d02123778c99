package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v1.2.3", "v1.2.3"},
		{"1.2.3", "v1.2.3"},
		{"  v2.0.0 ", "v2.0.0"},
		{"", "v0.0.0"},
		{"(devel)", "v0.0.0"},
		{"garbage", "v0.0.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalVersion(tt.in), "input %q", tt.in)
	}
}

func TestCheck(t *testing.T) {
	t.Run("update available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/abhisek/chemtutor/releases/latest", r.URL.Path)
			_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
		assert.Equal(t, "v2.0.0", result.LatestVersion)
		assert.Equal(t, "https://example.com/v2.0.0", result.ReleaseURL)
	})

	t.Run("already latest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v1.0.0","html_url":""}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
	})

	t.Run("missing tag", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
	})
}
