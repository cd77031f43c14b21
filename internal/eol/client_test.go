package eol

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetchFamily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dotnet.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"cycle": "8.0", "eol": "2026-11-10", "lts": true, "latest": "8.0.12"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	entries, err := client.FetchFamily(context.Background(), "dotnet")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Cycle("8.0"), entries[0].Cycle)
	assert.Equal(t, EdgeDate, entries[0].EOL.Kind)
	assert.True(t, bool(entries[0].LTS))
}

func TestClientFetchFamilyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.FetchFamily(context.Background(), "no-such-family")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")

	_, err = client.FetchFamily(context.Background(), "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "family is required")
}
