package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/source"
)

func TestNewFetcher(t *testing.T) {
	client := source.NewClient("", 0)

	f, err := newFetcher(config.EndpointSimple, client)
	require.NoError(t, err)
	assert.IsType(t, source.SimpleEndpoint{}, f)

	f, err = newFetcher(config.EndpointFull, client)
	require.NoError(t, err)
	assert.IsType(t, source.FullEndpoint{}, f)

	_, err = newFetcher("items", client)
	assert.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1}`))
	})
	mux.HandleFunc("GET /2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":2}`))
	})
	upstream := httptest.NewServer(mux)
	defer upstream.Close()

	t.Setenv("RECORD_SOURCE_URL", upstream.URL)
	t.Setenv("CATALOG_ENDPOINT", "")
	t.Setenv("BATCH_CONCURRENCY", "")
	t.Setenv("BATCH_RPS", "")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	rootCmd.SetArgs([]string{"dump", "--from", "1", "--to", "2", "--concurrency", "2"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "{\n  \"id\": 1\n}")
	assert.Contains(t, out.String(), "{\n  \"id\": 2\n}")

	out.Reset()
	rootCmd.SetArgs([]string{"dump", "--from", "2", "--to", "3"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 items failed")
	assert.Contains(t, out.String(), "\"id\": 2")
}
