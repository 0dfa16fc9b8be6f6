package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/dexview/internal/models"
)

func newRecordSource(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /simple", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","number":1,"name":"bulbasaur","sprites":"url1"}]`))
	})
	mux.HandleFunc("GET /pokemon", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"bulbasaur","height":7,"weight":69,
			"sprites":{"front_default":"a","other":{"x":"b"},"back_default":null},
			"types":[{"type":{"name":"grass"}},{"type":{"name":"poison"}}]}]`))
	})
	mux.HandleFunc("GET /1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"name":"bulbasaur"}`))
	})
	mux.HandleFunc("GET /2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	mux.HandleFunc("GET /3", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("", 0).BaseURL())
}

func TestSimpleEndpoint_Fetch(t *testing.T) {
	srv := newRecordSource(t)
	client := NewClient(srv.URL+"/", time.Second)

	records, err := SimpleEndpoint{Client: client}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.KindSimple, records[0].Kind)
	assert.Equal(t, "bulbasaur", records[0].Name)
	assert.Equal(t, "url1", records[0].Simple.Image)
}

func TestFullEndpoint_Fetch(t *testing.T) {
	srv := newRecordSource(t)
	client := NewClient(srv.URL, time.Second)

	records, err := FullEndpoint{Client: client}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.KindFull, records[0].Kind)
	assert.Equal(t, []string{"grass", "poison"}, records[0].Full.Types)
}

func TestClient_Get_StatusError(t *testing.T) {
	srv := newRecordSource(t)
	client := NewClient(srv.URL, time.Second)

	_, err := client.Get(context.Background(), "3")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)

	_, err = client.Get(context.Background(), "missing")
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestClient_Get_TransportError(t *testing.T) {
	srv := newRecordSource(t)
	client := NewClient(srv.URL, time.Second)
	srv.Close()

	_, err := SimpleEndpoint{Client: client}.Fetch(context.Background())
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestClient_FetchRaw(t *testing.T) {
	srv := newRecordSource(t)
	client := NewClient(srv.URL, time.Second)

	body, err := client.FetchRaw(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": 1,\n  \"name\": \"bulbasaur\"\n}", string(body))

	_, err = client.FetchRaw(context.Background(), 2)
	assert.ErrorContains(t, err, "malformed json")
}
