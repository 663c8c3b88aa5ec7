package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_GetCharacter(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/character/1", r.URL.Path)
		fmt.Fprint(w, `{"id":1,"name":"Rick Sanchez","status":"Alive","species":"Human"}`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client())

	character, err := client.GetCharacter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), character.ID)
	assert.Equal(t, "Rick Sanchez", character.Name)
	assert.Equal(t, "Alive", character.Status)

	// Second lookup is served from the cache.
	cached, err := client.GetCharacter(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, character, cached)
	assert.Equal(t, 1, hits)
}

func TestHTTPClient_GetCharacter_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Character not found"}`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client())

	_, err := client.GetCharacter(context.Background(), 827)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestHTTPClient_GetTotalCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/character", r.URL.Path)
		fmt.Fprint(w, `{"info":{"count":826,"pages":42},"results":[]}`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client())

	count, err := client.GetTotalCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 826, count)
}

func TestHTTPClient_GetTotalCount_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client())

	_, err := client.GetTotalCount(context.Background())
	require.Error(t, err)
}
