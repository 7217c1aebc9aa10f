package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfflix/bfflix/client"
)

func TestFetchWatchlist_ParsesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"items":[{"id":9,"titleId":"tt0078748","title":"Alien","mediaType":"movie","status":"watched","rating":5}],"page":2,"totalPages":4}`))
	}))
	defer server.Close()

	api := client.New(server.URL, newMemTokenStore("A1", "R1"), &stubRefresher{})

	result, err := api.FetchWatchlist(context.Background(), 2, 25)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 4, result.TotalPages)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Alien", result.Items[0].Title)
	assert.Equal(t, 5, result.Items[0].Rating)
}

func TestAddToWatchlist_SendsTitleAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tt0078748", body["titleId"])
		assert.Equal(t, "planned", body["status"])
		w.Write([]byte(`{"id":9,"titleId":"tt0078748","title":"Alien","status":"planned"}`))
	}))
	defer server.Close()

	api := client.New(server.URL, newMemTokenStore("A1", "R1"), &stubRefresher{})

	item, err := api.AddToWatchlist(context.Background(), "tt0078748", "planned")
	require.NoError(t, err)
	assert.Equal(t, int64(9), item.ID)
}

func TestRemoveFromWatchlist_UsesEntryPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/watchlist/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	api := client.New(server.URL, newMemTokenStore("A1", "R1"), &stubRefresher{})
	require.NoError(t, api.RemoveFromWatchlist(context.Background(), 9))
}

func TestFetchCircles_ParsesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":3,"name":"Horror Club","memberCount":12}]}`))
	}))
	defer server.Close()

	api := client.New(server.URL, newMemTokenStore("A1", "R1"), &stubRefresher{})

	circles, err := api.FetchCircles(context.Background())
	require.NoError(t, err)
	require.Len(t, circles, 1)
	assert.Equal(t, "Horror Club", circles[0].Name)
	assert.Equal(t, 12, circles[0].MemberCount)
}
