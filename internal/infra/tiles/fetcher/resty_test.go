package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

func TestFetchRendersTemplate(t *testing.T) {
	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	f, err := NewWithClient(resty.New(), srv.URL+"/{z}/{x}/{y}.png?access_token={token}", "secret")
	require.NoError(t, err)

	data, contentType, err := f.Fetch(context.Background(), tiles.Coord{Z: 3, X: 2, Y: 1})
	require.NoError(t, err)
	require.Equal(t, "/3/2/1.png", gotPath)
	require.Equal(t, "secret", gotToken)
	require.Equal(t, "image/png", contentType)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestFetchRejectsNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f, err := NewWithClient(resty.New(), srv.URL+"/{z}/{x}/{y}", "")
	require.NoError(t, err)
	_, _, err = f.Fetch(context.Background(), tiles.Coord{Z: 1})
	require.Error(t, err)
}

func TestNewValidatesTemplate(t *testing.T) {
	_, err := New("https://tiles.example/{z}/{x}.png", "")
	require.Error(t, err)

	f, err := New("https://tiles.example/{z}/{x}/{y}.png", "")
	require.NoError(t, err)
	require.Equal(t, "https://tiles.example/4/5/6.png", f.URL(tiles.Coord{Z: 4, X: 5, Y: 6}))
}

func TestFetchWithoutTokenIsUnavailable(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer srv.Close()

	f, err := NewWithClient(resty.New(), srv.URL+"/{z}/{x}/{y}.png?access_token={token}", "")
	require.NoError(t, err)
	require.False(t, f.Enabled())

	_, _, err = f.Fetch(context.Background(), tiles.Coord{Z: 2, X: 1, Y: 1})
	require.ErrorIs(t, err, tiles.ErrSourceUnavailable)
	require.Zero(t, hits)

	withToken, err := NewWithClient(resty.New(), srv.URL+"/{z}/{x}/{y}.png?access_token={token}", "secret")
	require.NoError(t, err)
	require.True(t, withToken.Enabled())
}
