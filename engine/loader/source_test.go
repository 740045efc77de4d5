package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceReadsAssets(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "cube.obj"), []byte("v 0 0 0"), 0o644))

	src := NewFileSource(root)

	text, err := src.LoadString(context.Background(), "cube.obj")
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0", text)

	data, err := src.LoadBinary(context.Background(), "cube.obj")
	require.NoError(t, err)
	assert.Equal(t, []byte("v 0 0 0"), data)
}

func TestFileSourceMissingAsset(t *testing.T) {
	src := NewFileSource(t.TempDir())

	_, err := src.LoadBinary(context.Background(), "nope.obj")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPSourceReadsAssets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/cube.obj":
			w.Write([]byte("v 0 0 0"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL + "/assets/")

	text, err := src.LoadString(context.Background(), "cube.obj")
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0", text)

	_, err = src.LoadBinary(context.Background(), "missing.obj")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPSourceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL)

	_, err := src.LoadBinary(context.Background(), "cube.obj")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
