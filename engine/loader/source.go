package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates the named asset does not exist at the source.
var ErrNotFound = errors.New("asset not found")

// ErrParse indicates the asset exists but its contents are malformed.
var ErrParse = errors.New("asset parse error")

// Source abstracts where assets are read from so the same loading pipeline
// works against a local directory or a remote asset server. The source kind
// is selected once at startup from configuration.
type Source interface {
	// LoadBinary reads the named asset as raw bytes.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - name: the asset name, relative to the source root
	//
	// Returns:
	//   - []byte: the asset contents
	//   - error: ErrNotFound if the asset does not exist
	LoadBinary(ctx context.Context, name string) ([]byte, error)

	// LoadString reads the named asset as text.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - name: the asset name, relative to the source root
	//
	// Returns:
	//   - string: the asset contents
	//   - error: ErrNotFound if the asset does not exist
	LoadString(ctx context.Context, name string) (string, error)
}

type fileSource struct {
	root string
}

var _ Source = &fileSource{}

// NewFileSource creates a Source reading assets from a local directory.
//
// Parameters:
//   - root: the asset directory
//
// Returns:
//   - Source: the file-backed source
func NewFileSource(root string) Source {
	return &fileSource{root: root}
}

func (s *fileSource) LoadBinary(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

func (s *fileSource) LoadString(ctx context.Context, name string) (string, error) {
	data, err := s.LoadBinary(ctx, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type httpSource struct {
	baseURL string
	client  *http.Client
}

var _ Source = &httpSource{}

// NewHTTPSource creates a Source fetching assets over HTTP.
//
// Parameters:
//   - baseURL: the asset server base URL; asset names are appended as path segments
//
// Returns:
//   - Source: the HTTP-backed source
func NewHTTPSource(baseURL string) Source {
	return &httpSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (s *httpSource) LoadBinary(ctx context.Context, name string) ([]byte, error) {
	url := s.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", name, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch asset %s: status %d", name, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

func (s *httpSource) LoadString(ctx context.Context, name string) (string, error) {
	data, err := s.LoadBinary(ctx, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
