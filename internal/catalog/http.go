package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPSource reads the catalog from a static file server.
type HTTPSource struct {
	baseURL    *url.URL
	indexPath  string
	assetBase  string
	httpClient *http.Client
}

// NewHTTPSource builds a source rooted at baseURL. Empty indexPath and
// assetBase fall back to the defaults. No client timeout is set: a stalled
// request only blocks the caller that issued it and is bounded by its context.
func NewHTTPSource(baseURL, indexPath, assetBase string) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog: base url %q must be http or https", baseURL)
	}
	if indexPath == "" {
		indexPath = DefaultIndexPath
	}
	if assetBase == "" {
		assetBase = DefaultAssetBase
	}
	return &HTTPSource{
		baseURL:    u,
		indexPath:  strings.Trim(indexPath, "/"),
		assetBase:  strings.Trim(assetBase, "/"),
		httpClient: &http.Client{},
	}, nil
}

// WithClient replaces the HTTP client, mainly for tests.
func (s *HTTPSource) WithClient(c *http.Client) *HTTPSource {
	s.httpClient = c
	return s
}

func (s *HTTPSource) Index(ctx context.Context) ([]PackSummary, error) {
	resp, err := s.get(ctx, s.resolve(strings.Split(s.indexPath, "/")...))
	if err != nil {
		return nil, &IndexLoadError{Err: err}
	}
	defer resp.Body.Close()

	packs, err := decodeIndex(resp.Body)
	if err != nil {
		return nil, &IndexLoadError{Err: err}
	}
	return packs, nil
}

func (s *HTTPSource) Manifest(ctx context.Context, pack string) (*Manifest, error) {
	if err := checkSegments(pack); err != nil {
		return nil, &ManifestLoadError{Pack: pack, Err: err}
	}
	resp, err := s.get(ctx, s.assetURL(pack, ManifestName))
	if err != nil {
		return nil, &ManifestLoadError{Pack: pack, Err: err}
	}
	defer resp.Body.Close()

	m, err := decodeManifest(resp.Body, pack)
	if err != nil {
		return nil, &ManifestLoadError{Pack: pack, Err: err}
	}
	return m, nil
}

func (s *HTTPSource) Asset(ctx context.Context, pack, file string) (*Asset, error) {
	if err := checkSegments(pack, file); err != nil {
		return nil, err
	}
	u := s.assetURL(pack, file)
	resp, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return &Asset{
		URL:         u,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

func (s *HTTPSource) Locate(pack, file string) string {
	return s.assetURL(pack, file)
}

func (s *HTTPSource) assetURL(pack, file string) string {
	parts := append(strings.Split(s.assetBase, "/"), pack, file)
	return s.resolve(parts...)
}

func (s *HTTPSource) resolve(parts ...string) string {
	return s.baseURL.JoinPath(parts...).String()
}

// get issues a GET and returns the response only for 2xx statuses.
func (s *HTTPSource) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &StatusError{URL: u, Code: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), 200)}
	}
	return resp, nil
}
