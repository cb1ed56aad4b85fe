package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	opserrors "github.com/dshills/boxlayout/pkg/errors"
	"github.com/dshills/boxlayout/pkg/layout"
	"github.com/dshills/boxlayout/pkg/storage"
)

// RemoteSourceConfig configures a RemoteDataSource.
type RemoteSourceConfig struct {
	// BaseURL is the box-document endpoint to GET.
	BaseURL string
	// CredentialKey names the bearer token under which
	// storage.CredentialStore looks up the auth value for this source.
	CredentialKey string
	Timeout       time.Duration
}

// RemoteDataSource fetches a flat box-record JSON document (the same
// shape LoadBoxContainer parses) from an HTTP endpoint, authenticating
// with a bearer token pulled from the system keyring.
type RemoteDataSource struct {
	baseURL     string
	credKey     string
	credentials storage.CredentialStore
	httpClient  *http.Client
	validate    bool
}

// NewRemoteDataSource builds a RemoteDataSource backed by credStore for
// token lookup. validate controls whether fetched documents are run
// through ValidateBoxDocument before parsing.
func NewRemoteDataSource(cfg RemoteSourceConfig, credStore storage.CredentialStore, validate bool) (*RemoteDataSource, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ingestion: BaseURL cannot be empty")
	}
	if cfg.CredentialKey == "" {
		return nil, fmt.Errorf("ingestion: CredentialKey cannot be empty")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &RemoteDataSource{
		baseURL:     cfg.BaseURL,
		credKey:     cfg.CredentialKey,
		credentials: credStore,
		httpClient:  &http.Client{Timeout: timeout},
		validate:    validate,
	}, nil
}

// Fetch retrieves the box document over HTTP, validates it (if enabled),
// and parses it into a BoxContainer. The returned content hash is the
// SHA-256 of the raw response body, suitable as a storage.Snapshot key.
func (s *RemoteDataSource) Fetch(ctx context.Context) (*layout.BoxContainer, string, error) {
	token, err := s.credentials.Get(s.credKey)
	if err != nil {
		return nil, "", opserrors.NewOperationalError("loading remote credential", s.baseURL, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, "", opserrors.NewOperationalError("building remote request", s.baseURL, "", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", opserrors.NewOperationalError("fetching remote box document", s.baseURL, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", opserrors.NewOperationalError("reading remote response body", s.baseURL, "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", opserrors.NewOperationalErrorWithAttrs("fetching remote box document", s.baseURL, "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)), map[string]interface{}{"status_code": resp.StatusCode})
	}

	if s.validate {
		if err := ValidateBoxDocument(body); err != nil {
			return nil, "", err
		}
	}

	container, err := LoadBoxContainer(body)
	if err != nil {
		return nil, "", err
	}

	sum := sha256.Sum256(body)
	return container, hex.EncodeToString(sum[:]), nil
}
