package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/devconnect/devconnect-backend/internal/config"
)

var ErrGithubProfileNotFound = errors.New("No Github profile found")

// GithubService fetches a user's five most recently created public repos from
// the GitHub API and passes the response through untouched.
type GithubService struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

func NewGithubService(cfg *config.Config) *GithubService {
	return &GithubService{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      cfg.GithubAPIURL,
		clientID:     cfg.GithubClientID,
		clientSecret: cfg.GithubClientSecret,
	}
}

func (s *GithubService) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if s.clientID != "" {
		query.Set("client_id", s.clientID)
		query.Set("client_secret", s.clientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", s.baseURL, url.PathEscape(username), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("User-Agent", "devconnect-backend")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGithubProfileNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read github response: %w", err)
	}
	return json.RawMessage(body), nil
}
