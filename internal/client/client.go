package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/jon4hz/funfacts/internal/api/models"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/jon4hz/funfacts/internal/engine"
	"github.com/jon4hz/funfacts/internal/scheduler"
)

// APIError is returned for every non 2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client talks to a running funfacts server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new client for the server at baseURL.
// The client keeps the session cookie set by Login.
func New(baseURL string) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}, nil
}

type envelope struct {
	Success bool            `json:"Success"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"data"`
}

// do sends the request and decodes the response body into out.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// doEnvelope decodes the data field of an envelope response into out.
func (c *Client) doEnvelope(ctx context.Context, method, endpoint string, body, out any) (string, error) {
	var env envelope
	if err := c.do(ctx, method, endpoint, nil, body, &env); err != nil {
		return "", err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("error decoding response data: %w", err)
		}
	}
	return env.Message, nil
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Register(ctx context.Context, input engine.NewUser) (*models.User, error) {
	var user models.User
	if _, err := c.doEnvelope(ctx, http.MethodPost, "/auth/register/", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login returns the id of the logged in user and stores the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (uint, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doEnvelope(ctx, http.MethodPost, "/auth/logout/", nil, nil)
	return err
}

// Me returns the user of the current session.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.doEnvelope(ctx, http.MethodGet, "/auth/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := c.doEnvelope(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uint, update engine.UserUpdate) (*models.User, error) {
	var user models.User
	if _, err := c.doEnvelope(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	_, err := c.doEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
	return err
}

func (c *Client) AddFact(ctx context.Context, input engine.NewFact) (*database.Fact, error) {
	var fact database.Fact
	if _, err := c.doEnvelope(ctx, http.MethodPost, "/facts/", input, &fact); err != nil {
		return nil, err
	}
	return &fact, nil
}

func (c *Client) ListFacts(ctx context.Context) ([]database.Fact, error) {
	var facts []database.Fact
	if _, err := c.doEnvelope(ctx, http.MethodGet, "/facts/", nil, &facts); err != nil {
		return nil, err
	}
	return facts, nil
}

func (c *Client) UpdateFact(ctx context.Context, id uint, update engine.FactUpdate) (*database.Fact, error) {
	var fact database.Fact
	if _, err := c.doEnvelope(ctx, http.MethodPut, fmt.Sprintf("/facts/%d", id), update, &fact); err != nil {
		return nil, err
	}
	return &fact, nil
}

func (c *Client) DeleteFact(ctx context.Context, id uint) error {
	_, err := c.doEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/facts/%d", id), nil, nil)
	return err
}

// RandomFact draws a fact. An empty category draws from all facts.
func (c *Client) RandomFact(ctx context.Context, category string) (*database.Fact, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var resp models.RandomFactResponse
	if err := c.do(ctx, http.MethodGet, "/facts/random/", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Fact, nil
}

func (c *Client) Categories(ctx context.Context) ([]database.CategoryCount, error) {
	var counts []database.CategoryCount
	if _, err := c.doEnvelope(ctx, http.MethodGet, "/facts/categories/", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// AddFavorite bookmarks a fact and returns the server message,
// which tells a new favorite from an existing one.
func (c *Client) AddFavorite(ctx context.Context, userID, factID uint) (*models.FavoriteResult, string, error) {
	var result models.FavoriteResult
	msg, err := c.doEnvelope(ctx, http.MethodPost, "/favorites/add/", models.FavoriteRequest{UserID: userID, FactID: factID}, &result)
	if err != nil {
		return nil, "", err
	}
	return &result, msg, nil
}

func (c *Client) ListFavorites(ctx context.Context, userID uint) ([]engine.FavoriteFact, error) {
	var resp models.FavoritesResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/favorites/%d", userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, id uint) error {
	_, err := c.doEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d", id), nil, nil)
	return err
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if _, err := c.doEnvelope(ctx, http.MethodGet, "/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ListJobs(ctx context.Context) ([]scheduler.JobInfo, error) {
	var jobs []scheduler.JobInfo
	if _, err := c.doEnvelope(ctx, http.MethodGet, "/jobs/", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// RunJob triggers a maintenance job. The returned state is taken right after the
// trigger, the job itself finishes in the background.
func (c *Client) RunJob(ctx context.Context, id string) (*scheduler.JobInfo, error) {
	var info scheduler.JobInfo
	if _, err := c.doEnvelope(ctx, http.MethodPost, "/jobs/"+url.PathEscape(id)+"/run/", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
