// Package directory talks to the upstream user directory, a
// dummyjson-style API that owns credentials and user profiles.
package directory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"simplekyc/internal/core/domain"
)

// Client calls the user directory REST API
type Client struct {
	baseURL string
	http    *http.Client
}

// Credentials is the login payload forwarded to the directory
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the directory login response
type LoginResult struct {
	ID          int    `json:"id"`
	AccessToken string `json:"accessToken"`
}

// Profile is a directory user profile. Field names follow the
// directory's JSON exactly.
type Profile struct {
	ID         int      `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	MaidenName string   `json:"maidenName"`
	Gender     string   `json:"gender"`
	Image      string   `json:"image"`
	BirthDate  string   `json:"birthDate"`
	Age        int      `json:"age"`
	Phone      string   `json:"phone"`
	Role       string   `json:"role"`
	Address    *Address `json:"address"`
}

// Address is the directory's address block
type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	StateCode  string `json:"stateCode"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Listing is a paged directory user listing
type Listing struct {
	Users []Profile `json:"users"`
	Total int       `json:"total"`
	Skip  int       `json:"skip"`
	Limit int       `json:"limit"`
}

// NewClient creates a directory client
func NewClient(baseURL string, timeoutSeconds int) *Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// Login authenticates against the directory and returns its bearer token.
// A 400/401 from the directory means bad credentials, not an outage.
func (c *Client) Login(username, password string) (*LoginResult, error) {
	payload, err := json.Marshal(Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/auth/login", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: directory login status %d: %s",
			domain.ErrDirectoryUnavailable, resp.StatusCode, string(body))
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("%w: directory login returned no token", domain.ErrDirectoryUnavailable)
	}

	return &result, nil
}

// Me resolves the profile behind a directory bearer token
func (c *Client) Me(accessToken string) (*Profile, error) {
	req, err := http.NewRequest("GET", c.baseURL+"/user/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized
	default:
		return nil, fmt.Errorf("%w: directory me status %d: %s",
			domain.ErrDirectoryUnavailable, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	return &profile, nil
}

// GetUser fetches one profile by id. The first transport failure is
// retried once before giving up.
func (c *Client) GetUser(id int) (*Profile, error) {
	profile, err := c.getUserOnce(id)
	if err != nil && isRetryable(err) {
		profile, err = c.getUserOnce(id)
	}
	return profile, err
}

func (c *Client) getUserOnce(id int) (*Profile, error) {
	resp, err := c.http.Get(fmt.Sprintf("%s/users/%d", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrUserNotFound
	default:
		return nil, fmt.Errorf("%w: directory user status %d: %s",
			domain.ErrDirectoryUnavailable, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	return &profile, nil
}

// ListUsers returns the full directory listing. The directory pages
// with limit=0 meaning "everything".
func (c *Client) ListUsers() ([]Profile, error) {
	resp, err := c.http.Get(c.baseURL + "/users?limit=0")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: directory listing status %d: %s",
			domain.ErrDirectoryUnavailable, resp.StatusCode, string(body))
	}

	var listing Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	return listing.Users, nil
}

// isRetryable: only outages are retried, never auth or not-found
func isRetryable(err error) bool {
	return errors.Is(err, domain.ErrDirectoryUnavailable)
}
