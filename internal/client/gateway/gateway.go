// Package gateway is the typed HTTP client for the dashboard API. Every
// failure, transport-level or application-level, is normalized to an
// *APIError carrying a single detail message.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// APIError is the uniform error shape surfaced by the gateway.
type APIError struct {
	// Detail is the user-facing message, passed through unmodified.
	Detail string `json:"detail"`
	// Status is the HTTP status code, 0 for transport failures.
	Status int `json:"-"`
}

func (e *APIError) Error() string {
	return e.Detail
}

// Client talks to the remote persistence gateway over HTTP.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

// New returns a Client for the given base URL. A nil httpClient falls back to
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetToken installs the bearer token attached to subsequent requests. An
// empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// do issues a JSON request and decodes the JSON response into out (skipped
// when out is nil). Any failure is returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &APIError{Detail: fmt.Sprintf("encode request: %v", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return &APIError{Detail: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Detail == "" {
			apiErr.Detail = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Detail: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the gateway's login response: the user plus a bearer token.
type LoginResult struct {
	Message string      `json:"message"`
	Status  string      `json:"status"`
	User    models.User `json:"user"`
	JWT     string      `json:"jwt"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for the user and a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me exchanges the installed bearer token for the current user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword requests a recovery code for the account. The returned
// message reports how the code was delivered.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword submits a recovery code plus a replacement password.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{
		"email":       email,
		"resetCode":   code,
		"newPassword": newPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

// Categories fetches the full category collection.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a category and returns the server-assigned entity.
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/categories", body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category and returns the server's representation.
func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*models.Category, error) {
	var category models.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+id, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+id, nil, nil)
}

// ItemInput carries the client-supplied fields of an inventory item.
type ItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
}

// Items fetches the full inventory collection.
func (c *Client) Items(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ItemsByCategory fetches the items referencing one category.
func (c *Client) ItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/api/items/by-category/"+categoryID, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem adds an item and returns the server-assigned entity.
func (c *Client) CreateItem(ctx context.Context, in ItemInput) (*models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodPost, "/api/items", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem overwrites an item and returns the server's representation.
func (c *Client) UpdateItem(ctx context.Context, id string, in ItemInput) (*models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodPut, "/api/items/"+id, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+id, nil, nil)
}

// ProfileUpdate is a partial profile update: nil fields keep their value.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"lastName,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Profile fetches a user's profile.
func (c *Client) Profile(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/profile/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/profile/"+id, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateEmail changes the account email.
func (c *Client) UpdateEmail(ctx context.Context, id, newEmail string) (*models.User, error) {
	var user models.User
	body := map[string]string{"newEmail": newEmail}
	if err := c.do(ctx, http.MethodPut, "/api/profile/"+id+"/email", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the account password after verifying the current one.
func (c *Client) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (*models.User, error) {
	var user models.User
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	if err := c.do(ctx, http.MethodPut, "/api/profile/"+id+"/password", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
