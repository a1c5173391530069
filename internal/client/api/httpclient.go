package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/avelichko/skillswap/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the SkillSwap API. The session cookie
// issued on login/verify is kept in an in-process cookie jar, so a single
// HTTPClient represents a single browser-like session.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). Error mapping follows the Client
// contract.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: decodeMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeMessage pulls the "message" field out of an error body, falling back
// to generic text for empty or malformed bodies.
func decodeMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return "request failed"
}

func (c *HTTPClient) SendOTP(ctx context.Context, email, userName string) error {
	payload := map[string]string{"email": email}
	if userName != "" {
		payload["userName"] = userName
	}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/send-otp", payload, nil)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) (*models.Identity, error) {
	var resp struct {
		User models.Identity `json:"user"`
	}
	payload := map[string]string{"email": email, "otpCode": code}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-otp", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	var id models.Identity
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", payload, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password, location string) (*models.Identity, error) {
	var id models.Identity
	payload := map[string]string{"name": name, "email": email, "password": password}
	if location != "" {
		payload["location"] = location
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", payload, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]*models.Identity, error) {
	var list []*models.Identity
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) ListSwapRequests(ctx context.Context) ([]*models.SwapRequest, error) {
	var reqs []*models.SwapRequest
	if err := c.doJSON(ctx, http.MethodGet, "/api/swap-requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *HTTPClient) CreateSwapRequest(ctx context.Context, targetID, message string) (*models.SwapRequest, error) {
	var created models.SwapRequest
	payload := map[string]string{"targetId": targetID, "message": message}
	if err := c.doJSON(ctx, http.MethodPost, "/api/swap-requests", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateSwapRequest(ctx context.Context, id, senderSkill, receiverSkill, message string) (*models.SwapRequest, error) {
	var updated models.SwapRequest
	payload := map[string]string{
		"senderSkill":   senderSkill,
		"receiverSkill": receiverSkill,
		"message":       message,
	}
	if err := c.doJSON(ctx, http.MethodPatch, "/api/swap-requests/"+id, payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) RequestPhotoUpload(ctx context.Context) (string, string, error) {
	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/profile/photo-upload", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}
