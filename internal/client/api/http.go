package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imroc/req/v3"

	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// wire DTOs; field names follow the server's JSON contract.

type userPayload struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	UploadCount int         `json:"upload_count"`
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        userPayload `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type roleRequest struct {
	Role models.Role `json:"role"`
}

// errorResponse is the server's error body: {"detail": "..."}.
type errorResponse struct {
	Detail string `json:"detail"`
}

// HTTPClient implements Client over the service's REST API.
type HTTPClient struct {
	c *req.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a Client for the service at baseURL. The timeout
// bounds every request including the body transfer.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := req.C().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetUserAgent("datacleaner-cli")
	return &HTTPClient{c: c}
}

func (h *HTTPClient) Close() error {
	h.c.GetTransport().CloseIdleConnections()
	return nil
}

func (h *HTTPClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

// request starts a request with the current token attached. The token is
// read once here, so a concurrent SetToken never produces a half-updated
// header on an in-flight call.
func (h *HTTPClient) request(ctx context.Context) *req.Request {
	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	r := h.c.R().SetContext(ctx)
	if token != "" {
		r.SetBearerAuthToken(token)
	}
	return r
}

// classify converts a finished exchange into the error taxonomy. A nil
// return means the call succeeded.
func classify(resp *req.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsSuccessState() {
		return nil
	}

	detail := ""
	if er, ok := resp.ErrorResult().(*errorResponse); ok && er != nil {
		detail = er.Detail
	}

	code := resp.GetStatusCode()
	switch {
	case code == 401:
		return ErrUnauthorized
	case code == 403:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrForbidden, detail)
		}
		return ErrForbidden
	case code == 400 || code == 404 || code == 422:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrBadRequest, detail)
		}
		return ErrBadRequest
	case code >= 500:
		return ErrServer
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrServer, code)
	}
}

func (h *HTTPClient) auth(ctx context.Context, url string, body any) (*AuthResult, error) {
	var out authResponse
	resp, err := h.request(ctx).
		SetBody(body).
		SetSuccessResult(&out).
		SetErrorResult(&errorResponse{}).
		Post(url)
	if err := classify(resp, err); err != nil {
		return nil, err
	}

	p := &models.Profile{
		ID:          out.User.ID,
		Name:        out.User.Name,
		Email:       out.User.Email,
		Role:        out.User.Role,
		UploadCount: out.User.UploadCount,
	}
	return &AuthResult{Token: out.AccessToken, Profile: p}, nil
}

func (h *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return h.auth(ctx, "/auth/login", &loginRequest{Email: email, Password: password})
}

func (h *HTTPClient) Register(ctx context.Context, name, email, username, password string) (*AuthResult, error) {
	return h.auth(ctx, "/auth/register", &registerRequest{
		Name:     name,
		Email:    email,
		Username: username,
		Password: password,
	})
}

func (h *HTTPClient) Profile(ctx context.Context) (*models.Profile, error) {
	var out userPayload
	resp, err := h.request(ctx).
		SetSuccessResult(&out).
		SetErrorResult(&errorResponse{}).
		Get("/profile")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:          out.ID,
		Name:        out.Name,
		Email:       out.Email,
		Role:        out.Role,
		UploadCount: out.UploadCount,
	}, nil
}

func (h *HTTPClient) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	var out []*models.Artifact
	resp, err := h.request(ctx).
		SetSuccessResult(&out).
		SetErrorResult(&errorResponse{}).
		Get("/image/")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *HTTPClient) Upload(ctx context.Context, path string, mode models.ProcessMode) (*models.Artifact, error) {
	var out models.Artifact
	resp, err := h.request(ctx).
		SetFile("file", path).
		SetQueryParam("process_type", string(mode)).
		SetSuccessResult(&out).
		SetErrorResult(&errorResponse{}).
		Post("/image/")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *HTTPClient) ListUsers(ctx context.Context) ([]*models.AdminUser, error) {
	var out []*models.AdminUser
	resp, err := h.request(ctx).
		SetSuccessResult(&out).
		SetErrorResult(&errorResponse{}).
		Get("/admin/users")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *HTTPClient) UpdateUserRole(ctx context.Context, userID int64, role models.Role) (*models.AdminUser, error) {
	var out models.AdminUser
	resp, err := h.request(ctx).
		SetBody(&roleRequest{Role: role}).
		SetSuccessResult(&out).
		SetErrorResult(&errorResponse{}).
		Put(fmt.Sprintf("/admin/users/%d/role", userID))
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
