package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexanderramin/haven/internal/domain"
)

// authResponse is returned by /auth/login and /auth/signup. Signup may omit
// the refresh token.
type authResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         domain.User `json:"user"`
}

// Login authenticates and persists the full credential set. Missing fields
// fail before any request is sent.
func (c *Client) Login(ctx context.Context, email, password string, userType domain.UserType) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || userType == "" {
		return nil, validationError("Email, password and account type are required.")
	}
	if !domain.ValidUserTypes[string(userType)] {
		return nil, validationError("Account type must be teen or parent.")
	}

	form := url.Values{}
	form.Set("username", email+":"+string(userType))
	form.Set("password", password)

	var out authResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/login",
		form:      form,
		noRefresh: true,
	}, &out)
	if err != nil {
		_ = c.tokens.Clear(ctx)
		return nil, err
	}
	return c.persist(ctx, out)
}

// Signup creates an account. When the response carries no refresh token the
// client logs in with the same credentials so that a complete session is
// stored.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.Name == "" || req.UserType == "" {
		return nil, validationError("Email, password, name and account type are required.")
	}
	if !domain.ValidUserTypes[string(req.UserType)] {
		return nil, validationError("Account type must be teen or parent.")
	}

	var out authResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/signup",
		body:      req,
		noRefresh: true,
	}, &out)
	if err != nil {
		_ = c.tokens.Clear(ctx)
		return nil, err
	}
	if out.RefreshToken == "" {
		return c.Login(ctx, req.Email, req.Password, req.UserType)
	}
	return c.persist(ctx, out)
}

// persist stores access token, refresh token, user and user id together, or
// clears all of them.
func (c *Client) persist(ctx context.Context, out authResponse) (*domain.User, error) {
	session := domain.AuthSession{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		UserID:       out.User.ID.String(),
	}
	if !session.Complete() {
		_ = c.tokens.Clear(ctx)
		return nil, &Error{Message: "The server returned an incomplete login response.", kind: ErrInvalidResponse}
	}
	if err := c.tokens.SaveSession(ctx, session, out.User); err != nil {
		_ = c.tokens.Clear(ctx)
		return nil, err
	}
	user := out.User
	return &user, nil
}

// Logout forgets every stored credential.
func (c *Client) Logout(ctx context.Context) error {
	return c.tokens.Clear(ctx)
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
