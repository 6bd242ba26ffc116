package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/naveenspark/sportex/pkg/domain"
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// errNoAccessToken is returned when an auth endpoint answers 2xx without a token.
var errNoAccessToken = errors.New("response has no access_token")

// Login exchanges credentials for a session token. The form uses the
// "username" field for the email address.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tok oauth2.Token
	if err := c.post(ctx, "/auth/login", form, false, &tok); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("client.Login: %w", errNoAccessToken)
	}
	return tok.AccessToken, nil
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (string, error) {
	var tok oauth2.Token
	if err := c.post(ctx, "/auth/register", r, false, &tok); err != nil {
		return "", fmt.Errorf("client.Register: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("client.Register: %w", errNoAccessToken)
	}
	return tok.AccessToken, nil
}

// Me returns the identity behind token. The token is passed explicitly so
// callers can tie the answer to the exact token they asked about.
func (c *Client) Me(ctx context.Context, token string) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.doRequest(ctx, http.MethodGet, "/me", token, nil, &id); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &id, nil
}

// SearchAthletes lists athletes matching f in server order.
func (c *Client) SearchAthletes(ctx context.Context, f domain.AthleteFilter) (*domain.SearchResult[domain.Athlete], error) {
	var res domain.SearchResult[domain.Athlete]
	if err := c.get(ctx, withQuery("/athletes", AthleteQuery(f)), false, &res); err != nil {
		return nil, fmt.Errorf("client.SearchAthletes: %w", err)
	}
	return &res, nil
}

// ListEvents returns upcoming events.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var res domain.SearchResult[domain.Event]
	if err := c.get(ctx, "/events", false, &res); err != nil {
		return nil, fmt.Errorf("client.ListEvents: %w", err)
	}
	return res.Results, nil
}

// GetEvent fetches a single event by ID.
func (c *Client) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	var e domain.Event
	if err := c.get(ctx, "/events/"+url.PathEscape(id), false, &e); err != nil {
		return nil, fmt.Errorf("client.GetEvent: %w", err)
	}
	return &e, nil
}

// RegisterForEvent signs the current user up for an event.
func (c *Client) RegisterForEvent(ctx context.Context, id string) (*domain.RegistrationStatus, error) {
	var s domain.RegistrationStatus
	if err := c.post(ctx, "/events/"+url.PathEscape(id)+"/register", nil, true, &s); err != nil {
		return nil, fmt.Errorf("client.RegisterForEvent: %w", err)
	}
	return &s, nil
}

// CoachDashboard returns the coach's teams, events and registrations.
func (c *Client) CoachDashboard(ctx context.Context) (*domain.CoachDashboard, error) {
	var d domain.CoachDashboard
	if err := c.get(ctx, "/dashboard/coach", true, &d); err != nil {
		return nil, fmt.Errorf("client.CoachDashboard: %w", err)
	}
	return &d, nil
}

// ListNotifications returns the inbox, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var res domain.SearchResult[domain.Notification]
	if err := c.get(ctx, "/notifications", true, &res); err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	return res.Results, nil
}
