// Package client is a typed Go client for the campaignhub REST API. It
// injects bearer tokens, transparently refreshes them on 401 and decodes the
// response envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"campaignhub/api/internal/models"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type authPayload struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// Page mirrors the server's nested list payload.
type Page[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}

// APIError is any non-2xx enveloped response.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	creds   *credentialStore
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport's base client settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   &credentialStore{},
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http = &http.Client{
		Timeout: c.http.Timeout,
		Transport: &authTransport{
			base:       base,
			creds:      c.creds,
			refreshURL: baseURL + "/api/v1/auth/refresh",
		},
	}
	return c
}

// SetTokens seeds the credential store, e.g. from persisted session state.
func (c *Client) SetTokens(access, refresh string) {
	c.creds.set(access, refresh)
}

// Tokens returns the current pair, which may have rotated since login.
func (c *Client) Tokens() (access, refresh string) {
	return c.creds.get()
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Detail:     env.Error,
		}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	var auth authPayload
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", req, &auth); err != nil {
		return models.User{}, err
	}
	c.creds.set(auth.AccessToken, auth.RefreshToken)
	return auth.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var auth authPayload
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &auth)
	if err != nil {
		return models.User{}, err
	}
	c.creds.set(auth.AccessToken, auth.RefreshToken)
	return auth.User, nil
}

// Logout drops the stored token pair. Tokens are stateless so there is no
// server call to make.
func (c *Client) Logout() {
	c.creds.clear()
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/api/v1/auth/profile", nil, &user)
	return user, err
}

type ProfileUpdate struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, "/api/v1/auth/profile", update, &user)
	return user, err
}

// ListOptions cover the shared pagination parameters.
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

type CampaignListOptions struct {
	ListOptions
	Status string
	Type   string
	Search string
}

func (c *Client) ListCampaigns(ctx context.Context, opts CampaignListOptions) (Page[models.Campaign], error) {
	q := opts.query()
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	var page Page[models.Campaign]
	err := c.do(ctx, http.MethodGet, "/api/v1/campaigns?"+q.Encode(), nil, &page)
	return page, err
}

func (c *Client) GetCampaign(ctx context.Context, id string) (models.Campaign, error) {
	var campaign models.Campaign
	err := c.do(ctx, http.MethodGet, "/api/v1/campaigns/"+id, nil, &campaign)
	return campaign, err
}

type CampaignInput struct {
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Type           string    `json:"type"`
	Budget         float64   `json:"budget,omitempty"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	TargetAudience string    `json:"targetAudience,omitempty"`
}

func (c *Client) CreateCampaign(ctx context.Context, input CampaignInput) (models.Campaign, error) {
	var campaign models.Campaign
	err := c.do(ctx, http.MethodPost, "/api/v1/campaigns", input, &campaign)
	return campaign, err
}

func (c *Client) UpdateCampaign(ctx context.Context, id string, input CampaignInput) (models.Campaign, error) {
	var campaign models.Campaign
	err := c.do(ctx, http.MethodPut, "/api/v1/campaigns/"+id, input, &campaign)
	return campaign, err
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/campaigns/"+id, nil, nil)
}

func (c *Client) ActivateCampaign(ctx context.Context, id string) (models.Campaign, error) {
	return c.patchCampaign(ctx, id, "activate")
}

func (c *Client) PauseCampaign(ctx context.Context, id string) (models.Campaign, error) {
	return c.patchCampaign(ctx, id, "pause")
}

func (c *Client) CompleteCampaign(ctx context.Context, id string) (models.Campaign, error) {
	return c.patchCampaign(ctx, id, "complete")
}

func (c *Client) patchCampaign(ctx context.Context, id, action string) (models.Campaign, error) {
	var campaign models.Campaign
	err := c.do(ctx, http.MethodPatch, "/api/v1/campaigns/"+id+"/"+action, nil, &campaign)
	return campaign, err
}

func (c *Client) AssignClients(ctx context.Context, id string, clientIDs []string) (models.Campaign, error) {
	var campaign models.Campaign
	err := c.do(ctx, http.MethodPatch, "/api/v1/campaigns/"+id+"/assign",
		map[string][]string{"clientIds": clientIDs}, &campaign)
	return campaign, err
}

func (c *Client) GetBudget(ctx context.Context, campaignID string) (models.Budget, error) {
	var budget models.Budget
	err := c.do(ctx, http.MethodGet, "/api/v1/budget/campaigns/"+campaignID, nil, &budget)
	return budget, err
}

func (c *Client) TrackSpend(ctx context.Context, campaignID string, amount float64, description string) (models.Budget, error) {
	var budget models.Budget
	err := c.do(ctx, http.MethodPost, "/api/v1/budget/campaigns/"+campaignID+"/spend", map[string]any{
		"amount":      amount,
		"description": description,
	}, &budget)
	return budget, err
}

func (c *Client) CampaignStats(ctx context.Context, campaignID string) (models.AggregatedStats, error) {
	var stats models.AggregatedStats
	err := c.do(ctx, http.MethodGet, "/api/v1/analytics/campaigns/"+campaignID+"/aggregate", nil, &stats)
	return stats, err
}

func (c *Client) ListServices(ctx context.Context, opts ListOptions) (Page[models.Service], error) {
	var page Page[models.Service]
	err := c.do(ctx, http.MethodGet, "/api/v1/services?"+opts.query().Encode(), nil, &page)
	return page, err
}

func (c *Client) ListTeamMembers(ctx context.Context, opts ListOptions) (Page[models.TeamMember], error) {
	var page Page[models.TeamMember]
	err := c.do(ctx, http.MethodGet, "/api/v1/team?"+opts.query().Encode(), nil, &page)
	return page, err
}

func (c *Client) ListPortfolio(ctx context.Context, category string, opts ListOptions) (Page[models.PortfolioItem], error) {
	q := opts.query()
	if category != "" {
		q.Set("category", category)
	}
	var page Page[models.PortfolioItem]
	err := c.do(ctx, http.MethodGet, "/api/v1/portfolio?"+q.Encode(), nil, &page)
	return page, err
}

func (c *Client) ListTestimonials(ctx context.Context, opts ListOptions) (Page[models.Testimonial], error) {
	var page Page[models.Testimonial]
	err := c.do(ctx, http.MethodGet, "/api/v1/testimonials?"+opts.query().Encode(), nil, &page)
	return page, err
}

func (c *Client) ListJobs(ctx context.Context, opts ListOptions) (Page[models.Job], error) {
	var page Page[models.Job]
	err := c.do(ctx, http.MethodGet, "/api/v1/jobs?"+opts.query().Encode(), nil, &page)
	return page, err
}
