// Package client is a typed HTTP client for the routine service API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/respond"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/timeline"
)

// ErrNotFound is matched by errors.Is for any 404 returned by the service.
var ErrNotFound = model.ErrNotFound

// APIError is a non-2xx response decoded from the service error body.
type APIError struct {
	Status int
	Body   respond.ErrorResponse
}

func (e *APIError) Error() string {
	msg := e.Body.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Body.Details) > 0 {
		return fmt.Sprintf("http %d: %s (%s)", e.Status, msg, e.Body.Details.Error())
	}
	return fmt.Sprintf("http %d: %s", e.Status, msg)
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// FieldErrors returns the rejected fields of a 400 response.
func FieldErrors(err error) (model.FieldErrors, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Body.Details) > 0 {
		return apiErr.Body.Details, true
	}
	return nil, false
}

// Client talks to a single routine service instance.
type Client struct {
	http *resty.Client
}

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds every request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithDebug logs every request and response through resty.
func WithDebug(enabled bool) Option {
	return func(c *Client) error {
		c.http.SetDebug(enabled)
		return nil
	}
}

// New constructs a Client for baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(10 * time.Second),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ListOptions mirrors the list and timeline query parameters.
type ListOptions struct {
	Frequency  string
	Query      string
	ActiveOnly bool
}

func (o ListOptions) params() map[string]string {
	p := map[string]string{}
	if o.Frequency != "" {
		p["frequencyType"] = o.Frequency
	}
	if o.Query != "" {
		p["q"] = o.Query
	}
	if o.ActiveOnly {
		p["active"] = strconv.FormatBool(true)
	}
	return p
}

func (c *Client) request(ctx context.Context, result interface{}) *resty.Request {
	r := c.http.R().SetContext(ctx).SetError(&respond.ErrorResponse{})
	if result != nil {
		r.SetResult(result)
	}
	return r
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("routine service request: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*respond.ErrorResponse); ok && body != nil {
		apiErr.Body = *body
	}
	return apiErr
}

// List returns routines sorted by start time, filtered by opts.
func (c *Client) List(ctx context.Context, opts ListOptions) ([]model.Routine, error) {
	var out []model.Routine
	resp, err := c.request(ctx, &out).SetQueryParams(opts.params()).Get("/api/routines")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (model.Routine, error) {
	var out model.Routine
	resp, err := c.request(ctx, &out).SetPathParam("id", id).Get("/api/routines/{id}")
	return out, check(resp, err)
}

func (c *Client) Create(ctx context.Context, in model.RoutineInput) (model.Routine, error) {
	var out model.Routine
	resp, err := c.request(ctx, &out).SetBody(in).Post("/api/routines")
	return out, check(resp, err)
}

// Update sends only the fields present in in.
func (c *Client) Update(ctx context.Context, id string, in model.RoutineInput) (model.Routine, error) {
	var out model.Routine
	resp, err := c.request(ctx, &out).SetPathParam("id", id).SetBody(in).Patch("/api/routines/{id}")
	return out, check(resp, err)
}

func (c *Client) SetStatus(ctx context.Context, id string, active bool) (model.Routine, error) {
	var out model.Routine
	resp, err := c.request(ctx, &out).
		SetPathParam("id", id).
		SetBody(map[string]bool{"isActive": active}).
		Patch("/api/routines/{id}/status")
	return out, check(resp, err)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.request(ctx, nil).SetPathParam("id", id).Delete("/api/routines/{id}")
	return check(resp, err)
}

func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var out model.Stats
	resp, err := c.request(ctx, &out).Get("/api/routines/stats")
	return out, check(resp, err)
}

// Timeline returns the server-side layout for the filtered routine set.
func (c *Client) Timeline(ctx context.Context, opts ListOptions) (timeline.Chart, error) {
	var out timeline.Chart
	resp, err := c.request(ctx, &out).SetQueryParams(opts.params()).Get("/api/timeline")
	return out, check(resp, err)
}
