package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"campaign-engine/internal/criteria"
	"campaign-engine/internal/observability"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Customer is one profile as returned by the profile service. Contact
// fields are empty when the customer has no address on that channel.
type Customer struct {
	ID             string              `json:"id"`
	Attributes     criteria.Attributes `json:"attributes"`
	Email          string              `json:"email,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	DeviceToken    string              `json:"device_token,omitempty"`
	SocialHandle   string              `json:"social_handle,omitempty"`
	ConsentRevoked bool                `json:"consent_revoked"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// Address returns the contact address of the customer on a channel.
func (c Customer) Address(channel string) string {
	switch channel {
	case "email":
		return c.Email
	case "sms":
		return c.Phone
	case "push":
		return c.DeviceToken
	case "social":
		return c.SocialHandle
	}
	return ""
}

// Page is one page of a full customer scan. An empty NextCursor ends the scan.
type Page struct {
	Customers  []Customer `json:"customers"`
	NextCursor string     `json:"next_cursor"`
}

type customersResponse struct {
	Customers []Customer `json:"customers"`
}

type batchGetRequest struct {
	IDs []string `json:"ids"`
}

// Client talks to the customer profile service over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a new profile service client
func NewClient(baseURL string, timeout time.Duration, logger *observability.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetCustomer fetches a single profile
func (c *Client) GetCustomer(ctx context.Context, customerID string) (Customer, error) {
	ctx = observability.WithFields(ctx, observability.CustomerID(customerID))

	var customer Customer
	err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID), nil, &customer)
	if err != nil {
		return Customer{}, err
	}
	return customer, nil
}

// BatchGetCustomers fetches profiles by id. Unknown ids are absent from the result.
func (c *Client) BatchGetCustomers(ctx context.Context, ids []string) ([]Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var resp customersResponse
	if err := c.do(ctx, http.MethodPost, "/customers:batchGet", batchGetRequest{IDs: ids}, &resp); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

// Customers returns one page of the full customer scan
func (c *Client) Customers(ctx context.Context, cursor string, limit int) (Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var page Page
	if err := c.do(ctx, http.MethodGet, "/customers?"+q.Encode(), nil, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// ChangedSince returns every customer whose profile changed after since
func (c *Client) ChangedSince(ctx context.Context, since time.Time) ([]Customer, error) {
	q := url.Values{}
	q.Set("since", since.UTC().Format(time.RFC3339Nano))

	var resp customersResponse
	if err := c.do(ctx, http.MethodGet, "/customers/changes?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal profile request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call profile service", err)
		return fmt.Errorf("failed to call profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrCustomerNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("profile service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		c.logger.Error(ctx, "profile service request failed", err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode profile response: %w", err)
	}
	return nil
}
