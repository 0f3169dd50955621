package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client is a typed HTTP client for the clinic records API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type patientEnvelope struct {
	Message string         `json:"message"`
	Patient *model.Patient `json:"patient"`
}

type itemEnvelope struct {
	Message string               `json:"message"`
	Item    *model.InventoryItem `json:"item"`
}

type expenseEnvelope struct {
	Message string         `json:"message"`
	Expense *model.Expense `json:"expense"`
}

type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients", nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (c *Client) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/"+id.String(), nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *Client) CreatePatient(ctx context.Context, req *model.PatientRequest) (*model.Patient, error) {
	var env patientEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/patients", req, &env); err != nil {
		return nil, err
	}
	return env.Patient, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.PatientRequest) (*model.Patient, error) {
	var env patientEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/patients/"+id.String(), req, &env); err != nil {
		return nil, err
	}
	return env.Patient, nil
}

func (c *Client) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/patients/"+id.String(), nil, nil)
}

func (c *Client) ListInventoryItems(ctx context.Context) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/inventory", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetInventoryItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/inventory/"+id.String(), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateInventoryItem(ctx context.Context, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	var env itemEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/inventory", req, &env); err != nil {
		return nil, err
	}
	return env.Item, nil
}

func (c *Client) UpdateInventoryItem(ctx context.Context, id uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	var env itemEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/inventory/"+id.String(), req, &env); err != nil {
		return nil, err
	}
	return env.Item, nil
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/inventory/"+id.String(), nil, nil)
}

func (c *Client) ListExpenses(ctx context.Context) ([]*model.Expense, error) {
	var expenses []*model.Expense
	if err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (c *Client) GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := c.do(ctx, http.MethodGet, "/api/expenses/"+id.String(), nil, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (c *Client) CreateExpense(ctx context.Context, req *model.ExpenseRequest) (*model.Expense, error) {
	var env expenseEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/expenses", req, &env); err != nil {
		return nil, err
	}
	return env.Expense, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id uuid.UUID, req *model.ExpenseRequest) (*model.Expense, error) {
	var env expenseEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/expenses/"+id.String(), req, &env); err != nil {
		return nil, err
	}
	return env.Expense, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/expenses/"+id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		if err := json.Unmarshal(data, &env); err != nil || env.Message == "" {
			env.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Detail:     env.Error,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
