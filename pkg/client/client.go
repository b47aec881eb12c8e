// Package client is the dashboard-side API client: it normalizes filter
// criteria into listing queries, issues the REST calls, and surfaces
// failures as typed errors instead of silently empty results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"estatedash/server/internal/models"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// ListProperties fetches the properties matching the given criteria. The
// criteria are normalized at the moment of the call; only active constraints
// reach the backend.
func (c *Client) ListProperties(ctx context.Context, criteria FilterCriteria) ([]models.Property, error) {
	var properties []models.Property
	if err := c.get(ctx, "/api/properties", criteria.Values(), &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (c *Client) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	var property models.Property
	if err := c.get(ctx, fmt.Sprintf("/api/properties/%d", id), nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) CreateProperty(ctx context.Context, req models.PropertyRequest) (*models.Property, error) {
	var property models.Property
	if err := c.post(ctx, "/api/properties", req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// PropertyTypes fetches the choice set for the property-type filter.
func (c *Client) PropertyTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.get(ctx, "/api/properties/types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Cities fetches the choice set for the city filter.
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	if err := c.get(ctx, "/api/properties/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *Client) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := c.get(ctx, "/api/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *Client) CreateSale(ctx context.Context, req models.SaleRequest) (*models.Sale, error) {
	var sale models.Sale
	if err := c.post(ctx, "/api/sales", req, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (c *Client) ListRenovations(ctx context.Context) ([]models.Renovation, error) {
	var renovations []models.Renovation
	if err := c.get(ctx, "/api/renovations", nil, &renovations); err != nil {
		return nil, err
	}
	return renovations, nil
}

func (c *Client) CreateRenovation(ctx context.Context, req models.RenovationRequest) (*models.Renovation, error) {
	var renovation models.Renovation
	if err := c.post(ctx, "/api/renovations", req, &renovation); err != nil {
		return nil, err
	}
	return &renovation, nil
}

func (c *Client) PropertyAnalytics(ctx context.Context) (*models.PropertyAnalytics, error) {
	var summary models.PropertyAnalytics
	if err := c.getAnalytics(ctx, "property", "/api/analytics/properties", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) SalesAnalytics(ctx context.Context) (*models.SalesAnalytics, error) {
	var summary models.SalesAnalytics
	if err := c.getAnalytics(ctx, "sales", "/api/analytics/sales", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) RenovationAnalytics(ctx context.Context) (*models.RenovationAnalytics, error) {
	var summary models.RenovationAnalytics
	if err := c.getAnalytics(ctx, "renovation", "/api/analytics/renovations", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &NetworkError{URL: requestURL, Err: err}
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	requestURL := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return &NetworkError{URL: requestURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// getAnalytics maps non-success responses to AggregationError; transport
// failures remain NetworkError.
func (c *Client) getAnalytics(ctx context.Context, resource, path string, out interface{}) error {
	err := c.get(ctx, path, nil, out)
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return &AggregationError{Resource: resource, StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	if verr, ok := err.(*ValidationError); ok {
		return &AggregationError{Resource: resource, StatusCode: verr.StatusCode, Message: verr.Message}
	}
	return err
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", req.URL.String()).Debug("Request failed")
		return &NetworkError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorBody matches both backend failure shapes: a plain {"error": ...}
// and a validation {"detail": ...} whose detail is a message or a list of
// field errors.
type errorBody struct {
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

type detailEntry struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func decodeError(status int, body []byte) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Error
	var fields []FieldError

	if len(parsed.Detail) > 0 {
		var detailMsg string
		if err := json.Unmarshal(parsed.Detail, &detailMsg); err == nil {
			message = detailMsg
		} else {
			var entries []detailEntry
			if err := json.Unmarshal(parsed.Detail, &entries); err == nil {
				for _, entry := range entries {
					field := ""
					if len(entry.Loc) > 0 {
						field = entry.Loc[len(entry.Loc)-1]
					}
					fields = append(fields, FieldError{Field: field, Message: entry.Msg})
				}
			}
		}
	}

	if message == "" && len(fields) == 0 {
		message = http.StatusText(status)
	}

	if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
		if len(fields) > 0 || len(parsed.Detail) > 0 {
			return &ValidationError{StatusCode: status, Message: message, Fields: fields}
		}
	}

	return &APIError{StatusCode: status, Message: message}
}
