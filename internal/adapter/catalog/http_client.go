package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
)

const validatePath = "/api/v1/products/validate"

// HTTPClient talks to the product-catalog service over HTTP/JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type validateRequest struct {
	IDs []string `json:"ids"`
}

type productRecord struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type errorResponse struct {
	Message string   `json:"message"`
	IDs     []string `json:"ids"`
}

// Validate resolves the given ids in one request. Every requested id must
// come back; a partial response is reported as ProductNotFoundError for the
// missing ids, never silently dropped.
func (c *HTTPClient) Validate(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	body, err := json.Marshal(validateRequest{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("marshal validate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+validatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || len(errResp.IDs) == 0 {
			return nil, &domain.ProductNotFoundError{IDs: ids}
		}
		return nil, &domain.ProductNotFoundError{IDs: errResp.IDs}
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: catalog returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var records []productRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode catalog response: %v", domain.ErrUpstreamUnavailable, err)
	}

	products := make(map[string]domain.Product, len(records))
	for _, rec := range records {
		products[rec.ID] = domain.Product{ID: rec.ID, Name: rec.Name, Price: rec.Price}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ProductNotFoundError{IDs: missing}
	}

	return products, nil
}
