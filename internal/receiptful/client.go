package receiptful

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"receiptsync/internal/logger"
)

// Timeouts differ per verb: reads are quick, mutating calls carry bulk
// payloads that can be large.
const (
	getTimeout  = 5 * time.Second
	postTimeout = 45 * time.Second
)

type Client struct {
	baseURL    string
	apiKey     string
	getClient  *http.Client
	postClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL, apiKey string, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		getClient: &http.Client{
			Timeout: getTimeout,
		},
		postClient: &http.Client{
			Timeout: postTimeout,
		},
		logger: logger,
	}
}

// Receipt creates a receipt for a completed order.
func (c *Client) Receipt(data *ReceiptData) *Result {
	return c.Call("POST", "/receipts", data)
}

// ResendReceipt resends a previously created receipt. The remote record
// is reused; no second receipt is created.
func (c *Client) ResendReceipt(receiptID string) *Result {
	return c.Call("POST", "/receipts/"+receiptID+"/send", nil)
}

// UpdateProduct upserts a single product.
func (c *Client) UpdateProduct(productID string, data *ProductData) *Result {
	return c.Call("PUT", "/products/"+productID, data)
}

// UpdateProducts upserts a batch of products in one call.
func (c *Client) UpdateProducts(data []*ProductData) *Result {
	return c.Call("POST", "/products", data)
}

// DeleteProduct removes a product from the remote catalog.
func (c *Client) DeleteProduct(productID string) *Result {
	return c.Call("DELETE", "/products/"+productID, nil)
}

// UploadReceipts bulk-uploads historical receipts. This improves the
// quality of the remote service's recommendations.
func (c *Client) UploadReceipts(data []*ReceiptData) *Result {
	return c.Call("POST", "/receipts/bulk", data)
}

// PublicUserKey fetches the account public key for the configured API key.
func (c *Client) PublicUserKey() (string, error) {
	result := c.Call("GET", "/users/current", nil)
	if result.Outcome != Success {
		if result.Err != nil {
			return "", fmt.Errorf("failed to fetch public key: %w", result.Err)
		}
		return "", fmt.Errorf("failed to fetch public key: status %d", result.Code)
	}

	var user UserResponse
	if err := json.Unmarshal(result.Body, &user); err != nil {
		return "", fmt.Errorf("failed to decode user response: %w", err)
	}

	return user.PublicKey, nil
}

// Call executes one API request and classifies the response. Transport
// errors (DNS, connect, timeout) never carry a status code and are
// always treated as retryable.
func (c *Client) Call(method, path string, body interface{}) *Result {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return &Result{Outcome: PermanentFailure, Err: fmt.Errorf("failed to marshal body: %w", err)}
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return &Result{Outcome: PermanentFailure, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("X-ApiKey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.postClient
	if method == "GET" {
		httpClient = c.getClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Error("API request failed: %s %s: %v", method, path, err)
		return &Result{Outcome: TransportFailure, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read API response: %s %s: %v", method, path, err)
		return &Result{Outcome: TransportFailure, Err: err}
	}

	outcome := Classify(resp.StatusCode)
	if outcome != Success {
		c.logger.Debug("API call %s %s returned %d (%s)", method, path, resp.StatusCode, outcome)
	}

	return &Result{
		Outcome: outcome,
		Code:    resp.StatusCode,
		Body:    respBody,
	}
}
