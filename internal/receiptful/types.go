package receiptful

import "encoding/json"

// ReceiptData is the payload for POST /receipts and each element of the
// POST /receipts/bulk body.
type ReceiptData struct {
	Date       string     `json:"date"`
	Reference  string     `json:"reference"`
	Currency   string     `json:"currency"`
	Amount     string     `json:"amount"`
	To         string     `json:"to"`
	From       string     `json:"from"`
	Payment    Payment    `json:"payment"`
	Items      []Item     `json:"items"`
	Subtotals  []Subtotal `json:"subtotals"`
	CustomerIP string     `json:"customerIp"`
	Billing    Billing    `json:"billing"`
	Upsell     Upsell     `json:"upsell"`
}

type Payment struct {
	Type  string `json:"type"`
	Last4 string `json:"last4"`
}

type Item struct {
	Reference    string `json:"reference"`
	Description  string `json:"description"`
	Quantity     int    `json:"quantity"`
	Amount       string `json:"amount"`
	DownloadURLs []Meta `json:"downloadUrls,omitempty"`
	Metas        []Meta `json:"metas,omitempty"`
}

// Meta is a free-form key/value attached to an item, e.g. a license key
// or a download link.
type Meta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Subtotal struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type Billing struct {
	Address Address `json:"address"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
}

// Address fields default to empty strings, never null.
type Address struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Company      string `json:"company"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
}

type Upsell struct {
	Products []RelatedProduct `json:"products"`
}

// RelatedProduct is a recommendation shown below the receipt.
type RelatedProduct struct {
	Title       string `json:"title"`
	ActionURL   string `json:"actionUrl"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// ProductData is the payload for PUT /products/{id} and each element of
// the POST /products bulk body.
type ProductData struct {
	ProductID   string    `json:"product_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hidden      bool      `json:"hidden"`
	URL         string    `json:"url"`
	Images      []Image   `json:"images"`
	Tags        []string  `json:"tags"`
	Categories  []Category `json:"categories"`
	Variants    []Variant `json:"variants"`
}

type Image struct {
	Position int    `json:"position"`
	URL      string `json:"url"`
}

type Category struct {
	CategoryID  string `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Variant struct {
	Price float64 `json:"price"`
}

// ReceiptResponse is the body returned on a successful receipt create.
type ReceiptResponse struct {
	ID   string `json:"_id"`
	Meta struct {
		Links struct {
			Webview string `json:"webview"`
		} `json:"links"`
	} `json:"_meta"`
	Upsell *UpsellOffer `json:"upsell"`
}

// UpsellOffer describes a discount offer the remote service attached to
// a freshly created receipt.
type UpsellOffer struct {
	UpsellType   string  `json:"upsellType"`
	CouponCode   string  `json:"couponCode"`
	CouponType   int     `json:"couponType"`
	Amount       float64 `json:"amount"`
	ExpiryPeriod int     `json:"expiryPeriod"`
	EmailLimit   bool    `json:"emailLimit"`
}

// BulkResponse enumerates per-item failures of a bulk upload. Items not
// listed were accepted.
type BulkResponse struct {
	Errors []BulkError `json:"errors"`
}

type BulkError struct {
	Error BulkErrorDetail `json:"error"`
}

type BulkErrorDetail struct {
	ProductID string `json:"product_id"`
	Reference string `json:"reference"`
}

type UserResponse struct {
	PublicKey string `json:"publicKey"`
}

// Outcome buckets every API call lands in exactly one of.
type Outcome string

const (
	Success          Outcome = "success"
	TransientFailure Outcome = "transient_failure"
	PermanentFailure Outcome = "permanent_failure"
	TransportFailure Outcome = "transport_failure"
)

// Result is the uniform shape every call returns. Code and Body are only
// set when an HTTP response was received; Err only for transport errors.
type Result struct {
	Outcome Outcome
	Code    int
	Body    []byte
	Err     error
}

// Retryable reports whether the call should be attempted again later.
func (r *Result) Retryable() bool {
	return r.Outcome == TransientFailure || r.Outcome == TransportFailure
}

// DecodeReceipt parses the body of a successful receipt call.
func (r *Result) DecodeReceipt() (*ReceiptResponse, error) {
	var resp ReceiptResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DecodeBulk parses the body of a successful bulk call.
func (r *Result) DecodeBulk() (*BulkResponse, error) {
	var resp BulkResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Classify maps an HTTP status code onto an outcome: 2xx success codes
// are accepted, 401/500/503 are worth retrying (auth hiccup or server
// overload), everything else means the payload or id will never be
// accepted.
func Classify(code int) Outcome {
	switch code {
	case 200, 201, 202, 204:
		return Success
	case 401, 500, 503:
		return TransientFailure
	default:
		return PermanentFailure
	}
}
