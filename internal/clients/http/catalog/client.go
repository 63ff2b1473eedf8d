package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound reports a protocol-level 404: the catalog endpoint itself was
// not there. A 404 that carries a Problem Details document means the catalog
// answered and simply has no such book; GetBookByISBN reports that as
// (nil, nil) instead.
var ErrNotFound = errors.New("catalog endpoint not found")

const contentTypeProblemJSON = "application/problem+json"

// Book is the wire payload returned by the catalog service.
type Book struct {
	ISBN   string  `json:"isbn"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
}

// Client calls the catalog service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the catalog client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// GetBookByISBN fetches the book metadata for an ISBN. It returns (nil, nil)
// when the catalog cleanly reports the ISBN as unknown.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("catalog client not configured")
	}
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, errors.New("isbn is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/books/"+isbn, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call catalog API: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		var payload Book
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode catalog response: %w", err)
		}
		return &payload, nil
	case res.StatusCode == http.StatusNoContent:
		return nil, nil
	case res.StatusCode == http.StatusNotFound:
		if isProblemResponse(res) {
			// The catalog answered: no book with this ISBN.
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, res.Status)
	default:
		return nil, fmt.Errorf("catalog API error: %s", res.Status)
	}
}

func isProblemResponse(res *http.Response) bool {
	contentType := strings.ToLower(strings.TrimSpace(res.Header.Get("Content-Type")))
	return strings.HasPrefix(contentType, contentTypeProblemJSON)
}
