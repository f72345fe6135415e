package flickr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/shutter/internal/domain"
)

const (
	// DefaultBaseURL is the Flickr REST endpoint
	DefaultBaseURL = "https://api.flickr.com/services/rest/"

	defaultTimeout = 30 * time.Second
	userAgent      = "Shutter/1.0"

	methodSearch  = "flickr.photos.search"
	methodGetInfo = "flickr.photos.getInfo"
)

// HTTPDoer performs a fully formed request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds the endpoint settings of the API client
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // Used only when no HTTPDoer is supplied
}

// Client implements domain.PhotoRepository for the Flickr REST API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	doer     HTTPDoer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewClient creates a new Flickr API client
func NewClient(cfg ClientConfig, doer HTTPDoer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		doer:     doer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Search returns one page of photos matching query
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (*domain.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewAPIError(domain.ErrKindInvalidRequest, errors.New("empty search query"))
	}
	if !utf8.ValidString(query) {
		return nil, domain.NewAPIError(domain.ErrKindInvalidRequest, errors.New("search query is not valid UTF-8"))
	}
	if page < 1 || pageSize < 1 {
		return nil, domain.NewAPIError(domain.ErrKindInvalidRequest,
			fmt.Errorf("page %d and page size %d must be positive", page, pageSize))
	}

	params := url.Values{}
	params.Set("text", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))

	body, err := c.doRequest(ctx, methodSearch, params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	result, err := MapSearchResponse(&resp, pageSize)
	if err != nil {
		c.logger.Error("search page mapping failed", "error", err, "query", query)
		return nil, domain.NewAPIError(domain.ErrKindDecode, err)
	}
	c.logger.Debug("search complete",
		"query", query,
		"page", result.Page.PageNumber,
		"pages", result.Page.TotalPages,
		"count", len(result.Items),
	)
	return result, nil
}

// GetDetail returns the full metadata of a photo
func (c *Client) GetDetail(ctx context.Context, photoID string) (*domain.PhotoDetail, error) {
	if photoID == "" {
		return nil, domain.NewAPIError(domain.ErrKindInvalidRequest, errors.New("empty photo id"))
	}

	params := url.Values{}
	params.Set("photo_id", photoID)

	body, err := c.doRequest(ctx, methodGetInfo, params)
	if err != nil {
		return nil, err
	}

	var resp InfoResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	detail, err := MapPhotoInfo(resp.Photo)
	if err != nil {
		c.logger.Error("photo info mapping failed", "error", err, "photoID", photoID)
		return nil, domain.NewAPIError(domain.ErrKindDecode, err)
	}
	return detail, nil
}

// doRequest issues a GET for method with the common parameters added.
// Every failure is returned as a *domain.APIError.
func (c *Client) doRequest(ctx context.Context, method string, params url.Values) ([]byte, error) {
	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, domain.NewAPIError(domain.ErrKindInvalidRequest, fmt.Errorf("parse base url: %w", err))
	}

	query := reqURL.Query()
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")
	query.Set("nojsoncallback", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, domain.NewAPIError(domain.ErrKindInvalidRequest, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// params never carry the key, so they are safe to log
	c.logger.Debug("flickr request", "method", method, "params", params.Encode())

	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Error("flickr request failed", "method", method, "error", err)
		return nil, domain.NewAPIError(domain.ErrKindTransport, err)
	}
	if resp == nil {
		return nil, domain.NewAPIError(domain.ErrKindUnknown, errors.New("nil response without error"))
	}
	defer resp.Body.Close()

	// A response arrived, so its status decides the error kind
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("flickr request error", "method", method, "status", resp.StatusCode)
		return nil, domain.NewStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewAPIError(domain.ErrKindTransport, fmt.Errorf("read response: %w", err))
	}

	return body, nil
}

// decode parses body into dest and checks required fields.
// A stat=fail body surfaces the service's own message.
func (c *Client) decode(body []byte, dest any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return domain.NewAPIError(domain.ErrKindDecode, err)
	}
	if env.Stat == "fail" {
		return domain.NewAPIError(domain.ErrKindDecode, &FailResponse{Code: env.Code, Message: env.Message})
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return domain.NewAPIError(domain.ErrKindDecode, err)
	}
	if err := c.validate.Struct(dest); err != nil {
		c.logger.Error("response failed validation", "error", err)
		return domain.NewAPIError(domain.ErrKindDecode, err)
	}
	return nil
}
