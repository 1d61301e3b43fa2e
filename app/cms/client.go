package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"spacetraveling/app/models"
)

// Ordering directions for paged queries. The position they order around
// is interpreted by the content API, not by this client.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// QueryOptions narrows a paged document search. Cursor is the opaque
// next-page token from a previous Page; After positions the query
// immediately after the named document in publication order.
type QueryOptions struct {
	Order    string
	PageSize int
	After    string
	Cursor   string
	Fields   []string
}

// GetOptions modifies a fetch-by-identity. A non-empty PreviewRef asks
// the API for the unpublished preview variant of the document.
type GetOptions struct {
	PreviewRef string
}

// Page is one page of listing results plus the opaque cursor for the
// next page. An empty NextCursor means there are no further results.
type Page struct {
	Results    []models.PostSummary `json:"results"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

// Fetcher is the paged-query contract the services consume. Client
// satisfies it against the live API; cache.CachedFetcher wraps one.
type Fetcher interface {
	Query(ctx context.Context, docType string, opts QueryOptions) (*Page, error)
	GetByUID(ctx context.Context, docType, uid string, opts GetOptions) (*models.PostDetail, error)
}

// Client talks to the headless content API over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the API rooted at baseURL. The token
// may be empty for public repositories.
func NewClient(baseURL, token string) *Client {
	return NewClientWithHTTP(baseURL, token, http.DefaultClient)
}

// NewClientWithHTTP creates a Client using the given http.Client.
func NewClientWithHTTP(baseURL, token string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    hc,
	}
}

// Query runs one paged document search. The cursor in opts is passed
// through to the API unmodified and the one in the result comes back
// the same way; this client never interprets it.
func (c *Client) Query(ctx context.Context, docType string, opts QueryOptions) (*Page, error) {
	params := url.Values{}
	params.Set("type", docType)
	if opts.Order != "" {
		params.Set("order", opts.Order)
	}
	if opts.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.After != "" {
		params.Set("after", opts.After)
	}
	if opts.Cursor != "" {
		params.Set("cursor", opts.Cursor)
	}
	if len(opts.Fields) > 0 {
		params.Set("fields", strings.Join(opts.Fields, ","))
	}

	var raw rawSearchResponse
	if err := c.get(ctx, "/documents/search", params, &raw); err != nil {
		return nil, err
	}

	page := &Page{
		Results:    make([]models.PostSummary, 0, len(raw.Results)),
		NextCursor: raw.NextPage,
	}
	for _, doc := range raw.Results {
		summary, err := mapSummary(doc)
		if err != nil {
			return nil, &FetchError{Op: "query " + docType, Err: err}
		}
		page.Results = append(page.Results, summary)
	}

	return page, nil
}

// GetByUID fetches a single document by identity. A 404 from the API
// surfaces as NotFoundError.
func (c *Client) GetByUID(ctx context.Context, docType, uid string, opts GetOptions) (*models.PostDetail, error) {
	params := url.Values{}
	if opts.PreviewRef != "" {
		params.Set("ref", opts.PreviewRef)
	}

	var raw rawDocument
	err := c.get(ctx, "/documents/"+docType+"/"+uid, params, &raw)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, &NotFoundError{Type: docType, UID: uid}
		}
		return nil, err
	}

	detail, err := mapDetail(raw)
	if err != nil {
		return nil, &FetchError{Op: "get " + docType + "/" + uid, Err: err}
	}

	return detail, nil
}

// get issues one API request and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, path string, params url.Values, dst interface{}) error {
	if c.token != "" {
		params.Set("access_token", c.token)
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Op: "build request " + path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Op: "get " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: "get " + path, Err: &statusError{code: resp.StatusCode}}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &FetchError{Op: "decode " + path, Err: err}
	}

	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.code)
}
