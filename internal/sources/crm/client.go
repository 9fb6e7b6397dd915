// Package crm is the HTTP client for the capture CRM's REST API. It covers
// the four capabilities the core needs: listing courses, contacts, and
// locations, and bulk-upserting courses and contacts. Read listings can be
// memoized through an injected TTL cache; upserts invalidate the affected
// listing.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/campusmedia/capsync/internal/cache"
	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/errors"
	"github.com/campusmedia/capsync/pkg/logging"
)

// DefaultTimeout bounds each CRM HTTP request.
const DefaultTimeout = 60 * time.Second

const (
	cacheKeyCourses   = "crm:courses"
	cacheKeyContacts  = "crm:contacts"
	cacheKeyLocations = "crm:locations"
)

// Client talks to the capture CRM. It satisfies sync.CRM.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   *cache.Cache // nil disables memoization
	ttl     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCache memoizes read listings for the given TTL.
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.ttl = ttl
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) {
		cl.http = h
	}
}

// New creates a CRM client for the given base URL and bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	cl := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// Courses lists all CRM course records.
func (c *Client) Courses(ctx context.Context) ([]capture.CourseRecord, error) {
	if cached, ok := c.cache.Get(cacheKeyCourses); ok {
		return cached.([]capture.CourseRecord), nil
	}

	var list recordList[courseObject]
	if err := c.get(ctx, "/objects/courses", &list); err != nil {
		return nil, err
	}

	records := make([]capture.CourseRecord, 0, len(list.Records))
	for _, obj := range list.Records {
		records = append(records, fromCourseObject(obj))
	}

	c.cache.SetWithTTL(cacheKeyCourses, records, c.ttl)
	return records, nil
}

// Contacts lists all CRM contact records.
func (c *Client) Contacts(ctx context.Context) ([]capture.ContactRecord, error) {
	if cached, ok := c.cache.Get(cacheKeyContacts); ok {
		return cached.([]capture.ContactRecord), nil
	}

	var list recordList[contactObject]
	if err := c.get(ctx, "/objects/contacts", &list); err != nil {
		return nil, err
	}

	records := make([]capture.ContactRecord, 0, len(list.Records))
	for _, obj := range list.Records {
		records = append(records, fromContactObject(obj))
	}

	c.cache.SetWithTTL(cacheKeyContacts, records, c.ttl)
	return records, nil
}

// Locations lists all CRM locations with their capture-capability flags.
func (c *Client) Locations(ctx context.Context) ([]capture.Location, error) {
	if cached, ok := c.cache.Get(cacheKeyLocations); ok {
		return cached.([]capture.Location), nil
	}

	var list recordList[locationObject]
	if err := c.get(ctx, "/objects/locations", &list); err != nil {
		return nil, err
	}

	locations := make([]capture.Location, 0, len(list.Records))
	for _, obj := range list.Records {
		locations = append(locations, fromLocationObject(obj))
	}

	c.cache.SetWithTTL(cacheKeyLocations, locations, c.ttl)
	return locations, nil
}

// UpsertCourses writes a course batch. Results are positional with the
// input batch; the caller decides how to treat per-record failures.
func (c *Client) UpsertCourses(ctx context.Context, records []capture.CourseRecord) ([]capture.UpsertResult, error) {
	payload := recordList[courseObject]{Records: make([]courseObject, 0, len(records))}
	for _, rec := range records {
		payload.Records = append(payload.Records, toCourseObject(rec))
	}

	results, err := c.upsert(ctx, "/objects/courses/upsert", payload, len(records), func(i int) any {
		return records[i]
	})
	if err != nil {
		return nil, err
	}

	c.cache.Delete(cacheKeyCourses)
	return results, nil
}

// UpsertContacts writes a contact batch.
func (c *Client) UpsertContacts(ctx context.Context, records []capture.ContactRecord) ([]capture.UpsertResult, error) {
	payload := recordList[contactObject]{Records: make([]contactObject, 0, len(records))}
	for _, rec := range records {
		payload.Records = append(payload.Records, toContactObject(rec))
	}

	results, err := c.upsert(ctx, "/objects/contacts/upsert", payload, len(records), func(i int) any {
		return records[i]
	})
	if err != nil {
		return nil, err
	}

	c.cache.Delete(cacheKeyContacts)
	return results, nil
}

// get performs an authenticated GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.WrapAPI(path, 0, err)
	}

	return c.do(req, path, target)
}

// upsert performs an authenticated POST of a record batch and maps the
// response to positional UpsertResults. originalRecord recovers the domain
// payload for failed entries.
func (c *Client) upsert(ctx context.Context, path string, payload any, n int, originalRecord func(int) any) ([]capture.UpsertResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WrapAPI(path, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapAPI(path, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp upsertResponse
	if err := c.do(req, path, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) > n {
		return nil, errors.NewAPIError(path, http.StatusOK, "response has more results than records sent")
	}

	results := make([]capture.UpsertResult, 0, len(resp.Results))
	for i, res := range resp.Results {
		result := capture.UpsertResult{
			Success: res.Success,
			ID:      res.ID,
			Message: res.Message,
		}
		if !res.Success {
			result.Record = originalRecord(i)
			logging.Ctx(req.Context()).Error().
				Str("path", path).
				Str("message", res.Message).
				Msg("record rejected by CRM")
		}
		results = append(results, result)
	}

	logging.Ctx(req.Context()).Debug().
		Str("path", path).
		Int("records", len(results)).
		Msg("upsert batch sent")

	return results, nil
}

// do executes a request with auth headers and decodes the response body.
func (c *Client) do(req *http.Request, path string, target any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapAPI(path, 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.NewAPIError(path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.WrapAPI(path, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
