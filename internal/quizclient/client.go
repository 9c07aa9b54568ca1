// Package quizclient is a typed client for the quiz HTTP API. GET responses
// are cached by path and query for a stale window; mutations drop the cached
// queries they affect.
package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/pastorprompt/internal/logger"
	"github.com/vytor/pastorprompt/internal/models"
)

// DefaultStaleTime is how long a cached GET response is served without refetching.
const DefaultStaleTime = 60 * time.Second

const maxResponseBytes = 4 << 20

const (
	foldersKey = "/api/folders"
	storiesKey = "/api/stories"
	statsKey   = "/api/stats"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *responseCache
	log        *logger.Logger
}

type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	staleTime  time.Duration
	now        func() time.Time
}

// WithHTTPClient replaces the default client, which has a 15s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithStaleTime sets the cache window. Zero disables caching.
func WithStaleTime(d time.Duration) Option {
	return func(o *clientOptions) { o.staleTime = d }
}

// WithClock replaces time.Now for cache ageing.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) { o.now = now }
}

func New(baseURL string, opts ...Option) *Client {
	o := clientOptions{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		staleTime:  DefaultStaleTime,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: o.httpClient,
		cache:      newResponseCache(o.staleTime, o.now),
		log:        logger.Default().WithPrefix("quizclient"),
	}
}

// NewSessionID returns a fresh opaque player id.
func NewSessionID() string {
	return uuid.NewString()
}

// Invalidate drops every cached response.
func (c *Client) Invalidate() {
	c.cache.clear()
}

func (c *Client) ListFolders(ctx context.Context, search string) ([]models.FolderWithStoryCount, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var out []models.FolderWithStoryCount
	if err := c.get(ctx, foldersKey, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	var out models.Folder
	if err := c.get(ctx, foldersKey+"/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	var out models.Folder
	err := c.send(ctx, http.MethodPost, foldersKey, map[string]string{"name": name}, &out, foldersKey, storiesKey)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error) {
	var out models.Folder
	path := foldersKey + "/" + strconv.FormatInt(id, 10)
	if err := c.send(ctx, http.MethodPut, path, map[string]string{"name": name}, &out, foldersKey, storiesKey); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	path := foldersKey + "/" + strconv.FormatInt(id, 10)
	return c.send(ctx, http.MethodDelete, path, nil, nil, foldersKey, storiesKey, statsKey)
}

func (c *Client) ListStories(ctx context.Context, folderID int64) ([]models.Story, error) {
	var out []models.Story
	if err := c.get(ctx, storiesKey, folderQuery(folderID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStory(ctx context.Context, id int64) (*models.Story, error) {
	var out models.Story
	if err := c.get(ctx, storiesKey+"/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RandomStory is never cached: each call should draw a new story.
func (c *Client) RandomStory(ctx context.Context, folderID int64) (*models.Story, error) {
	path := storiesKey + "/random"
	if q := folderQuery(folderID).Encode(); q != "" {
		path += "?" + q
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out models.Story
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &out, nil
}

func (c *Client) CreateStory(ctx context.Context, folderID int64, fields models.StoryFields) (*models.Story, error) {
	var out models.Story
	path := fmt.Sprintf("%s/%d/stories", foldersKey, folderID)
	if err := c.send(ctx, http.MethodPost, path, fields, &out, storiesKey, foldersKey, statsKey); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStory(ctx context.Context, id int64, folderID *int64, fields models.StoryFields) (*models.Story, error) {
	body := struct {
		models.StoryFields
		FolderID *int64 `json:"folder_id,omitempty"`
	}{StoryFields: fields, FolderID: folderID}

	var out models.Story
	path := storiesKey + "/" + strconv.FormatInt(id, 10)
	if err := c.send(ctx, http.MethodPut, path, body, &out, storiesKey, foldersKey, statsKey); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteStory(ctx context.Context, id int64) error {
	path := storiesKey + "/" + strconv.FormatInt(id, 10)
	return c.send(ctx, http.MethodDelete, path, nil, nil, storiesKey, foldersKey, statsKey)
}

func (c *Client) RecordAttempt(ctx context.Context, input models.AttemptInput) (*models.UserAttempt, error) {
	var out models.UserAttempt
	if err := c.send(ctx, http.MethodPost, "/api/attempt", input, &out, statsKey); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserStats(ctx context.Context, userID string, folderID int64) (*models.UserStats, error) {
	q := folderQuery(folderID)
	q.Set("userId", userID)
	var out models.UserStats
	if err := c.get(ctx, statsKey+"/user", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StoryStats(ctx context.Context, folderID int64) ([]models.StoryStats, error) {
	var out []models.StoryStats
	if err := c.get(ctx, statsKey+"/stories", folderQuery(folderID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Summary(ctx context.Context) (*models.Summary, error) {
	var out models.Summary
	if err := c.get(ctx, statsKey+"/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func folderQuery(folderID int64) url.Values {
	q := url.Values{}
	if folderID > 0 {
		q.Set("folder", strconv.FormatInt(folderID, 10))
	}
	return q
}

// get serves from cache when fresh, fetching and caching otherwise.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	key := path
	if enc := query.Encode(); enc != "" {
		key += "?" + enc
	}

	log := logger.FromContext(ctx).WithPrefix("quizclient")
	body, ok := c.cache.get(key)
	if ok {
		log.Debug("cache hit: %s", key)
	} else {
		gen := c.cache.generation()
		var err error
		if body, err = c.do(ctx, http.MethodGet, key, nil); err != nil {
			return err
		}
		c.cache.put(key, body, gen)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// send performs a mutation and, on success, drops cached queries under the
// given prefixes.
func (c *Client) send(ctx context.Context, method, path string, in, dst any, invalidate ...string) error {
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}

	if n := c.cache.invalidate(invalidate...); n > 0 {
		logger.FromContext(ctx).WithPrefix("quizclient").Debug("invalidated %d cached queries after %s %s", n, method, path)
	}

	if dst == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("quizclient").WithField("path", path)

	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("%s %s", method, path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("failed to read response: %v", err)
		return nil, err
	}

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, body)
		if resp.StatusCode >= 500 {
			log.Error("request failed: %v", apiErr)
		} else {
			log.Debug("request rejected: %v", apiErr)
		}
		return nil, apiErr
	}
	return body, nil
}
