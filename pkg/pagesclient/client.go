// Package pagesclient talks to the page builder API over HTTP. Client
// satisfies builder.Backend, so a builder session can drive a remote server.
package pagesclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"page-builder-backend/internal/builder"
	"page-builder-backend/internal/models"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "page-builder-backend/pagesclient"
)

var _ builder.Backend = (*Client)(nil)

// APIError is a non-2xx reply. It unwraps to the model error named by Code,
// so callers can use errors.Is(err, models.ErrOrderIndexConflict).
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("page builder api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("page builder api: %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return models.ErrorForCode(e.Code)
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 15s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	apiErr := &APIError{Status: status}
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Code = payload.Code
		apiErr.Message = strings.TrimSpace(payload.Error)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func pagePath(id uint) string {
	return "/api/pages/" + strconv.FormatUint(uint64(id), 10)
}

func sectionPath(id uint) string {
	return "/api/sections/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) ListPages(ctx context.Context) ([]models.Page, error) {
	var out struct {
		Pages []models.Page `json:"pages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/pages", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Pages, nil
}

func (c *Client) GetPage(ctx context.Context, id uint) (models.Page, error) {
	var out struct {
		Page models.Page `json:"page"`
	}
	if err := c.do(ctx, http.MethodGet, pagePath(id), nil, nil, &out); err != nil {
		return models.Page{}, err
	}
	out.Page.SortSections()
	return out.Page, nil
}

func (c *Client) GetPageSections(ctx context.Context, pageID uint) ([]models.Section, error) {
	var out struct {
		Sections []models.Section `json:"sections"`
	}
	if err := c.do(ctx, http.MethodGet, pagePath(pageID)+"/sections", nil, nil, &out); err != nil {
		return nil, err
	}
	models.SortSections(out.Sections)
	return out.Sections, nil
}

func (c *Client) CreatePage(ctx context.Context, in models.PageInput) (models.Page, error) {
	var out struct {
		Page models.Page `json:"page"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/pages", nil, in, &out); err != nil {
		return models.Page{}, err
	}
	out.Page.SortSections()
	return out.Page, nil
}

func (c *Client) UpdatePage(ctx context.Context, id uint, in models.PageInput) (models.Page, error) {
	in.Sections = nil
	var out struct {
		Page models.Page `json:"page"`
	}
	if err := c.do(ctx, http.MethodPut, pagePath(id), nil, in, &out); err != nil {
		return models.Page{}, err
	}
	out.Page.SortSections()
	return out.Page, nil
}

func (c *Client) DeletePage(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, pagePath(id), nil, nil, nil)
}

func (c *Client) CreateSection(ctx context.Context, pageID uint, in models.SectionInput) (models.Section, error) {
	var out struct {
		Section models.Section `json:"section"`
	}
	if err := c.do(ctx, http.MethodPost, pagePath(pageID)+"/sections", nil, in, &out); err != nil {
		return models.Section{}, err
	}
	return out.Section, nil
}

func (c *Client) UpdateSection(ctx context.Context, id uint, in models.SectionInput) error {
	return c.do(ctx, http.MethodPut, sectionPath(id), nil, in, nil)
}

func (c *Client) DeleteSection(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, sectionPath(id), nil, nil, nil)
}

func (c *Client) ReorderSections(ctx context.Context, pageID uint, refs []models.SectionRef) error {
	body := struct {
		Sections []models.SectionRef `json:"sections"`
	}{Sections: refs}
	return c.do(ctx, http.MethodPost, pagePath(pageID)+"/sections/reorder", nil, body, nil)
}

func (c *Client) CheckSlugAvailable(ctx context.Context, slug string, excludeID *uint) (bool, error) {
	query := url.Values{"slug": {slug}}
	if excludeID != nil {
		query.Set("excludeId", strconv.FormatUint(uint64(*excludeID), 10))
	}
	var out struct {
		Available bool `json:"available"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/pages/slug-available", query, nil, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

func (c *Client) GetPublicPage(ctx context.Context, slug string) (models.Page, error) {
	var out struct {
		Page models.Page `json:"page"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/public/pages/"+url.PathEscape(slug), nil, nil, &out); err != nil {
		return models.Page{}, err
	}
	return out.Page, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	var out struct {
		Category models.Category `json:"category"`
	}
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/categories", nil, body, &out); err != nil {
		return models.Category{}, err
	}
	return out.Category, nil
}

// ListMedia returns one page of the media library and the total match count.
func (c *Client) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.MediaItem, int64, error) {
	query := url.Values{}
	if filter.Folder != "" {
		query.Set("folder", filter.Folder)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var out struct {
		Media []models.MediaItem `json:"media"`
		Total int64              `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/media", query, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Media, out.Total, nil
}

func (c *Client) GetMedia(ctx context.Context, id uint) (models.MediaItem, error) {
	var out struct {
		Media models.MediaItem `json:"media"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/media/"+strconv.FormatUint(uint64(id), 10), nil, nil, &out); err != nil {
		return models.MediaItem{}, err
	}
	return out.Media, nil
}

// UploadMedia sends src as the multipart "file" field.
func (c *Client) UploadMedia(ctx context.Context, filename string, src io.Reader, folder, alt string) (models.MediaItem, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return models.MediaItem{}, err
	}
	if _, err := io.Copy(part, src); err != nil {
		return models.MediaItem{}, fmt.Errorf("read upload: %w", err)
	}
	if folder != "" {
		if err := writer.WriteField("folder", folder); err != nil {
			return models.MediaItem{}, err
		}
	}
	if alt != "" {
		if err := writer.WriteField("alt", alt); err != nil {
			return models.MediaItem{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return models.MediaItem{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/media", nil), &buf)
	if err != nil {
		return models.MediaItem{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		Media models.MediaItem `json:"media"`
	}
	if err := c.send(req, &out); err != nil {
		return models.MediaItem{}, err
	}
	return out.Media, nil
}
