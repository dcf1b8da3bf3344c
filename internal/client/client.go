package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"go-seating-client/config"
	apperrors "go-seating-client/pkg/app_errors"
	"go-seating-client/pkg/logger"

	"go.uber.org/zap"
)

// Response 只保留流程需要的部分：狀態碼與 Location header
type Response struct {
	StatusCode int
	Location   string
}

type Requester interface {
	// 送出不帶 body 的請求，path 相對於 base URL
	Send(ctx context.Context, method, path string) (*Response, error)
}

type Navigator interface {
	// 載入目標頁面，取代目前的頁面
	Navigate(ctx context.Context, target *url.URL) error
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient 替換底層的 http.Client（測試時使用 httptest server 的 client）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(cfg config.SeatingConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %v", apperrors.ErrInvalidInput, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base url %q is not absolute", apperrors.ErrInvalidInput, cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if cfg.SessionCookie != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: cfg.SessionCookieName, Value: cfg.SessionCookie, Path: "/"}})
	}

	// 不設定 Timeout：請求的生命週期只由 ctx 決定
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		c.httpClient.Jar = jar
	}
	return c, nil
}

func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Resolve 將相對路徑（可含 query）解析為完整 URL
func (c *Client) Resolve(ref string) (*url.URL, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return c.baseURL.ResolveReference(r), nil
}

func (c *Client) Send(ctx context.Context, method, path string) (*Response, error) {
	log := logger.WithComponent("client").With(zap.String("method", method), zap.String("path", path))

	target, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("Request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()
	// 讀完 body 讓連線可以重複使用
	_, _ = io.Copy(io.Discard, resp.Body)

	log.Debug("Request completed", zap.Int("status", resp.StatusCode))

	return &Response{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get("Location"),
	}, nil
}

// Fetch 以 GET 取得頁面，回傳 body 與跟隨 redirect 後的最終 URL。
// 呼叫端負責關閉 body。
func (c *Client) Fetch(ctx context.Context, target *url.URL) (io.ReadCloser, *url.URL, error) {
	log := logger.WithComponent("client").With(zap.String("url", target.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("Fetch failed", zap.Error(err))
		return nil, nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		log.Warn("Fetch returned unexpected status", zap.Int("status", resp.StatusCode))
		return nil, nil, fmt.Errorf("%w: GET %s returned %d", apperrors.ErrUnexpectedStatus, target, resp.StatusCode)
	}

	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	return resp.Body, final, nil
}
