// Package gateway реализует клиент REST API бэкенда Denormies.
//
// Каждому эндпоинту соответствует отдельный метод. Клиент не интерпретирует
// токен сессии: он только подставляет его в заголовок Authorization.
// Ответы с кодами не из диапазона 2xx превращаются в *APIError, сетевые
// сбои оборачиваются в ErrTransport.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Credentials — носитель bearer-токена. Реализуется сессией.
type Credentials interface {
	Token() string
}

// Client — HTTP клиент бэкенда.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client, например для тестов.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics включает сбор метрик по запросам к бэкенду.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New создаёт клиент бэкенда с базовым адресом baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, creds Credentials, body any) (*http.Request, error) {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if creds != nil {
		if token := creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do выполняет запрос и декодирует тело успешного ответа в out.
// route — шаблон пути для метрик, например "/events/register/:id".
func (c *Client) do(ctx context.Context, method, route, path string, creds Credentials, body, out any) (int, error) {
	req, err := c.newRequest(ctx, method, path, creds, body)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, route, 0, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrTransport, ctxErr)
		}
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	c.metrics.observe(method, route, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &APIError{
			Status: resp.StatusCode,
			Detail: decodeDetail(raw, resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// decodeDetail достаёт поле detail из тела ошибки. Бэкенд отдаёт либо строку,
// либо список ошибок валидации; во втором случае берётся первое сообщение.
func decodeDetail(raw []byte, status int) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil && s != "" {
			return s
		}
		var list []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &list); err == nil && len(list) > 0 && list[0].Msg != "" {
			return list[0].Msg
		}
	}
	return http.StatusText(status)
}

// IsTransport сообщает, что запрос не дошёл до бэкенда или ответ не был прочитан.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
