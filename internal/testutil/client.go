package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// Client drives a Fiber app like a browser would, carrying cookies from one
// request to the next. Redirects are not followed.
type Client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

type Response struct {
	Status   int
	Location string
	Body     []byte
}

// Page is the JSON envelope of a rendered view.
type Page struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Flashes []string        `json:"flashes"`
}

func NewClient(t *testing.T, app *fiber.App) *Client {
	return &Client{t: t, app: app, cookies: make(map[string]*http.Cookie)}
}

func (c *Client) Get(path string) Response {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *Client) PostForm(path string, form url.Values, headers ...string) Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return c.do(req)
}

// Page fetches path and decodes the view envelope.
func (c *Client) Page(path string) Page {
	c.t.Helper()
	resp := c.Get(path)
	require.Equal(c.t, fiber.StatusOK, resp.Status, "GET %s redirected to %q", path, resp.Location)

	var page Page
	require.NoError(c.t, json.Unmarshal(resp.Body, &page))
	return page
}

// Cookie returns the current value of the named cookie.
func (c *Client) Cookie(name string) string {
	if cookie, ok := c.cookies[name]; ok {
		return cookie.Value
	}
	return ""
}

func (c *Client) do(req *http.Request) Response {
	c.t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	for _, cookie := range resp.Cookies() {
		expired := !cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())
		if cookie.MaxAge < 0 || cookie.Value == "" || expired {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}

	return Response{
		Status:   resp.StatusCode,
		Location: resp.Header.Get(fiber.HeaderLocation),
		Body:     body,
	}
}
