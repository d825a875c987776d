// Package edge forwards public API traffic to the internal API process.
package edge

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/utils"
)

// AllowedPrefixes are the first path segments that may reach the API.
var AllowedPrefixes = map[string]bool{
	"auth":         true,
	"titles":       true,
	"media":        true,
	"profile":      true,
	"favorites":    true,
	"metadata":     true,
	"team-members": true,
}

// NewUpstreamClient returns the client used to reach the API. Redirects are
// handed back to the browser untouched.
func NewUpstreamClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = 30 * time.Second
	transport.MaxIdleConnsPerHost = 32

	return &http.Client{
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Proxy relays requests under Prefix to the API base URL.
type Proxy struct {
	base   *url.URL
	prefix string
	client *http.Client
}

func NewProxy(baseURL, prefix string, client *http.Client) (*Proxy, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q", baseURL)
	}
	if client == nil {
		client = NewUpstreamClient()
	}
	return &Proxy{
		base:   base,
		prefix: "/" + strings.Trim(prefix, "/"),
		client: client,
	}, nil
}

// Register mounts the proxy on r for every method.
func (p *Proxy) Register(r gin.IRoutes) {
	r.Any(p.prefix, p.Handle)
	r.Any(p.prefix+"/*path", p.Handle)
}

func (p *Proxy) Handle(c *gin.Context) {
	rest := strings.Trim(strings.TrimPrefix(c.Request.URL.EscapedPath(), p.prefix), "/")
	if rest == "" {
		utils.Error(c, http.StatusBadRequest, "path is required")
		return
	}
	first, _, _ := strings.Cut(rest, "/")
	if !AllowedPrefixes[first] {
		utils.Error(c, http.StatusNotFound, "not found")
		return
	}

	target, err := url.Parse(p.base.String() + "/" + rest)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid path")
		return
	}
	target.RawQuery = c.Request.URL.RawQuery

	var body io.Reader
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		body = c.Request.Body
	}
	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target.String(), body)
	if err != nil {
		utils.RenderError(c, utils.Upstream(err))
		return
	}
	copyHeaders(req.Header, c.Request.Header)
	req.Host = target.Host

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Warningf("[Edge] %s %s: %v", c.Request.Method, target.Path, err)
		utils.RenderError(c, utils.Upstream(err))
		return
	}
	defer resp.Body.Close()

	copyHeaders(c.Writer.Header(), resp.Header)
	c.Status(resp.StatusCode)
	c.Writer.WriteHeaderNow()
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		logger.Debugf("[Edge] stream aborted for %s: %v", target.Path, err)
	}
}

// copyHeaders appends every header except Content-Length. Lengths are
// recomputed for the hop that actually carries the body.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if strings.EqualFold(key, "Content-Length") {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}
