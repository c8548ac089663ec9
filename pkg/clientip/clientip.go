package clientip

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders covers Cloudflare, common reverse proxies and nginx.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Config lists the trusted forwarding headers, highest priority first.
type Config struct {
	Headers []string `env:"CLIENT_IP_HEADERS" envSeparator:"," envDefault:"CF-Connecting-IP,X-Forwarded-For,X-Real-IP"`
}

// Resolver extracts the client address from a request.
type Resolver struct {
	headers []string
}

// New returns a Resolver for cfg. An empty header list uses DefaultHeaders.
func New(cfg Config) *Resolver {
	headers := cfg.Headers
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{headers: out}
}

// IP returns the first valid address found, or "" when there is none.
// For list headers such as X-Forwarded-For the left-most valid entry wins.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		for part := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := parse(part); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

// Middleware stores the resolved address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}

type contextKey struct{}

// ContextKey is the key the address is stored under, for logger context
// extractors.
func ContextKey() any { return contextKey{} }

// WithContext returns ctx carrying ip.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the address stored by Middleware.
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}
