package middleware

import (
	"net"
	"net/http"
	"strings"

	ua "github.com/mssola/useragent"

	"shoptrack/pkg/requestcontext"
)

// ClientMetadata records the caller's IP and a normalized user-agent
// summary so the audit trail can attribute intake submissions.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), clientIP(r), describeAgent(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP prefers proxy-set headers over the socket address. Only the
// first hop of X-Forwarded-For is trusted.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// describeAgent condenses a raw User-Agent string into "Browser/Version (OS)".
// The raw string is kept when parsing yields nothing useful.
func describeAgent(raw string) string {
	if raw == "" {
		return ""
	}
	parsed := ua.New(raw)
	name, version := parsed.Browser()
	if name == "" {
		return raw
	}
	var b strings.Builder
	b.WriteString(name)
	if version != "" {
		b.WriteString("/")
		b.WriteString(version)
	}
	if os := parsed.OS(); os != "" {
		b.WriteString(" (")
		b.WriteString(os)
		b.WriteString(")")
	}
	return b.String()
}
