// Package requestmeta resolves request scheme and origin metadata.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
//
// TrustForwardedProto must be enabled explicitly before X-Forwarded-Proto is
// honored, so deployments without a trusted proxy never accept client-supplied
// scheme headers.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether the request should be treated as HTTPS.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return scheme(r, policy) == "https"
}

// HasSameOriginProof reports whether the Origin or Referer header proves the
// request came from this host. Requests carrying neither header fail the check.
func HasSameOriginProof(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	reqScheme := scheme(r, policy)
	reqHost, reqPort := hostPort(r.Host)
	if reqHost == "" && r.URL != nil {
		reqHost, reqPort = hostPort(r.URL.Host)
	}
	if reqHost == "" {
		return false
	}
	if reqPort == "" {
		reqPort = defaultPort(reqScheme)
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		return matchesOrigin(origin, reqScheme, reqHost, reqPort)
	}
	if referer := strings.TrimSpace(r.Header.Get("Referer")); referer != "" {
		return matchesOrigin(referer, reqScheme, reqHost, reqPort)
	}
	return false
}

func matchesOrigin(raw, reqScheme, reqHost, reqPort string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	originScheme := strings.ToLower(strings.TrimSpace(parsed.Scheme))
	if originScheme == "" {
		return false
	}
	if reqScheme != "" && originScheme != reqScheme {
		return false
	}
	originHost := strings.ToLower(strings.TrimSpace(parsed.Hostname()))
	if originHost == "" || originHost != reqHost {
		return false
	}
	originPort := strings.TrimSpace(parsed.Port())
	if originPort == "" {
		originPort = defaultPort(originScheme)
	}
	if originPort == "" || reqPort == "" {
		return false
	}
	return originPort == reqPort
}

func scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")))
		if forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	// Connection state is ground truth; the parsed URL scheme only carries
	// meaning for client-style requests.
	if r.TLS != nil {
		return "https"
	}
	if r.URL != nil {
		urlScheme := strings.ToLower(strings.TrimSpace(r.URL.Scheme))
		if urlScheme == "http" || urlScheme == "https" {
			return urlScheme
		}
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}

func hostPort(rawHost string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(strings.TrimSpace(parsed.Hostname())), strings.TrimSpace(parsed.Port())
}
