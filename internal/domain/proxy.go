package domain

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

type ProxyScheme string

const (
	ProxySchemeDirect ProxyScheme = "direct"
	ProxySchemeHTTP   ProxyScheme = "http"
	ProxySchemeSOCKS5 ProxyScheme = "socks5"
)

var proxyLinePattern = regexp.MustCompile(`(?i)^(socks5|http|https)://(?:([^:@]+):([^@]+)@)?([^:]+):(\d+)$`)

// Proxy is a resolved route for outgoing calls. The zero value is not
// valid; use DirectProxy for "no proxy".
type Proxy struct {
	Scheme   ProxyScheme
	Host     string
	Port     string
	Username string
	Password string
	// URLScheme keeps the scheme as written; https proxies dial over TLS
	// even though they are treated as http everywhere else.
	URLScheme string
}

func DirectProxy() Proxy {
	return Proxy{Scheme: ProxySchemeDirect}
}

func (p Proxy) IsDirect() bool {
	return p.Scheme == "" || p.Scheme == ProxySchemeDirect
}

func (p Proxy) Address() string {
	return net.JoinHostPort(p.Host, p.Port)
}

// URL returns the proxy URL, or nil for a direct route.
func (p Proxy) URL() *url.URL {
	if p.IsDirect() {
		return nil
	}

	scheme := p.URLScheme
	if scheme == "" {
		scheme = string(p.Scheme)
	}

	u := &url.URL{Scheme: scheme, Host: p.Address()}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}

	return u
}

// Summary is the display form: "url (type)" with the password redacted, or "None".
func (p Proxy) Summary() string {
	if p.IsDirect() {
		return "None"
	}

	return fmt.Sprintf("%s (%s)", p.URL().Redacted(), p.Scheme)
}

type ProxyParseError struct {
	Line string
}

func (e *ProxyParseError) Error() string {
	return fmt.Sprintf("Invalid proxy format: %s. Expected 'socks5://[user:pass@]host:port' or 'http(s)://[user:pass@]host:port', skipping.", e.Line)
}

func (e *ProxyParseError) Unwrap() error {
	return ErrConfig
}

func ParseProxyLine(line string) (Proxy, error) {
	trimmed := strings.TrimSpace(line)
	match := proxyLinePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Proxy{}, &ProxyParseError{Line: trimmed}
	}

	rawScheme := strings.ToLower(match[1])
	scheme := ProxySchemeHTTP
	if rawScheme == string(ProxySchemeSOCKS5) {
		scheme = ProxySchemeSOCKS5
	}

	proxy := Proxy{
		Scheme:    scheme,
		Host:      match[4],
		Port:      match[5],
		URLScheme: rawScheme,
	}
	// Credentials only count when both halves are present.
	if match[2] != "" && match[3] != "" {
		proxy.Username = match[2]
		proxy.Password = match[3]
	}

	return proxy, nil
}
