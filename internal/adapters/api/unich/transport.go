package unich

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bnema/unich-miner/internal/domain"
	xproxy "golang.org/x/net/proxy"
)

// transports caches one *http.Client per proxy route so keep-alive
// connections are reused across calls of the same account.
type transports struct {
	timeout time.Duration
	base    http.RoundTripper

	mu      sync.Mutex
	clients map[string]*http.Client
}

func newTransports(timeout time.Duration, base http.RoundTripper) *transports {
	return &transports{
		timeout: timeout,
		base:    base,
		clients: map[string]*http.Client{},
	}
}

func (t *transports) clientFor(proxy domain.Proxy) (*http.Client, error) {
	key := routeKey(proxy)

	t.mu.Lock()
	defer t.mu.Unlock()

	if client, ok := t.clients[key]; ok {
		return client, nil
	}

	transport, err := t.newTransport(proxy)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Transport: transport, Timeout: t.timeout}
	t.clients[key] = client
	return client, nil
}

func (t *transports) newTransport(proxy domain.Proxy) (http.RoundTripper, error) {
	if t.base != nil {
		// Injected round trippers (tests) carry their own routing.
		return t.base, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil

	switch proxy.Scheme {
	case domain.ProxySchemeDirect, "":
	case domain.ProxySchemeHTTP:
		transport.Proxy = http.ProxyURL(proxy.URL())
	case domain.ProxySchemeSOCKS5:
		var auth *xproxy.Auth
		if proxy.Username != "" {
			auth = &xproxy.Auth{User: proxy.Username, Password: proxy.Password}
		}
		dialer, err := xproxy.SOCKS5("tcp", proxy.Address(), auth, &net.Dialer{Timeout: t.timeout})
		if err != nil {
			return nil, fmt.Errorf("create socks5 dialer for %s: %w", proxy.Address(), err)
		}
		contextDialer, ok := dialer.(xproxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5 dialer for %s does not support contexts", proxy.Address())
		}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return contextDialer.DialContext(ctx, network, addr)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported proxy scheme %q", domain.ErrConfig, proxy.Scheme)
	}

	return transport, nil
}

func (t *transports) closeIdle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, client := range t.clients {
		client.CloseIdleConnections()
	}
}

func routeKey(proxy domain.Proxy) string {
	if proxy.IsDirect() {
		return string(domain.ProxySchemeDirect)
	}
	return proxy.URL().String()
}
