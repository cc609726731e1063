package unich

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoRunningBody = `{"code":"OK","data":{"email":"miner@example.com","mUn":1234.5,"mining":{"todayMining":{"started":true,"remainingTimeInMillis":3600000}}}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:   server.URL + "/airdrop/user/v1/",
		IPURL:     server.URL + "/ip",
		UserAgent: func() string { return "test-agent" },
	})
	t.Cleanup(client.Close)

	return client
}

func TestFetchAccountInfoParsesSnapshot(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/airdrop/user/v1/info/my-info", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "https://unich.com", r.Header.Get("Origin"))
		_, _ = io.WriteString(w, infoRunningBody)
	})

	info, err := client.FetchAccountInfo(context.Background(), domain.DirectProxy(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, domain.AccountInfo{
		Email:       "miner@example.com",
		TotalPoints: 1234.5,
		Mining:      domain.MiningState{Started: true, RemainingMillis: 3_600_000},
	}, info)
}

func TestFetchAccountInfoMissingPointsDefaultsToZero(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"email":"a@b.c","mining":{"todayMining":{"started":false}}}}`)
	})

	info, err := client.FetchAccountInfo(context.Background(), domain.DirectProxy(), "tok-1")
	require.NoError(t, err)
	assert.Zero(t, info.TotalPoints)
	assert.False(t, info.Mining.Started)
}

func TestFetchAccountInfoErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantAuth   bool
		wantShape  bool
		wantSubstr string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"jwt expired"}`, wantAuth: true},
		{name: "server error", status: http.StatusBadGateway, body: "bad gateway", wantSubstr: "status 502: bad gateway"},
		{name: "forbidden is transient", status: http.StatusForbidden, body: "cloudflare", wantSubstr: "status 403"},
		{name: "not json", status: http.StatusOK, body: "<html>", wantShape: true},
		{name: "missing mining block", status: http.StatusOK, body: `{"data":{"email":"a@b.c"}}`, wantShape: true},
		{name: "missing data", status: http.StatusOK, body: `{}`, wantShape: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.FetchAccountInfo(context.Background(), domain.DirectProxy(), "tok-1")
			require.Error(t, err)

			assert.Equal(t, tt.wantAuth, domain.IsAuth(err))
			if !tt.wantAuth {
				assert.ErrorIs(t, err, domain.ErrNetwork)
			}
			if tt.wantShape {
				assert.ErrorIs(t, err, domain.ErrUnexpectedResponse)
			}
			if tt.wantSubstr != "" {
				assert.ErrorContains(t, err, tt.wantSubstr)
			}
		})
	}
}

func TestStartMiningCyclePostsWithBearer(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/airdrop/user/v1/mining/start", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "{}", string(body))
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.StartMiningCycle(context.Background(), domain.DirectProxy(), "tok-1"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestStartMiningCycleUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.StartMiningCycle(context.Background(), domain.DirectProxy(), "bad")
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestFetchPublicIPIsUnauthenticated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ip", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"ip":"198.51.100.4"}`)
	})

	ip, err := client.FetchPublicIP(context.Background(), domain.DirectProxy())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.4", ip)
}

func TestFetchPublicIPNetworkFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client := NewClient(Config{IPURL: "http://" + addr + "/ip"})
	_, err = client.FetchPublicIP(context.Background(), domain.DirectProxy())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.False(t, domain.IsAuth(err))
}

func TestRequestsRouteThroughHTTPProxy(t *testing.T) {
	var proxied atomic.Int32
	proxyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied.Add(1)
		assert.Equal(t, "api.invalid", r.URL.Hostname())
		_, _ = io.WriteString(w, `{"ip":"192.0.2.10"}`)
	}))
	t.Cleanup(proxyServer.Close)

	proxyURL, err := url.Parse(proxyServer.URL)
	require.NoError(t, err)
	proxy, err := domain.ParseProxyLine("http://" + proxyURL.Host)
	require.NoError(t, err)

	client := NewClient(Config{IPURL: "http://api.invalid/ip"})
	t.Cleanup(client.Close)

	ip, err := client.FetchPublicIP(context.Background(), proxy)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10", ip)
	assert.Equal(t, int32(1), proxied.Load())
}

func TestRequestsRouteThroughSOCKS5Proxy(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api.invalid", r.Host)
		_, _ = io.WriteString(w, `{"ip":"192.0.2.55"}`)
	}))
	t.Cleanup(target.Close)

	handshake := serveSOCKS5(t, target.Listener.Addr().String())
	proxy, err := domain.ParseProxyLine("socks5://miner:s3cret@" + handshake.addr)
	require.NoError(t, err)

	client := NewClient(Config{IPURL: "http://api.invalid/ip"})
	t.Cleanup(client.Close)

	ip, err := client.FetchPublicIP(context.Background(), proxy)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.55", ip)

	seen := <-handshake.seen
	assert.Equal(t, []byte{5, 2, 0, 2}, seen.greeting)
	assert.Equal(t, "miner", seen.user)
	assert.Equal(t, "s3cret", seen.password)
	assert.Equal(t, "api.invalid:80", seen.target)
}

type socks5Handshake struct {
	greeting []byte
	user     string
	password string
	target   string
}

type socks5Server struct {
	addr string
	seen chan socks5Handshake
}

// serveSOCKS5 accepts one SOCKS5 connection with username/password auth
// and tunnels it to upstream whatever target the client asks for.
func serveSOCKS5(t *testing.T, upstream string) socks5Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	server := socks5Server{addr: listener.Addr().String(), seen: make(chan socks5Handshake, 1)}

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var hs socks5Handshake
		readN := func(n int) []byte {
			buf := make([]byte, n)
			if _, err := io.ReadFull(conn, buf); err != nil {
				t.Errorf("socks5 read: %v", err)
				return nil
			}
			return buf
		}

		head := readN(2)
		if head == nil {
			return
		}
		hs.greeting = append(head, readN(int(head[1]))...)
		_, _ = conn.Write([]byte{5, 2})

		auth := readN(2)
		hs.user = string(readN(int(auth[1])))
		hs.password = string(readN(int(readN(1)[0])))
		_, _ = conn.Write([]byte{1, 0})

		request := readN(4)
		if request[3] != 3 {
			t.Errorf("socks5 request address type %d, want domain name", request[3])
			return
		}
		host := string(readN(int(readN(1)[0])))
		port := readN(2)
		hs.target = net.JoinHostPort(host, strconv.Itoa(int(port[0])<<8|int(port[1])))

		remote, err := net.Dial("tcp", upstream)
		if err != nil {
			t.Errorf("socks5 upstream: %v", err)
			return
		}
		defer remote.Close()
		_, _ = conn.Write([]byte{5, 0, 0, 1, 0, 0, 0, 0, 0, 0})
		server.seen <- hs

		go func() { _, _ = io.Copy(remote, conn) }()
		_, _ = io.Copy(conn, remote)
	}()

	return server
}

func TestClientReusesTransportPerRoute(t *testing.T) {
	client := NewClient(Config{})

	direct1, err := client.transports.clientFor(domain.DirectProxy())
	require.NoError(t, err)
	direct2, err := client.transports.clientFor(domain.Proxy{})
	require.NoError(t, err)
	assert.Same(t, direct1, direct2)

	socks, err := domain.ParseProxyLine("socks5://u:p@127.0.0.1:1080")
	require.NoError(t, err)
	viaSocks, err := client.transports.clientFor(socks)
	require.NoError(t, err)
	assert.NotSame(t, direct1, viaSocks)
}

func TestRandomUserAgentComesFromRotation(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Contains(t, userAgents, randomUserAgent())
	}
}
