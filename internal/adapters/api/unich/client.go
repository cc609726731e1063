package unich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
)

const (
	DefaultBaseURL = "https://api.unich.com/airdrop/user/v1"
	DefaultIPURL   = "https://api.ipify.org?format=json"
	DefaultTimeout = 30 * time.Second

	infoPath        = "/info/my-info"
	startMiningPath = "/mining/start"

	maxResponseBytes = 1 << 20
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36 OPR/119.0.0.0 (Edition cdf)",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36 Edg/134.0.0.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:129.0) Gecko/20100101 Firefox/129.0",
}

type Config struct {
	BaseURL string
	IPURL   string
	Timeout time.Duration
	// Transport replaces proxy routing entirely when set.
	Transport http.RoundTripper
	// UserAgent overrides rotation; it returns the header for one call.
	UserAgent func() string
}

type Client struct {
	baseURL    string
	ipURL      string
	userAgent  func() string
	transports *transports
}

var _ ports.MiningAPI = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.IPURL == "" {
		cfg.IPURL = DefaultIPURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == nil {
		cfg.UserAgent = randomUserAgent
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		ipURL:      cfg.IPURL,
		userAgent:  cfg.UserAgent,
		transports: newTransports(cfg.Timeout, cfg.Transport),
	}
}

type ipPayload struct {
	IP string `json:"ip"`
}

type infoPayload struct {
	Data *struct {
		Email  string   `json:"email"`
		MUn    *float64 `json:"mUn"`
		Mining *struct {
			TodayMining *struct {
				Started               bool  `json:"started"`
				RemainingTimeInMillis int64 `json:"remainingTimeInMillis"`
			} `json:"todayMining"`
		} `json:"mining"`
	} `json:"data"`
}

func (c *Client) FetchPublicIP(ctx context.Context, proxy domain.Proxy) (string, error) {
	body, err := c.do(ctx, proxy, http.MethodGet, c.ipURL, "", nil)
	if err != nil {
		return "", err
	}

	var payload ipPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode ip payload: %w: %w", domain.ErrUnexpectedResponse, err)
	}
	if strings.TrimSpace(payload.IP) == "" {
		return "", fmt.Errorf("ip payload missing ip: %w", domain.ErrUnexpectedResponse)
	}

	return payload.IP, nil
}

func (c *Client) FetchAccountInfo(ctx context.Context, proxy domain.Proxy, credential string) (domain.AccountInfo, error) {
	body, err := c.do(ctx, proxy, http.MethodGet, c.baseURL+infoPath, credential, nil)
	if err != nil {
		return domain.AccountInfo{}, err
	}

	var payload infoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.AccountInfo{}, fmt.Errorf("decode info payload: %w: %w", domain.ErrUnexpectedResponse, err)
	}
	if payload.Data == nil || payload.Data.Mining == nil || payload.Data.Mining.TodayMining == nil {
		return domain.AccountInfo{}, fmt.Errorf("info payload missing mining state: %w", domain.ErrUnexpectedResponse)
	}

	info := domain.AccountInfo{
		Email: payload.Data.Email,
		Mining: domain.MiningState{
			Started:         payload.Data.Mining.TodayMining.Started,
			RemainingMillis: payload.Data.Mining.TodayMining.RemainingTimeInMillis,
		},
	}
	if payload.Data.MUn != nil {
		info.TotalPoints = *payload.Data.MUn
	}

	return info, nil
}

func (c *Client) StartMiningCycle(ctx context.Context, proxy domain.Proxy, credential string) error {
	_, err := c.do(ctx, proxy, http.MethodPost, c.baseURL+startMiningPath, credential, strings.NewReader("{}"))
	return err
}

// Close releases idle keep-alive connections of every proxy route.
func (c *Client) Close() {
	c.transports.closeIdle()
}

func (c *Client) do(ctx context.Context, proxy domain.Proxy, method, endpoint, credential string, payload io.Reader) ([]byte, error) {
	client, err := c.transports.clientFor(proxy)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(request, credential)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w: %w", domain.ErrNetwork, err)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w: %w", domain.ErrNetwork, err)
	}

	if response.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: status %d", domain.ErrAuth, response.StatusCode)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrNetwork, response.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func (c *Client) setHeaders(request *http.Request, credential string) {
	request.Header.Set("User-Agent", c.userAgent())
	request.Header.Set("Accept", "application/json, text/plain, */*")
	if credential == "" {
		return
	}

	request.Header.Set("Authorization", "Bearer "+credential)
	request.Header.Set("Accept-Language", "en-GB,en-US;q=0.9,en;q=0.8")
	request.Header.Set("Cache-Control", "no-cache")
	request.Header.Set("Origin", "https://unich.com")
	request.Header.Set("Pragma", "no-cache")
	request.Header.Set("Referer", "https://unich.com/")
	request.Header.Set("Sec-Fetch-Dest", "empty")
	request.Header.Set("Sec-Fetch-Mode", "cors")
	request.Header.Set("Sec-Fetch-Site", "same-site")
}

func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}
