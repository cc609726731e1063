package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
)

const noValidProxiesDiagnostic = "No valid proxies found in proxy source. Running without proxy."

type ProxyResolution struct {
	Proxies     []domain.Proxy
	Diagnostics []string
	// ReadErr is set when the proxy source itself could not be read.
	ReadErr error
}

// ResolveProxies parses every non-blank line; malformed lines become
// diagnostics and never stop the lines after them.
func ResolveProxies(lines []string) ProxyResolution {
	var resolution ProxyResolution
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		proxy, err := domain.ParseProxyLine(line)
		if err != nil {
			resolution.Diagnostics = append(resolution.Diagnostics, err.Error())
			continue
		}
		resolution.Proxies = append(resolution.Proxies, proxy)
	}

	if len(resolution.Proxies) == 0 {
		resolution.Diagnostics = append(resolution.Diagnostics, noValidProxiesDiagnostic)
	}

	return resolution
}

func LoadProxies(ctx context.Context, source ports.ProxySource) ProxyResolution {
	lines, err := source.ProxyLines(ctx)
	if err != nil {
		return ProxyResolution{
			Diagnostics: []string{fmt.Sprintf("Failed to read proxy source: %v. Running without proxy.", err)},
			ReadErr:     err,
		}
	}

	return ResolveProxies(lines)
}

// Assign returns the proxy for the account at index, cycling through the
// resolved list. With nothing resolved every account goes direct.
func (r ProxyResolution) Assign(index int) domain.Proxy {
	if len(r.Proxies) == 0 || index < 0 {
		return domain.DirectProxy()
	}

	return r.Proxies[index%len(r.Proxies)]
}

func (r ProxyResolution) Direct() bool {
	return len(r.Proxies) == 0
}

// Combined joins every diagnostic into a single line.
func (r ProxyResolution) Combined() string {
	return strings.Join(r.Diagnostics, " ")
}

// LoadAccounts reads the credential source. A read failure is a
// configuration error; an empty list is not an error.
func LoadAccounts(ctx context.Context, source ports.CredentialSource) ([]domain.Account, error) {
	lines, err := source.CredentialLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read credential source: %w", domain.ErrConfig, err)
	}

	return domain.AccountsFromLines(lines), nil
}
