package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
)

type Sources struct {
	Accounts []domain.Account
	Proxies  ProxyResolution
	// CredentialErr is set when the credential source could not be read and
	// the run continues with no accounts.
	CredentialErr error
}

// LoadSources reads both external sources. It only fails when neither can be
// read at all; one unreadable source degrades to no accounts or no proxy.
func LoadSources(ctx context.Context, credentials ports.CredentialSource, proxies ports.ProxySource) (Sources, error) {
	resolution := LoadProxies(ctx, proxies)

	accounts, err := LoadAccounts(ctx, credentials)
	if err != nil {
		if resolution.ReadErr != nil {
			return Sources{}, fmt.Errorf("%w: no readable source: %w", domain.ErrConfig, errors.Join(err, resolution.ReadErr))
		}
		return Sources{Proxies: resolution, CredentialErr: err}, nil
	}

	return Sources{Accounts: accounts, Proxies: resolution}, nil
}
