package ports

import (
	"context"

	"github.com/bnema/unich-miner/internal/domain"
)

// MiningAPI is the remote reward-accrual service. Each call is a single
// round trip over the given proxy route; callers own retry policy.
type MiningAPI interface {
	FetchPublicIP(ctx context.Context, proxy domain.Proxy) (string, error)
	FetchAccountInfo(ctx context.Context, proxy domain.Proxy, credential string) (domain.AccountInfo, error)
	StartMiningCycle(ctx context.Context, proxy domain.Proxy, credential string) error
}
