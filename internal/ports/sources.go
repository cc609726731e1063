package ports

import "context"

// CredentialSource yields raw credential lines in source order.
type CredentialSource interface {
	CredentialLines(ctx context.Context) ([]string, error)
}

// ProxySource yields raw proxy lines in source order.
type ProxySource interface {
	ProxyLines(ctx context.Context) ([]string, error)
}
