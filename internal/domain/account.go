package domain

import (
	"fmt"
	"strings"
)

type AccountID int

func (id AccountID) String() string {
	return fmt.Sprintf("%d", int(id))
}

// Account is one credentialed mining account, immutable once loaded.
type Account struct {
	ID         AccountID
	Credential string
}

// AccountsFromLines numbers non-blank credential lines from 1 in source order.
func AccountsFromLines(lines []string) []Account {
	accounts := make([]Account, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		accounts = append(accounts, Account{
			ID:         AccountID(len(accounts) + 1),
			Credential: trimmed,
		})
	}

	return accounts
}
