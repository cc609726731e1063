package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/unich-miner/internal/adapters/render/status"
	"github.com/bnema/unich-miner/internal/domain"
	"github.com/spf13/cobra"
)

type snapshotJSON struct {
	Account     domain.AccountID `json:"account"`
	Status      domain.Status    `json:"status"`
	Email       string           `json:"email"`
	TotalPoints float64          `json:"total_points"`
	NextMining  string           `json:"next_mining"`
	IPAddress   string           `json:"ip_address"`
	Proxy       string           `json:"proxy"`
	Logs        []string         `json:"logs,omitempty"`
}

func writeSnapshotsOutput(cmd *cobra.Command, app *app, snapshots []domain.Snapshot, showLogs, asJSON bool) error {
	if asJSON {
		out := make([]snapshotJSON, 0, len(snapshots))
		for _, snapshot := range snapshots {
			entry := snapshotJSON{
				Account:     snapshot.ID,
				Status:      snapshot.Status,
				Email:       snapshot.Email,
				TotalPoints: snapshot.TotalPoints,
				NextMining:  snapshot.NextMining(),
				IPAddress:   snapshot.IPAddress,
				Proxy:       snapshot.Proxy,
			}
			if showLogs {
				entry.Logs = snapshot.Logs
			}
			out = append(out, entry)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rendered, err := app.statusRenderer(snapshots, statusadapter.RenderOptions{ShowLogs: showLogs})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
