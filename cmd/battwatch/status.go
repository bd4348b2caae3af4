package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"battwatch/pkg/client"
	"battwatch/pkg/config"
	"battwatch/pkg/powerinfo"
	"battwatch/pkg/types"
)

type statusData struct {
	status *types.Status
	config *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData(api *client.Client) (*statusData, error) {
	status, err := api.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get watcher status: %w", err)
	}

	conf, err := api.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		status: status,
		config: conf,
	}, nil
}

func statusText(s powerinfo.Status) string {
	switch s {
	case powerinfo.StatusLow:
		return color.New(color.Bold, color.FgRed).Sprint("LOW")
	case powerinfo.StatusHigh:
		return color.New(color.Bold, color.FgYellow).Sprint("HIGH")
	default:
		return color.New(color.Bold, color.FgGreen).Sprint("NORMAL")
	}
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of battwatch",
		Long:    `Get the last battery sample, watcher state, and configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData(newAPIClient())
			if err != nil {
				return err
			}

			conf := config.NewFileFromConfig(data.config, "")

			cmd.Println(bold("Battery:"))
			if sample := data.status.Sample; sample != nil {
				cmd.Println("  Status: " + statusText(sample.Status))
				cmd.Println("  Charge: " + bold("%d%%", sample.Percent))
				cmd.Println("  Plugged in: " + bool2Text(sample.Plugged))
				cmd.Println("  Time remaining: " + powerinfo.FormatDuration(sample.SecondsRemaining))
			} else {
				cmd.Println("  No sample yet. Either the first poll has not completed, or this machine has no battery.")
			}

			if !data.status.State.LastNotifyAt.IsZero() {
				cmd.Println("  Last notification: " + data.status.State.LastNotifyAt.Local().Format("2006-01-02 15:04:05"))
			}

			cmd.Println()
			cmd.Println(bold("Watcher:"))
			cmd.Printf("  Thresholds: low %s / high %s\n",
				bold("%d%%", conf.LowThreshold()), bold("%d%%", conf.HighThreshold()))
			cmd.Printf("  Poll interval: %ds\n", conf.PollInterval())
			cmd.Printf("  Notify cooldown: %ds\n", conf.NotifyCooldown())

			cmd.Println()
			cmd.Println(bold("Channels:"))
			cmd.Println("  Telegram chat configured: " + bool2Text(conf.TelegramChatID() != ""))
			cmd.Println("  Desktop toast: " + bool2Text(conf.DesktopToast()))

			return nil
		},
	}
}
