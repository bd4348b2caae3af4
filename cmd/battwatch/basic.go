package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"battwatch/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and daemon version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			// Best-effort: the daemon may simply not be running.
			daemonVersion, err := newAPIClient().GetVersion()
			if err != nil {
				return
			}
			cmd.Printf("daemon: %s\n", daemonVersion)
			if daemonVersion != version.Version {
				logrus.Warnf("version mismatch between client (%s) and daemon (%s); restart the daemon after upgrading", version.Version, daemonVersion)
			}
		},
	}
}

func NewLowThresholdCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "low-threshold [percentage]",
		Short:   "Set the low battery threshold",
		GroupID: gBasic,
		Long: `Set the low battery threshold.

When the battery is discharging and the charge drops to this percentage or
below, battwatch reports the "low" status and notifies you.`,
		RunE: func(_ *cobra.Command, args []string) error {
			threshold, err := parseIntArg(args, "low threshold")
			if err != nil {
				return err
			}

			ret, err := newAPIClient().SetLowThreshold(threshold)
			if err != nil {
				return fmt.Errorf("failed to set low threshold: %w", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set low threshold to %d%%", threshold)

			return nil
		},
	}
}

func NewHighThresholdCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "high-threshold [percentage]",
		Short:   "Set the high battery threshold",
		GroupID: gBasic,
		Long: `Set the high battery threshold.

When the battery is on external power and the charge reaches this percentage
or above, battwatch reports the "high" status and notifies you so you can
unplug.`,
		RunE: func(_ *cobra.Command, args []string) error {
			threshold, err := parseIntArg(args, "high threshold")
			if err != nil {
				return err
			}

			ret, err := newAPIClient().SetHighThreshold(threshold)
			if err != nil {
				return fmt.Errorf("failed to set high threshold: %w", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set high threshold to %d%%", threshold)

			return nil
		},
	}
}
