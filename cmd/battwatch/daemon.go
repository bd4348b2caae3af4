package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"battwatch/pkg/daemon"
	"battwatch/pkg/version"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "daemon",
		Hidden:  true,
		Short:   "Run battwatch daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("battwatch daemon starting")
			return daemon.Run(configPath, unixSocketPath)
		},
	}
}
