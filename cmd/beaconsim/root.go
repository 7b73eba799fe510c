package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beaconsim",
	Short: "Synthetic beacon node event generator",
	Long: `beaconsim generates synthetic beacon chain events for testing the
beaconflow ingestion pipeline without a real beacon node.

The stream command serves a fake SSE endpoint that beaconflow can be
pointed at; the burst command pushes pre-encoded line-protocol records
straight to a sink endpoint.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(burstCmd)
}
