package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chainsight-systems/beaconflow/internal/lineproto"
	"github.com/chainsight-systems/beaconflow/internal/sink"
)

var burstCmd = &cobra.Command{
	Use:   "burst",
	Short: "Push synthetic line-protocol records to a sink",
	Long:  "Encode a batch of fake beacon events and POST the resulting wire lines straight to an ingestion endpoint.",
	Example: `  beaconsim burst --sink http://localhost:8080/eth-events --count 100
  beaconsim burst --sink http://localhost:8086/write --count 1000 --source simnode`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sinkURL, _ := cmd.Flags().GetString("sink")
		count, _ := cmd.Flags().GetInt("count")
		source, _ := cmd.Flags().GetString("source")
		network, _ := cmd.Flags().GetString("network")

		runID := uuid.New().String()
		fmt.Printf("Burst %s: %d events -> %s\n", runID, count, sinkURL)

		enc := lineproto.NewEncoder(lineproto.NewIgnoreSet(lineproto.DefaultIgnorePaths...))
		httpSink := sink.NewHTTPSink(sinkURL, 5*time.Second)
		defer httpSink.Close()

		tags := lineproto.EventTags{
			Source:   source,
			Network:  network,
			Endpoint: "/eth/v1/events",
		}

		sent, failed := 0, 0
		for i := 0; i < count; i++ {
			kind := randomKind()
			rec, err := enc.Encode(kind, generatePayload(kind), tags)
			if err != nil {
				failed++
				continue
			}
			if err := httpSink.Deliver(context.Background(), rec.Line()); err != nil {
				failed++
				fmt.Printf("delivery failed: %v\n", err)
				continue
			}
			sent++
		}

		fmt.Printf("Burst %s done: %d sent, %d failed\n", runID, sent, failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d deliveries failed", failed, count)
		}
		return nil
	},
}

func init() {
	burstCmd.Flags().String("sink", "http://localhost:8080/eth-events", "sink URL to POST lines to")
	burstCmd.Flags().Int("count", 100, "number of events to send")
	burstCmd.Flags().String("source", "beaconsim", "source tag value")
	burstCmd.Flags().String("network", "devnet", "network tag value")
}
