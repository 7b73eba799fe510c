package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Serve a synthetic beacon SSE endpoint",
	Long:  "Serve an SSE endpoint emitting fake beacon events at a fixed rate, for pointing a beaconflow source at.",
	Example: `  beaconsim stream --addr :5052 --rate 500ms
  beaconsim stream --addr :5052 --path /eth/v1/events`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		path, _ := cmd.Flags().GetString("path")
		rate, _ := cmd.Flags().GetDuration("rate")

		mux := http.NewServeMux()
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			serveStream(w, r, rate)
		})

		fmt.Printf("Serving synthetic beacon events on %s%s (rate: %s)\n", addr, path, rate)
		return http.ListenAndServe(addr, mux)
	},
}

func init() {
	streamCmd.Flags().String("addr", ":5052", "listen address")
	streamCmd.Flags().String("path", "/eth/v1/events", "SSE endpoint path")
	streamCmd.Flags().Duration("rate", time.Second, "interval between events")
}

// serveStream emits events until the client disconnects. Honors the
// topics query parameter the way a beacon node does: only listed
// kinds are emitted, all kinds when absent.
func serveStream(w http.ResponseWriter, r *http.Request, rate time.Duration) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	topics := parseTopics(r.URL.Query().Get("topics"))
	connID := uuid.New().String()
	fmt.Printf("Client connected (conn: %s, topics: %v)\n", connID, topics)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			fmt.Printf("Client disconnected (conn: %s)\n", connID)
			return
		case <-ticker.C:
			kind := randomKind()
			if len(topics) > 0 && !topics[kind] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", kind, generatePayload(kind))
			flusher.Flush()
		}
	}
}

func parseTopics(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	topics := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics[t] = true
		}
	}
	return topics
}
