package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/entropic-dev/galvanometer/pkg/builder"
)

// Serves a live snapshot stream: every few seconds a simulated batch is
// judged and the result is pushed to all websocket subscribers on
// ws://localhost:8080/stream. Point a bench dashboard at it while tuning a
// calibration set.
func main() {
	logger := builder.NewLogger(builder.LoggerWithDevelopment(true))

	engine := builder.NewQualityEngine(
		builder.EngineWithLogger(logger),
		builder.EngineWithComponentMetadata("StreamEngine", "engine-stream"),
	)
	gate := builder.NewKeyGate(
		builder.NewSimulatedSource(builder.SimulatedWithSeed(time.Now().UnixNano())),
		engine,
		builder.GateWithLogger(logger),
	)
	stream := builder.NewStreamServer(
		builder.StreamWithLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go gate.RunPeriodic(ctx, 3*time.Second, func(report builder.Report, err error) {
		if err != nil {
			return
		}
		if publishErr := stream.Publish(builder.BuildSnapshot(report)); publishErr != nil {
			fmt.Fprintf(os.Stderr, "publishing snapshot: %v\n", publishErr)
		}
	})

	mux := http.NewServeMux()
	mux.Handle("/stream", stream)

	fmt.Println("Streaming snapshots on ws://localhost:8080/stream")
	if err := http.ListenAndServe("localhost:8080", mux); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
