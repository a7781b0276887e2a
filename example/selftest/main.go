package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/entropic-dev/galvanometer/pkg/builder"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithDevelopment(true))

	source := builder.NewSimulatedSource(
		builder.SimulatedWithSeed(time.Now().UnixNano()),
	)

	engine := builder.NewQualityEngine(
		builder.EngineWithLogger(logger),
		builder.EngineWithComponentMetadata("SelfTestEngine", "engine-selftest"),
	)

	gate := builder.NewKeyGate(
		source,
		engine,
		builder.GateWithLogger(logger),
		builder.GateWithComponentMetadata("SelfTestGate", "gate-selftest"),
	)

	report, err := gate.Authorize(ctx)
	if err != nil {
		if errors.Is(err, builder.ErrRNGFailure) {
			resp := builder.BuildHostResponse(report)
			fmt.Printf("Key generation refused: %s\n", resp.Message)
			return
		}
		fmt.Printf("Self-test could not run: %v\n", err)
		return
	}

	fmt.Println("Self-test passed:")
	fmt.Printf("  mean            %s\n", report.Moments.Mean)
	fmt.Printf("  variance        %s\n", report.Moments.Variance)
	fmt.Printf("  skewness        %s\n", report.Moments.Skewness)
	fmt.Printf("  excess kurtosis %s\n", report.Moments.ExcessKurtosis)
	fmt.Printf("  peak frequency  %s\n", report.Bandwidth.PeakFraction)
	if width, ok := report.Bandwidth.Width(); ok {
		fmt.Printf("  bandwidth       %s\n", width)
	}
}
