package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/entropic-dev/galvanometer/pkg/builder"
)

// Captures a calibration data set: judges a number of simulated batches and
// appends each result to a parquet archive that the calibration notebooks
// aggregate when re-deriving acceptance bounds.
func main() {
	var (
		runs    = flag.Int("runs", 100, "number of batches to capture")
		outPath = flag.String("out", "calibration.parquet", "parquet archive path")
		calPath = flag.String("calibration", "", "optional YAML calibration overrides")
	)
	flag.Parse()

	logger := builder.NewLogger(builder.LoggerWithDevelopment(true))

	engineOptions := []builder.EngineOption{
		builder.EngineWithLogger(logger),
		builder.EngineWithComponentMetadata("CalibrationCapture", "engine-calibration"),
	}
	if *calPath != "" {
		cal, err := builder.LoadCalibration(*calPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading calibration: %v\n", err)
			os.Exit(1)
		}
		engineOptions = append(engineOptions, builder.EngineWithCalibration(cal))
	}
	engine := builder.NewQualityEngine(engineOptions...)

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating archive: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	recorder := builder.NewCalibrationRecorder(out)

	source := builder.NewSimulatedSource(
		builder.SimulatedWithSeed(time.Now().UnixNano()),
	)

	ctx := context.Background()
	cal := engine.Calibration()
	passed := 0
	for i := 0; i < *runs; i++ {
		batch, err := source.Collect(ctx, cal.SampleCount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "collecting batch %d: %v\n", i, err)
			os.Exit(1)
		}
		report, err := engine.Run(batch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "judging batch %d: %v\n", i, err)
			os.Exit(1)
		}
		if err := recorder.Record(report); err != nil {
			fmt.Fprintf(os.Stderr, "recording batch %d: %v\n", i, err)
			os.Exit(1)
		}
		if report.Verdict.Pass {
			passed++
		}
	}

	if err := recorder.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing archive: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Captured %d runs to %s (%d passed, %d failed)\n",
		*runs, *outPath, passed, *runs-passed)
}
