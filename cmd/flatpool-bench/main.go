// Command flatpool-bench runs comparative checkout/serialize/release cycles
// across the pool variants and emits a JSON report.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/flatpool/pkg/logger"
	"github.com/ajitpratap0/flatpool/pkg/pool"
)

var version = "0.1.0"

// benchOptions holds the CLI flags shared by every variant.
type benchOptions struct {
	variants   []string
	iterations int
	goroutines int
	payloadLen int
	initial    int
	max        int
	capacity   int
	output     string
}

// benchResult is one row of the JSON report.
type benchResult struct {
	Variant    string  `json:"variant"`
	Iterations int     `json:"iterations"`
	Goroutines int     `json:"goroutines"`
	ElapsedNs  int64   `json:"elapsed_ns"`
	NsPerOp    float64 `json:"ns_per_op"`
	OpsPerSec  float64 `json:"ops_per_sec"`
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	opts := &benchOptions{}

	root := &cobra.Command{
		Use:   "flatpool-bench",
		Short: "Comparative benchmarks for the flatpool builder pools",
		Long: `flatpool-bench measures the pool variants against each other by running
checkout -> serialize -> release cycles and reporting per-operation cost.

Variants: locked, global, local, sync, none (no pooling).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmarks(opts)
		},
	}

	flags := root.Flags()
	flags.StringSliceVar(&opts.variants, "variants",
		[]string{"locked", "global", "local", "sync", "none"}, "Pool variants to run")
	flags.IntVar(&opts.iterations, "iterations", 1_000_000, "Total cycles per variant")
	flags.IntVar(&opts.goroutines, "goroutines", runtime.NumCPU(), "Concurrent workers")
	flags.IntVar(&opts.payloadLen, "payload", 64, "Serialized string payload length")
	flags.IntVar(&opts.initial, "init-size", pool.DefaultInitSize, "Initial pool size")
	flags.IntVar(&opts.max, "max-size", pool.DefaultMaxSize, "Maximum pool size")
	flags.IntVar(&opts.capacity, "buffer-capacity", pool.DefaultBufferCapacity, "Builder buffer capacity")
	flags.StringVar(&opts.output, "output", "", "Write the JSON report to this file instead of stdout")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flatpool-bench v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBenchmarks(opts *benchOptions) error {
	log := logger.Named("flatpool-bench")
	payload := strings.Repeat("x", opts.payloadLen)

	results := make([]benchResult, 0, len(opts.variants))
	for _, variant := range opts.variants {
		cycle, err := newCycle(variant, opts)
		if err != nil {
			return err
		}

		log.Info("running variant",
			zap.String("variant", variant),
			zap.Int("iterations", opts.iterations),
			zap.Int("goroutines", opts.goroutines))

		elapsed := measure(cycle, payload, opts.iterations, opts.goroutines)
		res := benchResult{
			Variant:    variant,
			Iterations: opts.iterations,
			Goroutines: opts.goroutines,
			ElapsedNs:  elapsed.Nanoseconds(),
			NsPerOp:    float64(elapsed.Nanoseconds()) / float64(opts.iterations),
			OpsPerSec:  float64(opts.iterations) / elapsed.Seconds(),
		}
		results = append(results, res)

		log.Info("variant finished",
			zap.String("variant", variant),
			zap.Duration("elapsed", elapsed),
			zap.Float64("ns_per_op", res.NsPerOp))
	}

	return writeReport(results, opts.output)
}

// newCycle returns one checkout/serialize/release cycle for the variant.
func newCycle(variant string, opts *benchOptions) (func(payload string), error) {
	switch variant {
	case "locked":
		p := pool.NewLockedPool(opts.initial, opts.max, opts.capacity)
		return func(payload string) {
			b := p.Get()
			serialize(b.Builder, payload)
			b.Release()
		}, nil

	case "global":
		// Effective only before the global pool's first use; later runs
		// keep the sizing of the first.
		pool.SetGlobalInitSize(opts.initial)
		pool.SetGlobalMaxSize(opts.max)
		pool.SetGlobalBufferCapacity(opts.capacity)
		return func(payload string) {
			b := pool.Get()
			serialize(b.Builder, payload)
			b.Release()
		}, nil

	case "local":
		p := pool.NewLocal().
			InitialSize(opts.initial).
			MaxSize(opts.max).
			BufferCapacity(opts.capacity).
			Name("bench-local").
			Build()
		return func(payload string) {
			b := p.Get()
			serialize(b.Builder, payload)
			b.Release()
		}, nil

	case "sync":
		p := pool.NewSyncBuilderPool(opts.capacity)
		return func(payload string) {
			b := p.Get()
			serialize(b, payload)
			p.Put(b)
		}, nil

	case "none":
		capacity := opts.capacity
		return func(payload string) {
			serialize(flatbuffers.NewBuilder(capacity), payload)
		}, nil
	}

	return nil, fmt.Errorf("unknown variant %q", variant)
}

// serialize builds a one-field table carrying the payload.
func serialize(b *flatbuffers.Builder, payload string) {
	off := b.CreateString(payload)
	b.StartObject(1)
	b.PrependUOffsetTSlot(0, off, 0)
	b.Finish(b.EndObject())
	_ = b.FinishedBytes()
}

// measure spreads iterations across goroutines and returns the wall time.
func measure(cycle func(string), payload string, iterations, goroutines int) time.Duration {
	if goroutines < 1 {
		goroutines = 1
	}
	perWorker := iterations / goroutines

	var wg sync.WaitGroup
	wg.Add(goroutines)
	start := time.Now()
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				cycle(payload)
			}
		}()
	}
	wg.Wait()
	return time.Since(start)
}

func writeReport(results []benchResult, output string) error {
	data, err := gojson.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
