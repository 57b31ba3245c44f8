package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/luiz-simples/keyop.git/internal/app"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

const (
	flagOperations = "ops"
	flagClients    = "clients"
	flagValueSize  = "value-size"
	flagTTL        = "ttl"
	flagOutput     = "output"

	benchKeyPrefix = "bench"
)

type (
	BenchConfig struct {
		Operations int           `json:"operations"`
		Clients    int           `json:"clients"`
		ValueSize  int           `json:"value_size"`
		TTL        time.Duration `json:"ttl"`
	}

	CommandResult struct {
		Command      string        `json:"command"`
		TotalOps     int           `json:"total_ops"`
		Duration     time.Duration `json:"duration"`
		OpsPerSecond float64       `json:"ops_per_second"`
		AvgLatency   time.Duration `json:"avg_latency"`
		P95Latency   time.Duration `json:"p95_latency"`
		P99Latency   time.Duration `json:"p99_latency"`
		MinLatency   time.Duration `json:"min_latency"`
		MaxLatency   time.Duration `json:"max_latency"`
		ErrorCount   int           `json:"error_count"`
		SuccessRate  float64       `json:"success_rate"`
	}

	BenchResult struct {
		Config    BenchConfig     `json:"config"`
		Commands  []CommandResult `json:"commands"`
		StartTime time.Time       `json:"start_time"`
		EndTime   time.Time       `json:"end_time"`
	}

	// benchStep prepares key and then runs the measured operation on it.
	benchStep struct {
		name    string
		prepare func(ctx context.Context, operator *app.BasicOperator, key, value string, config BenchConfig) error
		measure func(ctx context.Context, operator *app.BasicOperator, key, value string, config BenchConfig) error
	}
)

var (
	// BenchCmd measures every operator command against the configured store.
	BenchCmd = &cobra.Command{
		Use:                "bench",
		Short:              "Measures throughput and latency of the operators",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  connect,
		PersistentPostRunE: disconnect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := BenchConfig{}
			config.Operations, _ = cmd.Flags().GetInt(flagOperations)
			config.Clients, _ = cmd.Flags().GetInt(flagClients)
			config.ValueSize, _ = cmd.Flags().GetInt(flagValueSize)
			config.TTL, _ = cmd.Flags().GetDuration(flagTTL)
			output, _ := cmd.Flags().GetString(flagOutput)

			if config.Operations < 1 || config.Clients < 1 || config.Clients > config.Operations {
				return fmt.Errorf("%w: need 1 <= clients <= ops", domain.ErrOutOfRange)
			}

			result := runBench(cmd.Context(), operator, config)

			for _, command := range result.Commands {
				write(cmd, fmt.Sprintf("%-8s %10.2f ops/sec  avg %-12v p99 %-12v errors %d",
					command.Command, command.OpsPerSecond, command.AvgLatency, command.P99Latency, command.ErrorCount))
			}

			if len(output) == 0 {
				return nil
			}

			return saveBench(result, output)
		},
	}

	benchSteps = []benchStep{
		{name: "SET", measure: benchSet},
		{name: "GET", prepare: benchSet, measure: func(ctx context.Context, operator *app.BasicOperator, key, _ string, _ BenchConfig) error {
			_, err := operator.String().Get(ctx, key)
			return err
		}},
		{name: "DEL", prepare: benchSet, measure: func(ctx context.Context, operator *app.BasicOperator, key, _ string, _ BenchConfig) error {
			_, err := operator.Key().Del(ctx, key)
			return err
		}},
		{name: "UNLINK", prepare: benchSet, measure: func(ctx context.Context, operator *app.BasicOperator, key, _ string, _ BenchConfig) error {
			_, err := operator.Key().Unlink(ctx, key)
			return err
		}},
		{name: "EXPIRE", prepare: benchSet, measure: benchExpire},
		{name: "TTL", prepare: benchSetExpire, measure: func(ctx context.Context, operator *app.BasicOperator, key, _ string, _ BenchConfig) error {
			_, err := operator.Key().TTL(ctx, key)
			return err
		}},
		{name: "PERSIST", prepare: benchSetExpire, measure: func(ctx context.Context, operator *app.BasicOperator, key, _ string, _ BenchConfig) error {
			_, err := operator.Key().Persist(ctx, key)
			return err
		}},
	}
)

func init() {
	BenchCmd.Flags().Int(flagOperations, 10000, "operations per command")
	BenchCmd.Flags().Int(flagClients, 10, "concurrent clients")
	BenchCmd.Flags().Int(flagValueSize, 64, "value size in bytes")
	BenchCmd.Flags().Duration(flagTTL, 5*time.Minute, "expiry used by EXPIRE, TTL and PERSIST")
	BenchCmd.Flags().String(flagOutput, "", "optional directory for a JSON report")
}

func runBench(ctx context.Context, operator *app.BasicOperator, config BenchConfig) BenchResult {
	result := BenchResult{Config: config, StartTime: time.Now()}
	value := benchValue(config.ValueSize)

	for _, step := range benchSteps {
		result.Commands = append(result.Commands, runStep(ctx, operator, step, value, config))
	}

	result.EndTime = time.Now()
	return result
}

func runStep(ctx context.Context, operator *app.BasicOperator, step benchStep, value string, config BenchConfig) CommandResult {
	var (
		group     sync.WaitGroup
		gate      sync.Mutex
		latencies = make([]time.Duration, 0, config.Operations)
		failures  = 0
	)

	perClient := config.Operations / config.Clients
	started := time.Now()

	for worker := range config.Clients {
		group.Add(1)

		go func() {
			defer group.Done()

			for index := range perClient {
				key := fmt.Sprintf("%s:%s:%d:%d", benchKeyPrefix, strings.ToLower(step.name), worker, index)

				if step.prepare != nil {
					step.prepare(ctx, operator, key, value, config)
				}

				begin := time.Now()
				err := step.measure(ctx, operator, key, value, config)
				latency := time.Since(begin)

				gate.Lock()
				latencies = append(latencies, latency)

				if hasError(err) {
					failures++
				}

				gate.Unlock()
			}
		}()
	}

	group.Wait()

	return summarize(step.name, latencies, time.Since(started), failures)
}

func summarize(command string, latencies []time.Duration, duration time.Duration, failures int) CommandResult {
	result := CommandResult{
		Command:    command,
		TotalOps:   len(latencies),
		Duration:   duration,
		ErrorCount: failures,
	}

	if len(latencies) == 0 {
		return result
	}

	slices.Sort(latencies)

	var total time.Duration

	for _, latency := range latencies {
		total += latency
	}

	succeeded := len(latencies) - failures

	result.AvgLatency = total / time.Duration(len(latencies))
	result.MinLatency = latencies[0]
	result.MaxLatency = latencies[len(latencies)-1]
	result.P95Latency = percentile(latencies, 0.95)
	result.P99Latency = percentile(latencies, 0.99)
	result.OpsPerSecond = float64(succeeded) / duration.Seconds()
	result.SuccessRate = float64(succeeded) / float64(len(latencies)) * 100

	return result
}

// percentile expects sorted latencies.
func percentile(latencies []time.Duration, rank float64) time.Duration {
	index := int(float64(len(latencies)) * rank)
	return latencies[min(index, len(latencies)-1)]
}

func benchSet(ctx context.Context, operator *app.BasicOperator, key, value string, _ BenchConfig) error {
	_, err := operator.String().Set(ctx, key, value, domain.SetOptions{})
	return err
}

func benchExpire(ctx context.Context, operator *app.BasicOperator, key, _ string, config BenchConfig) error {
	_, err := operator.Key().ExpireIn(ctx, key, config.TTL, domain.ExpireNone)
	return err
}

func benchSetExpire(ctx context.Context, operator *app.BasicOperator, key, value string, config BenchConfig) error {
	if err := benchSet(ctx, operator, key, value, config); hasError(err) {
		return err
	}

	return benchExpire(ctx, operator, key, value, config)
}

func benchValue(size int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	value := make([]byte, size)

	for index := range value {
		value[index] = charset[index%len(charset)]
	}

	return string(value)
}

func saveBench(result BenchResult, directory string) error {
	if err := os.MkdirAll(directory, 0o755); hasError(err) {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")

	if hasError(err) {
		return err
	}

	name := filepath.Join(directory, "bench_"+result.StartTime.Format("15-04-05")+".json")
	return os.WriteFile(name, data, 0o644)
}
