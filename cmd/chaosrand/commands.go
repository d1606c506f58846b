package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sio/pond/chaosrand/baseline"
	"github.com/sio/pond/chaosrand/generator"
	"github.com/sio/pond/chaosrand/jitter"
	"github.com/sio/pond/chaosrand/logger"
	"github.com/sio/pond/chaosrand/stats"
	"github.com/sio/pond/chaosrand/stream"
)

type CLI struct {
	LogLevel  string          `default:"info" enum:"debug,info,warn,error" env:"CHAOSRAND_LOG_LEVEL" help:"Log verbosity (${enum})"`
	LogFormat string          `default:"text" enum:"text,json" env:"CHAOSRAND_LOG_FORMAT" help:"Log format (${enum}), logs always go to stderr"`
	Config    kong.ConfigFlag `placeholder:"path" help:"Load default flag values from JSON file"`

	Stream   StreamCmd   `cmd:"" default:"withargs" help:"Stream generator output (default command)"`
	Baseline BaselineCmd `cmd:"" help:"Stream system entropy whitened by SHAKE256 for comparison"`
	Check    CheckCmd    `cmd:"" help:"Run quick sanity statistics on a sample"`
}

type MapFlags struct {
	R      float64 `name:"r" default:"3.9999" env:"CHAOSRAND_R" help:"Non-linearity parameter, r > 0"`
	Alpha  float64 `default:"1.0" env:"CHAOSRAND_ALPHA" help:"Singularity exponent, alpha >= 0"`
	Lambda float64 `default:"3.0" env:"CHAOSRAND_LAMBDA" help:"Error feedback gain, lambda > 0"`
	X0     float64 `name:"x0" default:"0.123456789" env:"CHAOSRAND_X0" help:"Initial state in [0,1)"`
	Jitter bool    `env:"CHAOSRAND_JITTER" help:"Perturb the map with hardware timing jitter (output is not reproducible)"`
}

func (f *MapFlags) Params() generator.Params {
	return generator.Params{
		R:      f.R,
		Alpha:  f.Alpha,
		Lambda: f.Lambda,
		X0:     f.X0,
	}
}

// Create generator. Returned cleanup function must be called when generator
// is no longer needed
func (f *MapFlags) Generator(ctx context.Context) (*generator.Generator, func(), error) {
	var options []generator.Option
	cleanup := func() {}
	if f.Jitter {
		session := jitter.Open(ctx)
		options = append(options, generator.WithPerturber(session.Probe()))
		cleanup = func() {
			err := session.Close()
			if err != nil {
				logger.FromContext(ctx).Error("jitter session", "error", err)
			}
		}
	}
	gen, err := generator.New(f.Params(), options...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return gen, cleanup, nil
}

type SinkFlags struct {
	Bytes    int64  `short:"n" placeholder:"N" help:"Stop after N bytes (default: stream forever)"`
	Output   string `short:"o" placeholder:"path" help:"Write to file instead of stdout"`
	Compress string `default:"none" enum:"none,zstd,lz4,snappy" help:"Compress output (${enum})"`
}

// Open the sink and pump data into it
func (f *SinkFlags) write(ctx context.Context, pump func(io.Writer) (int64, error)) error {
	log := logger.FromContext(ctx)
	sink, err := stream.Create(f.Output, f.Compress)
	if err != nil {
		return err
	}
	start := time.Now()
	written, err := pump(sink)
	if errors.Is(err, syscall.EPIPE) {
		log.Debug("reader has gone away", "error", err)
		err = nil
	}
	err = errors.Join(err, sink.Close())
	elapsed := time.Since(start)
	log.Info(
		"stream finished",
		"bytes", written,
		"elapsed", elapsed,
		"MBps", fmt.Sprintf("%.1f", float64(written)/elapsed.Seconds()/1e6),
	)
	return err
}

type StreamCmd struct {
	MapFlags
	SinkFlags
}

func (c *StreamCmd) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	gen, cleanup, err := c.Generator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	log.Info("streaming generator output", "params", gen.Params(), "jitter", c.Jitter, "limit", c.Bytes)
	err = c.write(ctx, func(w io.Writer) (int64, error) {
		return stream.Words(ctx, gen, w, c.Bytes)
	})
	if n := gen.Singularities(); n > 0 {
		log.Warn("map singularity was hit", "count", n)
	}
	return err
}

type BaselineCmd struct {
	SinkFlags
}

func (c *BaselineCmd) Run(ctx context.Context) error {
	logger.FromContext(ctx).Info("streaming baseline output", "limit", c.Bytes)
	return c.write(ctx, func(w io.Writer) (int64, error) {
		return stream.Bytes(ctx, baseline.New(), w, c.Bytes)
	})
}

type CheckCmd struct {
	MapFlags
	Source string `default:"generator" enum:"generator,baseline" help:"Sample source (${enum})"`
	Bytes  int64  `short:"n" default:"1048576" placeholder:"N" help:"Sample size in bytes"`
}

func (c *CheckCmd) Run(ctx context.Context) error {
	if c.Bytes <= 0 {
		return fmt.Errorf("sample size must be positive: %d", c.Bytes)
	}
	sample := new(bytes.Buffer)
	sample.Grow(int(c.Bytes))
	switch c.Source {
	case "baseline":
		_, err := stream.Bytes(ctx, baseline.New(), sample, c.Bytes)
		if err != nil {
			return err
		}
	default:
		gen, cleanup, err := c.Generator(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		_, err = stream.Words(ctx, gen, sample, c.Bytes)
		if err != nil {
			return err
		}
	}
	if int64(sample.Len()) != c.Bytes {
		return fmt.Errorf("interrupted after %d of %d bytes", sample.Len(), c.Bytes)
	}
	report := stats.Analyze(sample.Bytes())
	ok("%s: %s", c.Source, report)
	if failed := report.Failures(); len(failed) > 0 {
		return fmt.Errorf("%s sample failed sanity checks: %s", c.Source, strings.Join(failed, ", "))
	}
	return nil
}
