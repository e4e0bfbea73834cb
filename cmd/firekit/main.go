// Command firekit issues one Realtime Database request per invocation.
//
//	firekit --endpoint https://dinosaur-facts.firebaseio.com/ --path dinosaurs \
//	    --order-by '"height"' --limit-to-first 2 get
//
// Settings come from firekit.yml, FIREKIT_* environment variables (also read
// from .env) and flags, in increasing precedence.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"github.com/kbukum/firekit/logger"
	"github.com/kbukum/firekit/observability"
	"github.com/kbukum/firekit/rtdb"
	"github.com/kbukum/firekit/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one invocation. extra options are applied to the client last.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, extra ...rtdb.Option) int {
	inv, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(stdout, usage(inv.flags))
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n\n%s", err, usage(inv.flags))
		return exitUsage
	}

	if inv.command == "version" {
		fmt.Fprintln(stdout, version.Get().String())
		return exitOK
	}

	cfg, err := loadConfig(inv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	// Packages log through component loggers derived from the global one.
	cfg.Logging.Writer = stderr
	log := logger.New(&cfg.Logging, appName)
	prev := logger.GetGlobalLogger()
	logger.SetGlobalLogger(log)
	defer logger.SetGlobalLogger(prev)

	shutdown, opts, err := setupObservability(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer shutdown()

	client, err := rtdb.NewFromConfig(cfg.Database, append(opts, extra...)...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer func() { _ = client.Close(ctx) }()
	for _, seg := range segments(inv.path) {
		client.Child(seg)
	}
	for m, v := range inv.modifiers {
		client.Set(m, v)
	}

	if err := execute(ctx, client, inv, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func execute(ctx context.Context, client *rtdb.Client, inv *invocation, stdout io.Writer) error {
	switch inv.command {
	case "get":
		if inv.selectExpr != "" {
			nodes, err := client.Select(ctx, inv.selectExpr)
			if err != nil {
				return err
			}
			return writeNodes(stdout, nodes, inv.output)
		}
		body, err := client.Get(ctx)
		if err != nil {
			return err
		}
		return writeBody(stdout, body, inv.output)
	case "put":
		_, err := client.Put(ctx, inv.data)
		return err
	case "post":
		key, err := client.PostName(ctx, inv.data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, key)
		return err
	case "patch":
		_, err := client.Patch(ctx, inv.data)
		return err
	case "delete":
		_, err := client.Delete(ctx)
		return err
	}
	return fmt.Errorf("unknown command %q", inv.command)
}

// writeBody prints a response body as returned, or converted to YAML.
func writeBody(w io.Writer, body, output string) error {
	if output != "yaml" {
		_, err := fmt.Fprintln(w, body)
		return err
	}
	out, err := yaml.JSONToYAML([]byte(body))
	if err != nil {
		return fmt.Errorf("converting response to yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// writeNodes prints selected nodes one JSON value per line, or as a YAML
// sequence.
func writeNodes(w io.Writer, nodes []any, output string) error {
	if output == "yaml" {
		out, err := yaml.Marshal(nodes)
		if err != nil {
			return fmt.Errorf("encoding selection as yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
	enc := json.NewEncoder(w)
	for _, n := range nodes {
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	return nil
}

// setupObservability installs the tracer and meter providers enabled in cfg.
// The returned function flushes and stops them.
func setupObservability(ctx context.Context, cfg *appConfig, log *logger.Logger) (func(), []rtdb.Option, error) {
	var (
		stops []func(context.Context) error
		opts  []rtdb.Option
	)
	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, stop := range stops {
			if err := stop(sctx); err != nil {
				log.WithError(err).Warn("telemetry shutdown failed")
			}
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, &cfg.Tracing)
		if err != nil {
			return func() {}, nil, err
		}
		stops = append(stops, tp.Shutdown)
	}
	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &cfg.Metrics)
		if err != nil {
			shutdown()
			return func() {}, nil, err
		}
		stops = append(stops, mp.Shutdown)
		metrics, err := observability.NewMetrics(observability.Meter(appName))
		if err != nil {
			shutdown()
			return func() {}, nil, err
		}
		opts = append(opts, rtdb.WithMetrics(metrics))
	}
	return shutdown, opts, nil
}
