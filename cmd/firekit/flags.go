package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/firekit/config"
	"github.com/kbukum/firekit/observability"
	"github.com/kbukum/firekit/rtdb"
	"github.com/kbukum/firekit/validation"
	"github.com/kbukum/firekit/version"
)

const appName = "firekit"

var commands = []string{"get", "put", "post", "patch", "delete", "version"}

// appConfig is the merged result of firekit.yml, FIREKIT_* variables and flags.
type appConfig struct {
	config.ServiceConfig `mapstructure:",squash"`

	Database rtdb.Config                `yaml:"database" mapstructure:"database"`
	Tracing  observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics  observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

func (c *appConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Database.ApplyDefaults()

	tr := observability.DefaultTracerConfig(c.Name)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = tr.ServiceName
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = version.Version
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = tr.Endpoint
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = tr.SampleRate
	}

	mt := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = mt.ServiceName
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = version.Version
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = mt.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = mt.Interval
	}
}

// invocation holds what a single run was asked to do.
type invocation struct {
	command    string
	configFile string
	path       string
	data       string
	selectExpr string
	output     string
	modifiers  map[rtdb.Modifier]string
	flags      *pflag.FlagSet
}

// modifierFlags maps query flags to the modifier they set.
var modifierFlags = []struct {
	name string
	mod  rtdb.Modifier
	help string
}{
	{"order-by", rtdb.ModOrderBy, `orderBy modifier, e.g. '"$key"'`},
	{"limit-to-first", rtdb.ModLimitToFirst, "limitToFirst modifier"},
	{"limit-to-last", rtdb.ModLimitToLast, "limitToLast modifier"},
	{"start-at", rtdb.ModStartAt, "startAt modifier"},
	{"end-at", rtdb.ModEndAt, "endAt modifier"},
	{"equal-to", rtdb.ModEqualTo, "equalTo modifier"},
}

// configFlags binds config keys to flag names.
var configFlags = map[string]string{
	"database.endpoint":        "endpoint",
	"database.strict_endpoint": "strict-endpoint",
	"database.legacy_patch":    "legacy-patch",
	"database.http.timeout":    "timeout",
	"logging.level":            "log-level",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.String("config", "", "path to a firekit.yml config file")
	fs.String("endpoint", "", "database URL, e.g. https://<name>.firebaseio.com/")
	fs.String("path", "", "slash-separated location below the endpoint")
	for _, m := range modifierFlags {
		fs.String(m.name, "", m.help)
	}
	fs.String("data", "", "JSON body for put, post and patch; @file reads it from a file")
	fs.String("select", "", "JSONPath expression applied to the result of get")
	fs.StringP("output", "o", "json", "output format of get: json or yaml")
	fs.Bool("legacy-patch", false, "send patch as POST")
	fs.Bool("strict-endpoint", false, "require exactly https://<name>.firebaseio.com/")
	fs.Duration("timeout", 0, "request timeout (default 30s)")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error, disabled")
	return fs
}

func usage(fs *pflag.FlagSet) string {
	return fmt.Sprintf("Usage: %s [flags] <%s>\n\nFlags:\n%s", appName, strings.Join(commands, "|"), fs.FlagUsages())
}

// parseArgs parses flags and checks the command line. It does not read
// configuration.
func parseArgs(args []string) (*invocation, error) {
	fs := newFlagSet()
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return &invocation{flags: fs}, err
	}

	inv := &invocation{
		flags:     fs,
		modifiers: make(map[rtdb.Modifier]string),
	}
	inv.configFile, _ = fs.GetString("config")
	inv.path, _ = fs.GetString("path")
	inv.data, _ = fs.GetString("data")
	inv.selectExpr, _ = fs.GetString("select")
	inv.output, _ = fs.GetString("output")
	for _, m := range modifierFlags {
		if v, _ := fs.GetString(m.name); v != "" {
			inv.modifiers[m.mod] = v
		}
	}

	rest := fs.Args()
	if len(rest) > 0 {
		inv.command = rest[0]
	}

	v := validation.New()
	v.Custom(len(rest) <= 1, "command", "expects exactly one command")
	v.OneOf("command", inv.command, commands)
	needsData := inv.command == "put" || inv.command == "post" || inv.command == "patch"
	v.Custom(!needsData || fs.Changed("data"), "data", "is required for put, post and patch")
	v.Custom(inv.selectExpr == "" || inv.command == "get", "select", "is only supported by get")
	v.OneOf("output", inv.output, []string{"json", "yaml"})
	if appErr := v.Validate(); appErr != nil {
		return inv, appErr
	}

	if strings.HasPrefix(inv.data, "@") {
		b, err := os.ReadFile(inv.data[1:])
		if err != nil {
			return inv, fmt.Errorf("reading --data file: %w", err)
		}
		inv.data = string(b)
	}
	return inv, nil
}

// loadConfig merges the config file, environment and flags.
func loadConfig(inv *invocation) (*appConfig, error) {
	opts := []config.LoaderOption{config.WithFlags(inv.flags, configFlags)}
	if inv.configFile != "" {
		if _, err := os.Stat(inv.configFile); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		opts = append(opts, config.WithConfigFile(inv.configFile))
	}

	var cfg appConfig
	if err := config.LoadConfig(appName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.ServiceConfig.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// segments splits --path into location segments, dropping empty ones.
func segments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
