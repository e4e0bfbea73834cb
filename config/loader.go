package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/firekit/logger"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	UserConfigDir() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a program.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.findConfigFile(serviceName)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.findEnvFile(serviceName)
	}

	return resolved
}

// findConfigFile searches for <name>.yml in the working directory, ./config
// and the user config directory.
func (cr *Resolver) findConfigFile(serviceName string) string {
	searchPaths := []string{
		fmt.Sprintf("./%s.yml", serviceName),
		fmt.Sprintf("./%s.yaml", serviceName),
		fmt.Sprintf("./config/%s.yml", serviceName),
	}
	if dir, err := cr.FileSystem.UserConfigDir(); err == nil && dir != "" {
		searchPaths = append(searchPaths, filepath.Join(dir, serviceName, serviceName+".yml"))
	}

	for _, path := range searchPaths {
		if cr.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env.<name> and .env in the working directory
// and ./config.
func (cr *Resolver) findEnvFile(serviceName string) string {
	envFiles := []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}

	for _, envFile := range envFiles {
		for _, basePath := range []string{".", "./config"} {
			fullPath := basePath + "/" + envFile
			if cr.FileSystem.Exists(fullPath) {
				return fullPath
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	Flags      *pflag.FlagSet
	// FlagKeys maps config keys to flag names in Flags.
	FlagKeys map[string]string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithFlags binds flags to config keys. keys maps a config key
// ("database.endpoint") to a flag name ("endpoint").
func WithFlags(fs *pflag.FlagSet, keys map[string]string) LoaderOption {
	return func(lc *LoaderConfig) {
		lc.Flags = fs
		lc.FlagKeys = keys
	}
}

// LoadConfig loads configuration for a program into the provided cfg struct.
// It searches for <name>.yml and .env files in standard locations, binds
// <NAME>_* environment variables and flags, and unmarshals the result into cfg.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	return loadFromResolvedFiles(serviceName, cfg, files, lc)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(serviceName string, cfg any, files ResolvedFiles, lc LoaderConfig) error {
	v := viper.New()
	log := logger.Get("config")

	// 1. YAML config file
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
		}
		log.Debug("config file loaded", logger.Fields("path", files.ConfigFile))
	}

	// 2. .env file; existing environment variables win
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.WithError(err).Warn("failed to load .env file", logger.Fields("path", files.EnvFile))
		}
	}

	// 3. Prefixed environment variables
	bindEnvVars(v, envPrefix(serviceName))

	// 4. Flags
	if lc.Flags != nil {
		for key, name := range lc.FlagKeys {
			flag := lc.Flags.Lookup(name)
			if flag == nil {
				return fmt.Errorf("config key %s bound to unknown flag --%s", key, name)
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", serviceName, err)
	}

	return nil
}

// envPrefix returns the environment prefix for a program name
// ("firekit" becomes "FIREKIT_").
func envPrefix(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"
}

// bindEnvVars binds every environment variable carrying prefix to all the
// config keys its remainder could spell.
func bindEnvVars(v *viper.Viper, prefix string) {
	for _, env := range os.Environ() {
		key, _, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
			continue
		}
		for _, variant := range generateEnvKeyVariants(strings.TrimPrefix(key, prefix)) {
			_ = v.BindEnv(variant, key)
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	DATABASE_ENDPOINT -> [database_endpoint, database.endpoint]
//	DATABASE_HTTP_USER_AGENT -> [database_http_user_agent, database.http.user.agent, database.http_user_agent, database.http.user_agent, ...]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// prefix.suffix_with_underscores for every split point
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
