// Package config loads firekit configuration from a YAML file, a .env file,
// FIREKIT_* environment variables and command-line flags.
//
// Precedence, highest first: changed flags, environment (including values
// loaded from .env), the config file, flag defaults.
//
//	var cfg Config
//	err := config.LoadConfig("firekit", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithFlags(fs, map[string]string{"database.endpoint": "endpoint"}),
//	)
//
// FIREKIT_DATABASE_ENDPOINT sets database.endpoint; underscores map to any
// nesting level so FIREKIT_DATABASE_HTTP_USER_AGENT also reaches
// database.http.user_agent.
package config
