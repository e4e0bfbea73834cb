// Package validation validates firekit configuration and CLI input.
//
// Struct tag validation uses go-playground/validator; field names in
// messages follow the mapstructure tag so they match the config file keys:
//
//	type Config struct {
//	    Endpoint string        `mapstructure:"endpoint" validate:"required,startswith=https://"`
//	    Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic checks collect errors the same way:
//
//	v := validation.New()
//	v.OneOf("command", cmd, commands)
//	err := v.Validate()
package validation
