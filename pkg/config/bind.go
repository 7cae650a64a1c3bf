package config

import (
	"github.com/caarlos0/env/v11"
)

// Bind populates a struct's `env`-tagged fields from the process
// environment. Infrastructure settings (database, redis, server) use
// tagged structs; platform keys use the dotted-key store.
//
//	type serverConfig struct {
//		Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
//		ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg serverConfig
//	if err := config.Bind(&cfg); err != nil { ... }
func Bind(v any) error {
	if v == nil {
		return ErrNilStruct
	}
	return env.Parse(v)
}
