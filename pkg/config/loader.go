// Package config loads configuration structs from the process environment.
//
// A .env file in the working directory is read once, before the first struct
// is parsed; variables already set in the environment win. Field mapping and
// validation come from caarlos0/env struct tags:
//
//	type Config struct {
//		User string `env:"EMAIL_USER,required,notEmpty"`
//		Port int    `env:"EMAIL_SMTP_PORT" envDefault:"465"`
//	}
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load parses environment variables into v.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env is normal outside local development.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
