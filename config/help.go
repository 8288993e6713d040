package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `Walk tracking service.

Usage:
  walk [flags]

Flags:
  -config-path  path to the config yaml file (default "config.yaml")
  -help         show this message

Configuration is read from the yaml file and the environment; environment
variables win.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the effective configuration with secrets masked.
func PrintConfig(cfg *Config) {
	fmt.Printf("server:    port=%s\n", cfg.Server.Port)
	fmt.Printf("database:  host=%s port=%s db=%s user=%s\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database, cfg.Database.User)
	fmt.Printf("rabbitmq:  host=%s port=%s user=%s\n",
		cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User)
	fmt.Printf("geocoder:  api_key=%s\n", mask(cfg.Geocoder.APIKey))
	fmt.Printf("auth:      jwt_secret=%s\n", mask(cfg.Auth.JWTSecret))
	fmt.Printf("log:       level=%s\n", cfg.Log.Level)
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}
