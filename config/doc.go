// Package config loads runtime configuration and builds database connections
// for the loan ledger.
//
// Configuration is read with cleanenv: a YAML file when CONFIG_PATH points at
// one, environment variables on top, struct-tag defaults at the bottom.
package config
