// Package config defines the application configuration structure and
// loading logic. Configuration is sourced from environment variables
// (SPROUT_ prefix) and an optional config.yaml file, then validated
// with struct tags before the application starts.
package config
