// Package config provides configuration management for the Fantasy Forge API.
//
// Configuration is loaded from /etc/forge/forge.yml (override the directory
// with FORGE_CONFIG_PATH) and from FORGE_* environment variables, with
// environment taking precedence over file and file over defaults. Each
// attribute remembers its source so "forgectl configuration show" can report
// where a value came from.
//
//	cfg := config.Get()
//	limit := cfg.ClampLimit(requestedLimit)
package config
