// Package config loads the tool's runtime configuration from multiple sources
// (YAML files, environment variables, CLI flags) with precedence: CLI flags >
// YAML config > Environment variables > Defaults. Option definitions found in
// the YAML file and in --set flags are carried as typed option sources.
package config
