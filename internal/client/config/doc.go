// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with a local .env file loaded first.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Absence of the identity-provider settings is deliberate degradation, not
// an error: the client starts, warns, and stays permanently unauthenticated.
package config
