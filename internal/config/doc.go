// Package config loads focustrack settings.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Defaults)
//  2. A TOML or YAML file, chosen by extension
//  3. A .env file, when present
//  4. Process environment variables prefixed with FOCUSTRACK_
//
// A missing config file or .env file is not an error.
package config
