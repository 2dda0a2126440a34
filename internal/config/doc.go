// Package config loads application settings from an optional YAML file and
// TASKTRACK_-prefixed environment variables, then validates them.
package config
