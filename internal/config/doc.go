// Package config loads, merges and validates configuration for the diary
// server and the diary client.
//
// Server configuration is assembled from (later sources override earlier
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. A JSON or YAML config file, chosen by extension
//
// The client skips command-line flags; cobra owns its command line and
// hands over only the config file path.
//
// Entry points are [GetStructuredConfig] and [GetClientConfig].
package config
