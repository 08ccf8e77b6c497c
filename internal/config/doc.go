// Package config manages safeurl's configuration.
//
// Configuration comes from three layers, later layers overriding earlier:
//  1. Compiled-in defaults (NewConfig)
//  2. An optional YAML file (.safeurl), searched explicit path first,
//     then the current directory, then the user's home directory
//  3. CLI flags
//
// Design decision: The Config struct is flat and passed via dependency
// injection rather than global state, so tests can construct arbitrary
// configurations without touching files or environment.
package config
