// Package config handles configuration management for xctinstall.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. a project file: the --config path, or .xctinstall.toml in the working directory
//  3. XCTINSTALL_* environment variables
//
// With no project file and no environment overrides the result is the
// built-in template list, so a bare invocation needs no configuration.
package config
