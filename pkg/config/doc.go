// Package config handles loader configuration for modstrap.
// Settings are layered from embedded defaults, the user's TOML file under
// the game's UserData directory, and MODSTRAP_ environment variables.
package config
