// Package config loads the lrxy configuration file.
//
// Configuration is TOML, found at ~/.config/lrxy/config.toml or an explicit
// --config path; a missing file yields defaults. Loading follows a
// parse → normalize → validate sequence so every consumer sees expanded,
// checked values.
package config
