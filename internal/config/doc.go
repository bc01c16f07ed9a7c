// Package config loads, normalizes, and validates studydeck's TOML
// configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/studydeck/config.toml, then a project-local studydeck.toml. A
// missing file is valid; defaults cover every field so the tool runs with no
// setup beyond an API key. Path fields are tilde-expanded and made absolute
// during load, so downstream code never re-resolves them.
package config
