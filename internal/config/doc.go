// Package config persists Glint's user configuration.
//
// The configuration file lives in the platform config directory
// (~/.config/glint/config.yaml on Linux/macOS, %LOCALAPPDATA%\glint on
// Windows) and holds two things:
//
//   - the cache of known bulbs, keyed by stable bulb id, with alias,
//     model, and last known control endpoint. This cache is the list of
//     "previously known identities" fed to reconciliation each scan.
//   - application preferences: scan window, command timeout, power
//     transition duration, and an optional multicast group override.
//
// Loading is lazy and returns a shared instance; Save performs an
// atomic write (temp file + rename) so a crash cannot corrupt the file.
package config
