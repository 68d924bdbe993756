// Package finder provides discovery adapters implementing the
// plugin.Finder capability.
//
//   - [Registry]: static in-process registration (the build-time
//     variant). Specs are registered by the embedding program and
//     enumerated in registration order.
//   - [ManifestFinder]: directory of TOML manifest files (the run-time
//     variant). Each manifest binds a (namespace, name) pair to a
//     factory key resolved against a caller-supplied factory table.
//     The directory scan is cached and can be kept fresh with an
//     fsnotify watch.
//
// Both adapters honor the finder contract: enumeration yields a
// per-name result, so one broken registration never hides the others.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package finder
