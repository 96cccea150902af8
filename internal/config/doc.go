// SPDX-License-Identifier: MPL-2.0

// Package config loads the envup configuration.
//
// Configuration lives in a CUE file (config.cue) in the platform config
// directory. Loading validates the file against an embedded schema, merges
// it into viper over the built-in defaults, and unmarshals into Config.
// A missing file is not an error: defaults apply.
package config
