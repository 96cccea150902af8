// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for envup.
//
// This package implements the Cobra command hierarchy: the root command,
// the `up` bootstrap command, the read-only `doctor` diagnostics, and the
// configuration and completion subcommands.
package cmd
