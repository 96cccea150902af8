// SPDX-License-Identifier: MPL-2.0

// Package toolchain resolves the package-manager executable used by the
// bootstrapper.
//
// Resolution is an explicit ordered list of strategies, tried in sequence
// with first success winning:
//   - locate-in-PATH: exec.LookPath
//   - locate-in-known-dir: probe well-known install directories such as
//     ~/.local/bin and ~/.cargo/bin
//   - install-then-locate: run the platform's fallback installer once, then
//     re-probe the locate strategies
//
// When every strategy fails the resolver returns ErrToolUnavailable; the
// caller treats that as fatal with no retry.
package toolchain
