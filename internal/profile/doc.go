// SPDX-License-Identifier: MPL-2.0

// Package profile applies the bootstrapper's single host side effect: making
// sure the tool's bin directory is exported on PATH in the user's shell
// profile.
//
// The operation is an explicit idempotent "ensure line present" edit,
// parameterized by file path and line content. The line is appended at most
// once no matter how many times the bootstrapper runs; an existing line
// anywhere in the file suppresses the append.
package profile
