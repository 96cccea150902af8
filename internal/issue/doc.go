// SPDX-License-Identifier: MPL-2.0

// Package issue maps bootstrap failure conditions to user-facing guidance.
//
// Each fatal condition has a stable Id and a markdown help text rendered
// with glamour at the CLI boundary. ActionableError carries operation,
// resource, and fix suggestions through the error chain so the final
// message tells the operator what failed and what to try next.
package issue
