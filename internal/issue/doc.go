// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of markdown help
// pages for the failures users are most likely to hit.
//
// An [ActionableError] names the failed operation, the resource involved and
// what to try next. Catalog entries are rendered to the terminal with glamour.
package issue
