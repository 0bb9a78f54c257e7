// SPDX-License-Identifier: MPL-2.0

// Package dirtree creates directories the way mkdir(1) does.
//
// A [Materializer] handles one [Request] at a time: it optionally creates
// every missing ancestor (always with the platform default permissions),
// then creates the target, applying an explicit [filemode.Mode] verbatim by
// clearing the process umask for the duration of that single mkdir call.
//
// Creation is attempted first and "already exists" is handled from the mkdir
// result, never from a preceding existence check, so a concurrent process
// creating the same path is tolerated.
//
// [Materializer.CreateAll] is the batch driver: it processes requests in
// order, keeps going after individual failures and folds the per-request
// outcomes into a single exit status.
package dirtree
