// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the tracked-device capability the XR session
// engine consumes: sampling a device's predicted spatial relation at a
// timestamp and querying per-view display geometry.
//
// Implementations wrap real HMD drivers or test doubles. The engine relies
// on the contract that sampling never fails; a device reports what it does
// not know through [RelationFlags] rather than errors.
package device
