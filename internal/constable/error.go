// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package constable provides an error type that can be declared as a constant,
// which lets packages export sentinel errors for use with errors.Is.
package constable

var _ error = Error("")

type Error string

func (e Error) Error() string {
	return string(e)
}
