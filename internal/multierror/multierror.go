// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package multierror collects several problems into a single error.
//
// A common use of this package is as follows.
//
//	errs := multierror.New()
//	for _, name := range names {
//		if bad(name) {
//			errs.Addf("%s is bad", name)
//		}
//	}
//	return errs.ErrOrNil()
package multierror

import (
	"fmt"
	"strings"
)

// MultiError holds a list of errors, which could be empty. Use New() to create one.
type MultiError []error

func New() MultiError {
	return make([]error, 0)
}

// Add appends err. The provided err must not be nil.
func (m *MultiError) Add(err error) {
	*m = append(*m, err)
}

// Addf appends an error built from format and args.
func (m *MultiError) Addf(format string, args ...any) {
	m.Add(fmt.Errorf(format, args...))
}

func (m MultiError) Error() string {
	sb := strings.Builder{}
	_, _ = fmt.Fprintf(&sb, "%d error(s):", len(m))
	for _, err := range m {
		_, _ = fmt.Fprintf(&sb, "\n- %s", err.Error())
	}
	return sb.String()
}

// Unwrap allows errors.Is and errors.As to match any of the collected errors.
func (m MultiError) Unwrap() []error {
	return m
}

// ErrOrNil returns nil when no errors were added, and the MultiError otherwise.
func (m MultiError) ErrOrNil() error {
	if len(m) > 0 {
		return m
	}
	return nil
}
