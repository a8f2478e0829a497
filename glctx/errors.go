// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyAttached is returned by AttachTo when the context is
	// attached to a different surface.
	ErrAlreadyAttached = errors.New("glctx: context is already attached to another surface")
	// ErrDetached is returned by operations that need a running render
	// thread.
	ErrDetached = errors.New("glctx: context is not attached")

	errNoBackend = errors.New("glctx: no native backend registered")
)

// ContextCreationError reports a failed native context or surface
// negotiation. AttachTo returns it directly when the surface is already
// visible; for surfaces that become visible later it is reported
// through Context.Err.
type ContextCreationError struct {
	Cause error
}

func (e *ContextCreationError) Error() string {
	return fmt.Sprintf("glctx: native context creation failed: %v", e.Cause)
}

func (e *ContextCreationError) Unwrap() error { return e.Cause }
