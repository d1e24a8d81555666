/*
Package errors provides semantic error types for the dynblocks library.

The package defines the registry's failure modes with specific types that can
be checked using the standard errors.Is() function or the provided helper
functions.

Common Errors:

	var (
	    ErrDuplicateFamily   = errors.New("family already exists")
	    ErrInvalidSchema     = errors.New("invalid parameter schema")
	    ErrUnknownFamily     = errors.New("unknown family")
	    ErrUnknownInstance   = errors.New("unknown instance")
	    ErrParameterMismatch = errors.New("parameter mismatch")
	    ErrHostOperation     = errors.New("host operation failed")
	)

Usage:

	// Check error type
	rec, err := reg.InsertInstance(ctx, "DoorPanel", values, placement)
	if err != nil {
	    if errors.IsParameterMismatch(err) {
	        // Re-prompt the user for corrected values
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewUnknownFamilyError("DoorPanel")
	err := errors.NewParameterMismatchError("Width", "must be positive")
	err := errors.NewHostOperationError("place instance", hostErr)

HostOperationError wraps the underlying collaborator failure, so errors.As
and errors.Unwrap reach the host's own error value.
*/
package errors
