/*
Package errors provides semantic error types for the tablestore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("entity not found")
	    ErrAlreadyExists   = errors.New("entity already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrUnsupportedType = errors.New("unsupported property type")
	)

Usage:

	// Check error type
	err := store.Insert(ctx, entity)
	if err != nil {
	    if errors.IsUnsupportedType(err) {
	        // A property carries a value the wire format cannot represent
	        return fmt.Errorf("entity %s rejected: %w", entity.RowKey(), err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("Customers", "123")
	err := errors.NewUnsupportedTypeError("Owner", "main.Person")
	err := errors.NewValidationError("email", "invalid format")
	err := errors.NewConditionFailedError("update", "version mismatch")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors