package cerr

import (
	"errors"
	"fmt"

	"github.com/kazz187/portfolio/pkg/docstore"
)

// StoreUnavailableMessage is the fixed detail for requests made while no
// database is attached.
const StoreUnavailableMessage = "Database not available"

// ErrStoreUnavailable is the request error for a handle without a database.
func ErrStoreUnavailable() *Error {
	return NewError(Internal, StoreUnavailableMessage, docstore.ErrUnavailable)
}

func WrapStoreReadError(target string, err error) error {
	switch {
	case errors.Is(err, docstore.ErrUnavailable):
		return NewError(Internal, StoreUnavailableMessage, err)
	case errors.Is(err, docstore.ErrNotFound):
		return NewError(NotFound, fmt.Sprintf("%s not found", target), err)
	}
	return NewError(Internal, "server error", fmt.Errorf("failed to read %s: %w", target, err))
}

func WrapStoreWriteError(target string, err error) error {
	switch {
	case errors.Is(err, docstore.ErrUnavailable):
		return NewError(Internal, StoreUnavailableMessage, err)
	case errors.Is(err, docstore.ErrDuplicateKey):
		return NewError(AlreadyExists, fmt.Sprintf("%s already exists", target), err)
	}
	return NewError(Internal, "server error", fmt.Errorf("failed to write %s: %w", target, err))
}
