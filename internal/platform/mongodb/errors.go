package mongodb

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasklist-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a driver error to the matching store error, wrapping the
// original to preserve context.
//
// Anything that is not a missing document or a rejected write is treated as
// the store being unavailable.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && !mongo.IsNetworkError(err) && !mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
}
