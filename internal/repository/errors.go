package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate is returned when an insert or update trips a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// ErrDogUnavailable is returned when an approval targets a dog that is already adopted.
var ErrDogUnavailable = errors.New("dog already adopted")

const pqUniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
