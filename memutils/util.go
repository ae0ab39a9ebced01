package memutils

import (
	"strconv"

	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~int32 | ~int64
}

// CheckPositive returns an error wrapping cause if number is zero or negative
func CheckPositive[T Number](number T, name string, cause error) error {
	if number <= 0 {
		return cerrors.Wrapf(cause, "%s is %d", name, number)
	}
	return nil
}

// CheckPartitionSizes verifies that sizes can be used to build a partition table. It returns an error wrapping
// ErrInvalidPartitionSizes if the list is empty or any entry is not positive.
func CheckPartitionSizes(sizes []int) error {
	if len(sizes) == 0 {
		return cerrors.Wrap(ErrInvalidPartitionSizes, "no partitions were provided")
	}

	for i, size := range sizes {
		err := CheckPositive(size, "partition "+strconv.Itoa(i), ErrInvalidPartitionSizes)
		if err != nil {
			return err
		}
	}

	return nil
}

// CheckProcessSize verifies that a process size can be requested from a partition table. It returns an error
// wrapping ErrInvalidRequest if the size is not positive.
func CheckProcessSize(size int) error {
	return CheckPositive(size, "process size", ErrInvalidRequest)
}
