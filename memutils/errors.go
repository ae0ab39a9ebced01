package memutils

import "github.com/pkg/errors"

// ErrInvalidPartitionSizes is the error returned from CheckPartitionSizes or other methods if a partition table is
// requested with no partitions, or with a partition whose size is not a positive number of kilobytes
var ErrInvalidPartitionSizes error = errors.New("partition sizes must be a non-empty list of positive integers")

// ErrInvalidRequest is the error returned from CheckProcessSize or other methods if an allocation is requested for
// a process size that is not a positive number of kilobytes
var ErrInvalidRequest error = errors.New("process size must be a positive integer")
