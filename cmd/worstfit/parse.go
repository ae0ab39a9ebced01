package main

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/worstfit/memutils"
)

// parsePartitionSizes reads a comma-separated list of partition sizes. Entries that are not made up
// entirely of decimal digits are skipped, so "100, abc, 200" yields [100 200]. Zero is kept and left for
// the partition table to reject. A digit entry too large for an int is an error.
func parsePartitionSizes(input string) ([]int, error) {
	var sizes []int

	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" || strings.TrimLeft(field, "0123456789") != "" {
			continue
		}

		size, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(memutils.ErrInvalidPartitionSizes, "partition size %s is out of range", field)
		}
		sizes = append(sizes, size)
	}

	if len(sizes) == 0 {
		return nil, errors.Wrapf(memutils.ErrInvalidPartitionSizes, "no partition sizes could be read from %q", input)
	}

	return sizes, nil
}

// parseProcessSizes converts every argument to a process size, failing on the first one that is not
// a positive integer
func parseProcessSizes(args []string) ([]int, error) {
	sizes := make([]int, 0, len(args))

	for _, arg := range args {
		size, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, errors.Wrapf(memutils.ErrInvalidRequest, "%q is not an integer", arg)
		}

		err = memutils.CheckProcessSize(size)
		if err != nil {
			return nil, err
		}

		sizes = append(sizes, size)
	}

	return sizes, nil
}
