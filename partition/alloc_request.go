package partition

import "fmt"

// AllocationRequest is a type returned from Table.CreateAllocationRequest which indicates which block the
// worst-fit scan chose for a process. It can be committed to the table with Table.Alloc.
type AllocationRequest struct {
	// BlockID is the id of the free block that was selected
	BlockID BlockID
	// Size is the process size that was requested, in kilobytes
	Size int
	// BlockSize is the size of the selected block at the time the request was created
	BlockSize int
}

// Leftover is the number of kilobytes that will be split off into a new free fragment when
// the request is committed
func (r AllocationRequest) Leftover() int {
	return r.BlockSize - r.Size
}

// Outcome is the result of Table.Allocate. A denied allocation is not an error: Granted is false, and
// only Size is meaningful.
type Outcome struct {
	Granted bool
	// BlockID is the block the process was placed in, or NoBlock
	BlockID BlockID
	// Size is the requested process size in kilobytes
	Size int
	// Leftover is the size of the fragment split off the chosen block, 0 if the fit was exact
	Leftover int
	// FragmentID is the id of the fragment block that was appended, or NoBlock
	FragmentID BlockID
}

func deniedOutcome(size int) Outcome {
	return Outcome{
		BlockID:    NoBlock,
		Size:       size,
		FragmentID: NoBlock,
	}
}

func (o Outcome) String() string {
	if !o.Granted {
		return fmt.Sprintf("Cannot allocate %dKB. Not enough memory.", o.Size)
	}

	return fmt.Sprintf("Allocated %dKB to Block %d (Remaining: %dKB)", o.Size, o.BlockID, o.Leftover)
}
