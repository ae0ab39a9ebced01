package partition

import "fmt"

// BlockID identifies a block within a Table. Ids are handed out in append order from the table's
// block count at the time the block is created, so within one generation of blocks (everything between
// two resets) an id is never reused.
type BlockID int

const (
	// NoBlock is the BlockID reported by an Outcome that did not touch a block
	NoBlock BlockID = -1
)

type memoryBlock struct {
	id   BlockID
	size int
	free bool
}

func (b *memoryBlock) view() BlockView {
	return BlockView{
		ID:     b.id,
		Size:   b.size,
		IsFree: b.free,
	}
}

// BlockView is a read-only copy of a single block in a Table. Size is in kilobytes: for a free block it is
// the capacity of the block, for an allocated block it is exactly the process size it was allocated to.
type BlockView struct {
	ID     BlockID
	Size   int
	IsFree bool
}

// Status returns "Free" or "Allocated"
func (v BlockView) Status() string {
	if v.IsFree {
		return "Free"
	}
	return "Allocated"
}

func (v BlockView) String() string {
	return fmt.Sprintf("Block %d: %dKB - %s", v.ID, v.Size, v.Status())
}
