package partition

import (
	"github.com/dolthub/swiss"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/worstfit/memutils"
	"golang.org/x/exp/slices"
)

// Table is a worst-fit partition table. It owns an ordered list of memory blocks built from a fixed
// list of partition sizes, and places processes into those blocks by always choosing the largest free
// block that can hold them. When a process does not consume its whole block, the remainder is split
// off into a new free fragment block appended to the end of the table.
//
// Blocks are never freed and never removed. The only way to reclaim memory is Reset, which throws away
// every allocation and fragment and rebuilds the table from its original partition sizes.
//
// Table is not safe for concurrent use. See the wfa package for a synchronized wrapper.
type Table struct {
	original []int
	size     int

	blocks    []memoryBlock
	handleKey *swiss.Map[BlockID, int]

	allocCount int
	freeCount  int
	freeSize   int
}

var _ memutils.Validatable = &Table{}

// NewTable builds a table with one free block per entry in sizes, in the order provided. Block ids are
// the positions of the entries in sizes. An error wrapping memutils.ErrInvalidPartitionSizes is returned
// if sizes is empty or contains an entry that is not positive.
func NewTable(sizes []int) (*Table, error) {
	err := memutils.CheckPartitionSizes(sizes)
	if err != nil {
		return nil, err
	}

	t := &Table{
		original: slices.Clone(sizes),
	}
	for _, size := range sizes {
		t.size += size
	}

	t.Reset()
	return t, nil
}

// Reset discards every allocation and fragment block and rebuilds the table from the partition sizes
// it was created with. Ids are reassigned starting from 0.
func (t *Table) Reset() {
	t.blocks = make([]memoryBlock, 0, len(t.original))
	t.handleKey = swiss.NewMap[BlockID, int](uint32(len(t.original)))
	t.allocCount = 0
	t.freeCount = 0
	t.freeSize = 0

	for _, size := range t.original {
		t.appendBlock(size)
	}
}

func (t *Table) appendBlock(size int) BlockID {
	id := BlockID(len(t.blocks))
	t.blocks = append(t.blocks, memoryBlock{
		id:   id,
		size: size,
		free: true,
	})
	t.handleKey.Put(id, len(t.blocks)-1)

	t.freeCount++
	t.freeSize += size
	return id
}

func (t *Table) getBlock(id BlockID) (*memoryBlock, error) {
	index, ok := t.handleKey.Get(id)
	if !ok {
		return nil, errors.Errorf("received block id %d, which is not present in this table", id)
	}
	return &t.blocks[index], nil
}

// CreateAllocationRequest runs the worst-fit scan for a process of processSize kilobytes. Every free
// block large enough to hold the process is a candidate, and the largest candidate is chosen. When
// several candidates share the largest size, the one that comes first in table order wins.
//
// The returned bool is false if no free block is large enough. The table is not modified; pass the
// request to Alloc to commit it. An error wrapping memutils.ErrInvalidRequest is returned if processSize
// is not positive.
func (t *Table) CreateAllocationRequest(processSize int) (bool, AllocationRequest, error) {
	var request AllocationRequest

	err := memutils.CheckProcessSize(processSize)
	if err != nil {
		return false, request, err
	}

	memutils.DebugValidate(t)

	// Is the table big enough?
	if processSize > t.freeSize {
		return false, request, nil
	}

	best := t.worstFitIndex(processSize)
	if best < 0 {
		return false, request, nil
	}

	request.BlockID = t.blocks[best].id
	request.Size = processSize
	request.BlockSize = t.blocks[best].size
	return true, request, nil
}

// worstFitIndex returns the position of the block the worst-fit scan chooses for processSize, or -1
func (t *Table) worstFitIndex(processSize int) int {
	best := -1
	for i := range t.blocks {
		block := &t.blocks[i]
		if !block.free || block.size < processSize {
			continue
		}

		// Strictly larger only: ties keep the first block seen
		if best < 0 || block.size > t.blocks[best].size {
			best = i
		}
	}

	return best
}

// Alloc commits an AllocationRequest. The selected block is marked allocated and shrunk to exactly
// the requested size. If any capacity is left over, it is appended to the table as a new free block
// whose id is the table's block count.
//
// An error is returned, and the table is left unchanged, if the request no longer matches the table:
// the block does not exist, is already allocated, has changed size since the request was created, or
// is no longer the block the worst-fit scan would choose.
func (t *Table) Alloc(request AllocationRequest) (Outcome, error) {
	err := memutils.CheckProcessSize(request.Size)
	if err != nil {
		return Outcome{}, err
	}

	block, err := t.getBlock(request.BlockID)
	if err != nil {
		return Outcome{}, err
	}

	if !block.free {
		return Outcome{}, errors.Errorf("block %d is already allocated", block.id)
	}

	if block.size != request.BlockSize {
		return Outcome{}, errors.Errorf("allocation request expected block %d to be %dKB, but it is %dKB", block.id, request.BlockSize, block.size)
	}

	if request.Size > block.size {
		return Outcome{}, errors.Errorf("block %d is %dKB, which is too small for a %dKB process", block.id, block.size, request.Size)
	}

	best := t.worstFitIndex(request.Size)
	if best < 0 || t.blocks[best].id != block.id {
		return Outcome{}, errors.Errorf("block %d is not the worst-fit choice for a %dKB process", block.id, request.Size)
	}

	leftover := request.Leftover()

	block.free = false
	block.size = request.Size
	t.freeCount--
	t.freeSize -= request.BlockSize
	t.allocCount++

	outcome := Outcome{
		Granted:    true,
		BlockID:    request.BlockID,
		Size:       request.Size,
		Leftover:   leftover,
		FragmentID: NoBlock,
	}

	if leftover > 0 {
		outcome.FragmentID = t.appendBlock(leftover)
	}

	return outcome, nil
}

// Allocate places a process of processSize kilobytes into the largest free block that can hold it.
// If no free block is large enough, the returned Outcome is not Granted and the table is unchanged.
// An error wrapping memutils.ErrInvalidRequest is returned if processSize is not positive.
func (t *Table) Allocate(processSize int) (Outcome, error) {
	found, request, err := t.CreateAllocationRequest(processSize)
	if err != nil {
		return Outcome{}, err
	}

	if !found {
		return deniedOutcome(processSize), nil
	}

	return t.Alloc(request)
}

// Snapshot returns a copy of every block in table order: the original partitions first, then
// fragments in the order they were created.
func (t *Table) Snapshot() []BlockView {
	views := make([]BlockView, 0, len(t.blocks))
	for i := range t.blocks {
		views = append(views, t.blocks[i].view())
	}
	return views
}

// VisitAllBlocks calls handleBlock once for each block in table order, stopping at the first error
func (t *Table) VisitAllBlocks(handleBlock func(view BlockView) error) error {
	for i := range t.blocks {
		err := handleBlock(t.blocks[i].view())
		if err != nil {
			return err
		}
	}

	return nil
}

// Block looks up a single block by id
func (t *Table) Block(id BlockID) (BlockView, bool) {
	block, err := t.getBlock(id)
	if err != nil {
		return BlockView{}, false
	}
	return block.view(), true
}

// LargestFreeBlock returns the free block the worst-fit scan would currently choose for any process
// it can hold. The bool is false if every block is allocated.
func (t *Table) LargestFreeBlock() (BlockView, bool) {
	// Every block holds at least 1KB
	best := t.worstFitIndex(1)
	if best < 0 {
		return BlockView{}, false
	}
	return t.blocks[best].view(), true
}

// OriginalSizes returns a copy of the partition sizes the table was created with
func (t *Table) OriginalSizes() []int {
	return slices.Clone(t.original)
}

// Size is the total capacity of the table in kilobytes
func (t *Table) Size() int { return t.size }

func (t *Table) BlockCount() int { return len(t.blocks) }

func (t *Table) AllocationCount() int { return t.allocCount }

func (t *Table) FreeBlockCount() int { return t.freeCount }

// SumFreeSize returns the number of free kilobytes across all free blocks
func (t *Table) SumFreeSize() int { return t.freeSize }

// IsEmpty will return true if no process has been allocated since the table was built or last reset
func (t *Table) IsEmpty() bool { return t.allocCount == 0 }

// AddStatistics sums this table's statistics into the statistics currently present in stats
func (t *Table) AddStatistics(stats *memutils.Statistics) {
	stats.BlockCount += len(t.blocks)
	stats.AllocationCount += t.allocCount
	stats.TotalSize += t.size
	stats.AllocatedSize += t.size - t.freeSize
}

// AddDetailedStatistics sums this table's statistics into the statistics currently present in stats
func (t *Table) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	for i := range t.blocks {
		if t.blocks[i].free {
			stats.AddFreeBlock(t.blocks[i].size)
		} else {
			stats.AddAllocation(t.blocks[i].size)
		}
	}
}

// Validate performs internal consistency checks on the table. It should not be possible for it to
// return an error.
func (t *Table) Validate() error {
	if len(t.blocks) < len(t.original) {
		return errors.Errorf("the table has %d blocks, but it was built from %d partitions", len(t.blocks), len(t.original))
	}

	if t.handleKey.Count() != len(t.blocks) {
		return errors.Errorf("the table has %d blocks, but %d ids are registered", len(t.blocks), t.handleKey.Count())
	}

	var calculatedSize, calculatedFreeSize, allocCount, freeCount int

	for i := range t.blocks {
		block := &t.blocks[i]

		if block.id != BlockID(i) {
			return errors.Errorf("block at position %d has id %d", i, block.id)
		}

		index, ok := t.handleKey.Get(block.id)
		if !ok || index != i {
			return errors.Errorf("block %d is not registered at its position %d", block.id, i)
		}

		if block.size < 1 {
			return errors.Errorf("block %d has a size of %dKB", block.id, block.size)
		}

		if i < len(t.original) && block.free && block.size != t.original[i] {
			return errors.Errorf("partition %d is free, but its size %dKB does not match its original size %dKB", block.id, block.size, t.original[i])
		}

		calculatedSize += block.size
		if block.free {
			freeCount++
			calculatedFreeSize += block.size
		} else {
			allocCount++
		}
	}

	if calculatedSize != t.size {
		return errors.Errorf("the full size of the table is %dKB, but the blocks only added up to %dKB", t.size, calculatedSize)
	}

	if calculatedFreeSize != t.freeSize {
		return errors.Errorf("the free size of the table is %dKB, but the free blocks only added up to %dKB", t.freeSize, calculatedFreeSize)
	}

	if allocCount != t.allocCount {
		return errors.Errorf("the allocation count of the table is %d, but the allocated blocks only added up to %d", t.allocCount, allocCount)
	}

	if freeCount != t.freeCount {
		return errors.Errorf("the free block count of the table is %d, but there were only %d free blocks", t.freeCount, freeCount)
	}

	return nil
}
