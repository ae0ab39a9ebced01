package wfa

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/worstfit/internal/utils"
	"github.com/vkngwrapper/worstfit/memutils"
	"github.com/vkngwrapper/worstfit/partition"
	"golang.org/x/exp/slog"
)

// Allocator is a partition.Table shared between goroutines. Allocate and Reset are mutually exclusive
// with every other call, while queries may run alongside each other.
type Allocator struct {
	logger      *slog.Logger
	createFlags CreateFlags

	mutex utils.OptionalRWMutex
	table *partition.Table
}

// Allocate places a process of processSize kilobytes into the largest free partition that can hold it.
// See partition.Table.Allocate.
func (a *Allocator) Allocate(processSize int) (partition.Outcome, error) {
	a.logger.Debug("Allocator::Allocate", slog.Int("ProcessSize", processSize))

	a.mutex.Lock()
	defer a.mutex.Unlock()

	outcome, err := a.table.Allocate(processSize)
	if err != nil {
		return outcome, err
	}

	if outcome.Granted {
		a.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Allocated from block",
			slog.Int("block.id", int(outcome.BlockID)),
			slog.Int("Leftover", outcome.Leftover),
			slog.Int("fragment.id", int(outcome.FragmentID)),
		)
	} else {
		a.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Not enough memory",
			slog.Int("SumFreeSize", a.table.SumFreeSize()),
			slog.Int("FreeBlocks", a.table.FreeBlockCount()),
		)
	}

	return outcome, nil
}

// Reset discards all allocations and fragments. See partition.Table.Reset.
func (a *Allocator) Reset() {
	a.logger.Debug("Allocator::Reset")

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.table.Reset()
}

// Snapshot returns every block in table order. See partition.Table.Snapshot.
func (a *Allocator) Snapshot() []partition.BlockView {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.table.Snapshot()
}

func (a *Allocator) Block(id partition.BlockID) (partition.BlockView, bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.table.Block(id)
}

// Flags returns the CreateFlags the allocator was created with
func (a *Allocator) Flags() CreateFlags { return a.createFlags }

func (a *Allocator) OriginalSizes() []int {
	// Immutable after creation
	return a.table.OriginalSizes()
}

// CalculateStatistics clears stats and fills it with the current state of the allocator
func (a *Allocator) CalculateStatistics(stats *memutils.DetailedStatistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	stats.Clear()
	a.table.AddDetailedStatistics(stats)
}

// Validate performs internal consistency checks on the underlying table, logging any failure
func (a *Allocator) Validate() error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	err := a.table.Validate()
	if err != nil {
		a.logger.Error("partition table failed validation", slog.Any("error", err))
	}
	return err
}

// BuildStatsString produces a json document describing the allocator's statistics. If detailedMap is
// false, only the totals are written. If it is true, allocation and free block size ranges are
// written as well, and every block is listed.
func (a *Allocator) BuildStatsString(detailedMap bool) (string, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	writer := jwriter.NewWriter()
	obj := writer.Object()

	totalObj := obj.Name("Total").Object()
	if detailedMap {
		var stats memutils.DetailedStatistics
		stats.Clear()
		a.table.AddDetailedStatistics(&stats)
		printDetailedStatistics(&totalObj, &stats)
	} else {
		var stats memutils.Statistics
		a.table.AddStatistics(&stats)
		printStatistics(&totalObj, &stats)
	}
	totalObj.End()

	if detailedMap {
		mapObj := obj.Name("DetailedMap").Object()
		a.table.PrintDetailedMap(&mapObj)
		mapObj.End()
	}

	obj.End()

	err := writer.Error()
	if err != nil {
		return "", errors.Wrap(err, "failed to build stats string")
	}

	return string(writer.Bytes()), nil
}

func printStatistics(json *jwriter.ObjectState, stats *memutils.Statistics) {
	json.Name("BlockCount").Int(stats.BlockCount)
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("TotalSize").Int(stats.TotalSize)
	json.Name("AllocatedSize").Int(stats.AllocatedSize)
	json.Name("FreeSize").Int(stats.FreeSize())
}

func printDetailedStatistics(json *jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	json.Name("BlockCount").Int(stats.BlockCount)
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("FreeBlockCount").Int(stats.FreeBlockCount)
	json.Name("TotalSize").Int(stats.TotalSize)
	json.Name("AllocatedSize").Int(stats.AllocatedSize)

	if stats.AllocationCount > 0 {
		json.Name("AllocationSizeMin").Int(stats.AllocationSizeMin)
		json.Name("AllocationSizeMax").Int(stats.AllocationSizeMax)
	}

	if stats.FreeBlockCount > 0 {
		json.Name("FreeBlockSizeMin").Int(stats.FreeBlockSizeMin)
		json.Name("FreeBlockSizeMax").Int(stats.FreeBlockSizeMax)
	}
}
