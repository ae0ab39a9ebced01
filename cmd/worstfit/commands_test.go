package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/worstfit/memutils"
)

func withFlags(t *testing.T, partitionList string, asJSON, reset bool) {
	t.Helper()

	oldPartitions, oldJSON, oldReset, oldNoColor := partitions, jsonOut, resetAfter, noColor
	partitions, jsonOut, resetAfter, noColor = partitionList, asJSON, reset, true

	t.Cleanup(func() {
		partitions, jsonOut, resetAfter, noColor = oldPartitions, oldJSON, oldReset, oldNoColor
	})
}

func TestStateCommand(t *testing.T) {
	withFlags(t, "100,500,200", false, false)

	var out bytes.Buffer
	require.NoError(t, runState(&out))
	require.Equal(t, "Block 0: 100KB - Free\n"+
		"Block 1: 500KB - Free\n"+
		"Block 2: 200KB - Free\n", out.String())
}

func TestStateCommandJSON(t *testing.T) {
	withFlags(t, "100,500", true, false)

	var out bytes.Buffer
	require.NoError(t, runState(&out))
	require.True(t, json.Valid(out.Bytes()))
	require.JSONEq(t, `{
		"Total": {
			"BlockCount": 2, "AllocationCount": 0, "FreeBlockCount": 2,
			"TotalSize": 600, "AllocatedSize": 0,
			"FreeBlockSizeMin": 100, "FreeBlockSizeMax": 500
		},
		"DetailedMap": {
			"TotalSize": 600, "FreeSize": 600, "BlockCount": 2, "Allocations": 0, "FreeBlocks": 2,
			"Partitions": [100, 500],
			"Blocks": [
				{"Id": 0, "Type": "Free", "Size": 100},
				{"Id": 1, "Type": "Free", "Size": 500}
			]
		}
	}`, out.String())
}

func TestStateCommandInvalid(t *testing.T) {
	withFlags(t, "0,10", false, false)

	var out bytes.Buffer
	err := runState(&out)
	require.ErrorIs(t, err, memutils.ErrInvalidPartitionSizes)
	require.Empty(t, out.String())
}

func TestAllocateCommand(t *testing.T) {
	withFlags(t, "100,500,200,300,600", false, false)

	var out bytes.Buffer
	require.NoError(t, runAllocate(&out, []string{"212", "417", "112", "426"}))
	require.Equal(t, "Allocated 212KB to Block 4 (Remaining: 388KB)\n"+
		"Allocated 417KB to Block 1 (Remaining: 83KB)\n"+
		"Allocated 112KB to Block 5 (Remaining: 276KB)\n"+
		"Cannot allocate 426KB. Not enough memory.\n"+
		"\n"+
		"Block 0: 100KB - Free\n"+
		"Block 1: 417KB - Allocated\n"+
		"Block 2: 200KB - Free\n"+
		"Block 3: 300KB - Free\n"+
		"Block 4: 212KB - Allocated\n"+
		"Block 5: 112KB - Allocated\n"+
		"Block 6: 83KB - Free\n"+
		"Block 7: 276KB - Free\n", out.String())
}

func TestAllocateCommandReset(t *testing.T) {
	withFlags(t, "10,50", false, true)

	var out bytes.Buffer
	require.NoError(t, runAllocate(&out, []string{"50"}))
	require.Equal(t, "Allocated 50KB to Block 1 (Remaining: 0KB)\n"+
		"\n"+
		"Block 0: 10KB - Free\n"+
		"Block 1: 50KB - Allocated\n"+
		"\n"+
		"After reset:\n"+
		"Block 0: 10KB - Free\n"+
		"Block 1: 50KB - Free\n", out.String())
}

func TestAllocateCommandInvalidProcess(t *testing.T) {
	withFlags(t, "10,50", false, false)

	var out bytes.Buffer
	err := runAllocate(&out, []string{"5", "0"})
	require.ErrorIs(t, err, memutils.ErrInvalidRequest)
	require.Empty(t, out.String())
}

func TestAllocateCommandJSON(t *testing.T) {
	withFlags(t, "10,50", true, false)

	var out bytes.Buffer
	require.NoError(t, runAllocate(&out, []string{"20", "45"}))
	require.True(t, json.Valid(out.Bytes()))
	require.JSONEq(t, `{
		"Outcomes": [
			{"ProcessSize": 20, "Granted": true, "BlockId": 1, "Leftover": 30, "FragmentId": 2,
			 "Message": "Allocated 20KB to Block 1 (Remaining: 30KB)"},
			{"ProcessSize": 45, "Granted": false,
			 "Message": "Cannot allocate 45KB. Not enough memory."}
		],
		"Allocator": {
			"Total": {
				"BlockCount": 3, "AllocationCount": 1, "FreeBlockCount": 2,
				"TotalSize": 60, "AllocatedSize": 20,
				"AllocationSizeMin": 20, "AllocationSizeMax": 20,
				"FreeBlockSizeMin": 10, "FreeBlockSizeMax": 30
			},
			"DetailedMap": {
				"TotalSize": 60, "FreeSize": 40, "BlockCount": 3, "Allocations": 1, "FreeBlocks": 2,
				"Partitions": [10, 50],
				"Blocks": [
					{"Id": 0, "Type": "Free", "Size": 10},
					{"Id": 1, "Type": "Allocated", "Size": 20},
					{"Id": 2, "Type": "Free", "Size": 30}
				]
			}
		}
	}`, out.String())
}
