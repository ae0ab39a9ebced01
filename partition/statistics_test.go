package partition_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/worstfit/memutils"
)

func TestTableStatistics(t *testing.T) {
	table := newTable(t, 10, 50, 30)

	var stats memutils.DetailedStatistics
	stats.Clear()
	table.AddDetailedStatistics(&stats)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      3,
			AllocationCount: 0,
			TotalSize:       90,
			AllocatedSize:   0,
		},
		FreeBlockCount:    3,
		AllocationSizeMin: math.MaxInt,
		AllocationSizeMax: 0,
		FreeBlockSizeMin:  10,
		FreeBlockSizeMax:  50,
	}, stats)

	_, err := table.Allocate(20)
	require.NoError(t, err)

	stats.Clear()
	table.AddDetailedStatistics(&stats)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      4,
			AllocationCount: 1,
			TotalSize:       90,
			AllocatedSize:   20,
		},
		FreeBlockCount:    3,
		AllocationSizeMin: 20,
		AllocationSizeMax: 20,
		FreeBlockSizeMin:  10,
		FreeBlockSizeMax:  30,
	}, stats)

	var simple memutils.Statistics
	table.AddStatistics(&simple)
	require.Equal(t, stats.Statistics, simple)
}

func TestTableDetailedMap(t *testing.T) {
	table := newTable(t, 10, 50, 30)
	_, err := table.Allocate(20)
	require.NoError(t, err)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	table.PrintDetailedMap(&obj)
	obj.End()

	require.NoError(t, writer.Error())
	require.True(t, json.Valid(writer.Bytes()))
	require.Equal(t, `{"TotalSize":90,"FreeSize":70,"BlockCount":4,"Allocations":1,"FreeBlocks":3,`+
		`"Partitions":[10,50,30],"Blocks":[`+
		`{"Id":0,"Type":"Free","Size":10},`+
		`{"Id":1,"Type":"Allocated","Size":20},`+
		`{"Id":2,"Type":"Free","Size":30},`+
		`{"Id":3,"Type":"Free","Size":30}]}`, string(writer.Bytes()))
}

func TestTableDetailedMapNestedInObject(t *testing.T) {
	table := newTable(t, 10)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	obj.Name("Name").String("single")
	mapObj := obj.Name("Map").Object()
	table.PrintDetailedMap(&mapObj)
	mapObj.End()
	obj.Name("After").Bool(true)
	obj.End()

	require.NoError(t, writer.Error())
	require.JSONEq(t, `{"Name":"single","Map":{"TotalSize":10,"FreeSize":10,"BlockCount":1,"Allocations":0,"FreeBlocks":1,`+
		`"Partitions":[10],"Blocks":[{"Id":0,"Type":"Free","Size":10}]},"After":true}`, string(writer.Bytes()))
}
