package partition

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// BlockJsonData populates a json object with summary information about this table
func (t *Table) BlockJsonData(json *jwriter.ObjectState) {
	json.Name("TotalSize").Int(t.size)
	json.Name("FreeSize").Int(t.freeSize)
	json.Name("BlockCount").Int(len(t.blocks))
	json.Name("Allocations").Int(t.allocCount)
	json.Name("FreeBlocks").Int(t.freeCount)
}

// PrintDetailedMap populates a json object with summary information about this table, its original
// partition sizes, and every block in table order
func (t *Table) PrintDetailedMap(json *jwriter.ObjectState) {
	t.BlockJsonData(json)

	partitions := json.Name("Partitions").Array()
	for _, size := range t.original {
		partitions.Int(size)
	}
	partitions.End()

	blocks := json.Name("Blocks").Array()
	defer blocks.End()

	for i := range t.blocks {
		view := t.blocks[i].view()

		obj := blocks.Object()
		obj.Name("Id").Int(int(view.ID))
		obj.Name("Type").String(view.Status())
		obj.Name("Size").Int(view.Size)
		obj.End()
	}
}
