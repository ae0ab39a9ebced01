package wfa

import (
	"fmt"
	"strings"

	"github.com/vkngwrapper/worstfit/internal/utils"
	"github.com/vkngwrapper/worstfit/partition"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags uint32

var allocatorCreateFlagsMapping = map[CreateFlags]string{}

func (f CreateFlags) Register(str string) {
	allocatorCreateFlagsMapping[f] = str
}

func (f CreateFlags) String() string {
	if f == 0 {
		return "None"
	}

	var names []string
	for bit := CreateFlags(1); bit != 0 && bit <= f; bit <<= 1 {
		if f&bit == 0 {
			continue
		}

		name, ok := allocatorCreateFlagsMapping[bit]
		if !ok {
			name = fmt.Sprintf("UnknownCreateFlags(%#x)", uint32(bit))
		}
		names = append(names, name)
	}

	return strings.Join(names, "|")
}

const (
	// AllocatorCreateExternallySynchronized ensures that this allocator will not be synchronized
	// internally. The consumer must guarantee it is used from only one goroutine at a time or is
	// synchronized by some other mechanism.
	AllocatorCreateExternallySynchronized CreateFlags = 1 << iota
)

func init() {
	AllocatorCreateExternallySynchronized.Register("AllocatorCreateExternallySynchronized")
}

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags
}

// New creates a worst-fit allocator over one partition per entry in sizes (in kilobytes). If logger is
// nil, slog.Default() is used. An error wrapping memutils.ErrInvalidPartitionSizes is returned if sizes
// is empty or contains an entry that is not positive.
func New(logger *slog.Logger, sizes []int, options CreateOptions) (*Allocator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	table, err := partition.NewTable(sizes)
	if err != nil {
		return nil, err
	}

	logger.Debug("Allocator::New",
		slog.Int("PartitionCount", len(sizes)),
		slog.Int("Size", table.Size()),
		slog.String("Flags", options.Flags.String()),
	)

	return &Allocator{
		logger:      logger,
		createFlags: options.Flags,
		mutex: utils.OptionalRWMutex{
			UseMutex: options.Flags&AllocatorCreateExternallySynchronized == 0,
		},
		table: table,
	}, nil
}
