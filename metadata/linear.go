package metadata

import (
	"sort"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/memsim"
)

// LinearBlockMetadata is a BlockMetadata implementation that represents a simple
// stack memory arena. Allocations are always placed immediately after the end of the
// most recent allocation, so the block only ever has a single free region at its tail.
// There is no reuse of earlier space.
type LinearBlockMetadata struct {
	BlockMetadataBase

	sumFreeSize    int
	suballocations []Suballocation
}

var _ BlockMetadata = &LinearBlockMetadata{}

// NewLinearBlockMetadata creates a new, uninitialized LinearBlockMetadata. Init must be called
// before it is used.
func NewLinearBlockMetadata() *LinearBlockMetadata {
	return &LinearBlockMetadata{
		suballocations: []Suballocation{},
	}
}

// SumFreeSize returns the number of free bytes of memory in the block.
func (m *LinearBlockMetadata) SumFreeSize() int {
	return m.sumFreeSize
}

// IsEmpty will return true if this block has no live suballocations
func (m *LinearBlockMetadata) IsEmpty() bool {
	return m.AllocationCount() == 0
}

// AllocationCount returns the number of suballocations currently live in the block
func (m *LinearBlockMetadata) AllocationCount() int {
	return len(m.suballocations)
}

// Init prepares this structure for allocations and sizes the block in bytes based on the parameter size.
func (m *LinearBlockMetadata) Init(size int) {
	m.BlockMetadataBase.Init(size)
	m.sumFreeSize = size
	m.suballocations = m.suballocations[:0]
}

// Validate performs internal consistency checks on the metadata.
func (m *LinearBlockMetadata) Validate() error {
	var sumUsedSize, offset int

	for suballocIndex, suballoc := range m.suballocations {
		if suballoc.Type == SuballocationFree {
			return errors.Errorf("suballoc at index %d is marked free, but the stack should only hold live allocations", suballocIndex)
		}

		if suballoc.Size <= 0 {
			return errors.Errorf("suballoc at index %d has non-positive size %d", suballocIndex, suballoc.Size)
		}

		if suballoc.Offset < offset {
			return errors.Errorf("suballoc at index %d has offset %d- this collides with previous suballocations, expected offset %d", suballocIndex, suballoc.Offset, offset)
		}

		sumUsedSize += suballoc.Size
		offset = suballoc.Offset + suballoc.Size
	}

	if offset > m.Size() {
		return errors.Errorf("calculated a combined maximum memory offset of %d, but the metadata indicates a total size of %d, which is smaller", offset, m.Size())
	}

	if m.sumFreeSize != m.Size()-sumUsedSize {
		return errors.Errorf("the metadata's free size %d and the calculated used size %d don't add up to the metadata-reported size of %d", m.sumFreeSize, sumUsedSize, m.Size())
	}

	return nil
}

// VisitAllRegions will call the provided callback once for each allocation and free region in
// the block, in address order.
func (m *LinearBlockMetadata) VisitAllRegions(handleBlock func(handle BlockAllocationHandle, offset int, size int, userData any, free bool) error) error {
	lastOffset := 0

	for _, suballoc := range m.suballocations {
		// Process free space before the allocation
		if lastOffset < suballoc.Offset {
			err := handleBlock(BlockAllocationHandle(lastOffset+1), lastOffset, suballoc.Offset-lastOffset, nil, true)
			if err != nil {
				return err
			}
		}

		err := handleBlock(BlockAllocationHandle(suballoc.Offset+1), suballoc.Offset, suballoc.Size, suballoc.UserData, false)
		if err != nil {
			return err
		}

		lastOffset = suballoc.Offset + suballoc.Size
	}

	// Process free space after the final allocation
	if lastOffset < m.Size() {
		return handleBlock(BlockAllocationHandle(lastOffset+1), lastOffset, m.Size()-lastOffset, nil, true)
	}

	return nil
}

// AllocationOffset accepts a BlockAllocationHandle that maps to a live allocation within the block
// and returns the offset in bytes within the block for that allocation.
func (m *LinearBlockMetadata) AllocationOffset(allocHandle BlockAllocationHandle) (int, error) {
	suballoc, err := m.findSuballocation(int(allocHandle) - 1)
	if err != nil {
		return 0, err
	}
	return suballoc.Offset, nil
}

// AddUsage sums this block's usage into the usage currently present in the provided
// memsim.Usage object.
func (m *LinearBlockMetadata) AddUsage(usage *memsim.Usage) {
	usage.TotalBytes += m.Size()

	_ = m.VisitAllRegions(
		func(handle BlockAllocationHandle, offset int, size int, userData any, free bool) error {
			if free {
				usage.AddFreeRange(size)
			} else {
				usage.AddAllocation(size)
			}

			return nil
		})
}

// BlockJsonData populates a json object with information about this block
func (m *LinearBlockMetadata) BlockJsonData(json jwriter.ObjectState) {
	var unusedRangeCount int

	_ = m.VisitAllRegions(
		func(handle BlockAllocationHandle, offset int, size int, userData any, free bool) error {
			if free {
				unusedRangeCount++
			}

			return nil
		})

	m.WriteBlockJson(json, m.sumFreeSize, m.AllocationCount(), unusedRangeCount)
}

// CreateAllocationRequest retrieves an AllocationRequest object indicating where the block
// would place the requested memory: directly after the last live allocation. The boolean return
// value is false if the allocation would extend past the end of the block.
func (m *LinearBlockMetadata) CreateAllocationRequest(allocSize int, allocType uint32) (bool, AllocationRequest, error) {
	if allocSize <= 0 {
		return false, AllocationRequest{}, errors.New("allocation size must be greater than 0")
	}
	if allocType == SuballocationFree {
		return false, AllocationRequest{}, errors.New("allocation type cannot be SuballocationFree")
	}
	memsim.DebugValidate(m)

	resultOffset := m.endOffset()
	if allocSize > m.Size()-resultOffset {
		return false, AllocationRequest{}, nil
	}

	return true, AllocationRequest{
		BlockAllocationHandle: BlockAllocationHandle(resultOffset + 1),
		Size:                  allocSize,
		Type:                  AllocationRequestEndOfStack,
		AllocType:             allocType,
	}, nil
}

// Alloc commits an AllocationRequest object, pushing the suballocation onto the end of the stack.
func (m *LinearBlockMetadata) Alloc(req AllocationRequest, allocType uint32, userData any) error {
	if req.Type != AllocationRequestEndOfStack {
		return errors.Errorf("attempted to allocate a request of type %s, but that type isn't supported by the Linear metadata", req.Type)
	}
	if allocType == SuballocationFree {
		return errors.New("allocation type cannot be SuballocationFree")
	}

	offset := int(req.BlockAllocationHandle) - 1
	if offset < m.endOffset() {
		return errors.New("attempted to allocate memory in the middle of active memory")
	}

	if req.Size <= 0 || offset > m.Size() || req.Size > m.Size()-offset {
		return errors.New("attempted to allocate memory past the end of the block")
	}

	m.suballocations = append(m.suballocations, Suballocation{
		Offset:   offset,
		Size:     req.Size,
		UserData: userData,
		Type:     allocType,
	})
	m.sumFreeSize -= req.Size

	memsim.DebugValidate(m)
	return nil
}

func (m *LinearBlockMetadata) endOffset() int {
	if len(m.suballocations) == 0 {
		return 0
	}

	last := m.suballocations[len(m.suballocations)-1]
	return last.Offset + last.Size
}

func (m *LinearBlockMetadata) findSuballocation(offset int) (*Suballocation, error) {
	out, found := sort.Find(len(m.suballocations), func(index int) int {
		return offset - m.suballocations[index].Offset
	})
	if found {
		return &(m.suballocations[out]), nil
	}

	return nil, errors.Errorf("allocation at offset %d not found in linear allocator", offset)
}
