package metadata

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/memsim"
)

//go:generate mockgen -destination mocks/block_metadata.go -package mock_metadata github.com/vkngwrapper/memsim/metadata BlockMetadata

// BlockMetadata represents a single contiguous address space. It manages suballocations
// within the space, allowing allocations to be requested, enumerated and queried.
type BlockMetadata interface {
	// Init must be called before the BlockMetadata is used. It informs the implementation of the
	// size in bytes of the address space it will be managing, via the size parameter.
	Init(size int)
	// Size retrieves the size in bytes that the block was initialized with
	Size() int

	// Validate performs internal consistency checks on the metadata. When the implementation is
	// functioning correctly, it should not be possible for this method to return an error.
	Validate() error
	// AllocationCount returns the number of suballocations currently live in the implementation
	AllocationCount() int
	// SumFreeSize returns the number of free bytes in the block
	SumFreeSize() int
	// IsEmpty will return true if this block has no live suballocations
	IsEmpty() bool

	// VisitAllRegions will call the provided callback once for each allocation and free region in
	// the block, in address order. Returning an error from the callback stops the visit and the
	// error is returned to the caller.
	VisitAllRegions(handleBlock func(handle BlockAllocationHandle, offset int, size int, userData any, free bool) error) error
	// AllocationOffset accepts a BlockAllocationHandle that maps to a live allocation within the block
	// and returns the offset in bytes within the block for that allocation.
	//
	// The implementation must return an error if the provided handle does not map to a live
	// allocation within this block.
	AllocationOffset(allocHandle BlockAllocationHandle) (int, error)

	// AddUsage sums this block's usage into the usage currently present in the provided
	// memsim.Usage object.
	AddUsage(usage *memsim.Usage)
	// BlockJsonData populates a json object with information about this block
	BlockJsonData(json jwriter.ObjectState)

	// CreateAllocationRequest retrieves an AllocationRequest object indicating where the implementation
	// would place the requested memory. That object can be passed to Alloc to commit the allocation.
	// The boolean return value is false if the block has no room for the allocation.
	//
	// allocSize - the size in bytes of the requested allocation
	// allocType - consumer-defined, non-zero allocation type value
	CreateAllocationRequest(allocSize int, allocType uint32) (bool, AllocationRequest, error)
	// Alloc commits an AllocationRequest object, creating the suballocation within the block based
	// on the data described in the AllocationRequest. The implementation must return an error if the
	// allocation is no longer valid- i.e. the requested region is no longer free or is no longer
	// large enough to support the request.
	Alloc(request AllocationRequest, allocType uint32, userData any) error
}

// BlockMetadataBase is a simple struct that provides a few shared utilities for BlockMetadata
// implementations in the metadata package.
type BlockMetadataBase struct {
	size int
}

// Init prepares this structure for allocations and sizes the block in bytes based on the parameter size.
func (m *BlockMetadataBase) Init(size int) {
	m.size = size
}

// Size returns the size of the block in bytes
func (m *BlockMetadataBase) Size() int { return m.size }

// WriteBlockJson populates a json object with summary information about this block
func (m *BlockMetadataBase) WriteBlockJson(json jwriter.ObjectState, unusedBytes, allocationCount, unusedRangeCount int) {
	json.Name("TotalBytes").Int(m.Size())
	json.Name("UnusedBytes").Int(unusedBytes)
	json.Name("Allocations").Int(allocationCount)
	json.Name("UnusedRanges").Int(unusedRangeCount)
}
