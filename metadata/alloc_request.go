package metadata

// AllocationRequestType is an enum that indicates the type of allocation that is being made.
// It is returned in AllocationRequest from CreateAllocationRequest
type AllocationRequestType uint32

const (
	// AllocationRequestEndOfStack indicates that the allocation request was sourced from
	// metadata.LinearBlockMetadata and that it is an allocation to be pushed onto the end of the stack
	AllocationRequestEndOfStack AllocationRequestType = iota + 1
)

var allocationRequestMapping = map[AllocationRequestType]string{
	AllocationRequestEndOfStack: "EndOfStack",
}

func (t AllocationRequestType) String() string {
	str, ok := allocationRequestMapping[t]
	if !ok {
		return "Unknown"
	}
	return str
}

// AllocationRequest is a type returned from BlockMetadata.CreateAllocationRequest which indicates where and how
// the metadata intends to allocate new memory. The request is committed to the metadata with BlockMetadata.Alloc
type AllocationRequest struct {
	// BlockAllocationHandle is a numeric handle used to identify individual allocations within the metadata
	BlockAllocationHandle BlockAllocationHandle
	// Size the total size of the allocation
	Size int
	// Type identifies the sort of allocation this request represents (and can be used
	// to identify the BlockMetadata implementation used to generate this request).
	Type AllocationRequestType

	// AllocType is the value passed into CreateAllocationRequest by the consumer to generate
	// this request
	AllocType uint32
}
