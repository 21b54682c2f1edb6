package metadata

type BlockAllocationHandle uint64

// SuballocationFree is the allocation type of a region that holds no allocation. Consumers
// must use a non-zero type for every allocation they make.
const SuballocationFree uint32 = 0

type Suballocation struct {
	Offset   int
	Size     int
	UserData any
	Type     uint32
}
