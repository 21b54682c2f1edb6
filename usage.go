package memsim

import "math"

// Usage summarizes how an address space was consumed by a placement
type Usage struct {
	TotalBytes      int
	UsedBytes       int
	AllocationCount int
	// WastedBytes is space that is owned by an allocation but not requested by it,
	// such as the unused tail of a process's last page
	WastedBytes int

	FreeRangeCount    int
	FreeBytes         int
	AllocationSizeMin int
	AllocationSizeMax int
	FreeRangeSizeMin  int
	FreeRangeSizeMax  int
}

// Clear resets the usage so that it can be accumulated into
func (u *Usage) Clear() {
	u.TotalBytes = 0
	u.UsedBytes = 0
	u.AllocationCount = 0
	u.WastedBytes = 0
	u.FreeRangeCount = 0
	u.FreeBytes = 0
	u.AllocationSizeMin = math.MaxInt
	u.AllocationSizeMax = 0
	u.FreeRangeSizeMin = math.MaxInt
	u.FreeRangeSizeMax = 0
}

func (u *Usage) AddFreeRange(size int) {
	u.FreeRangeCount++
	u.FreeBytes += size

	if size < u.FreeRangeSizeMin {
		u.FreeRangeSizeMin = size
	}

	if size > u.FreeRangeSizeMax {
		u.FreeRangeSizeMax = size
	}
}

func (u *Usage) AddAllocation(size int) {
	u.AllocationCount++
	u.UsedBytes += size

	if size < u.AllocationSizeMin {
		u.AllocationSizeMin = size
	}

	if size > u.AllocationSizeMax {
		u.AllocationSizeMax = size
	}
}

// AddUsage sums other into u
func (u *Usage) AddUsage(other *Usage) {
	u.TotalBytes += other.TotalBytes
	u.UsedBytes += other.UsedBytes
	u.AllocationCount += other.AllocationCount
	u.WastedBytes += other.WastedBytes
	u.FreeRangeCount += other.FreeRangeCount
	u.FreeBytes += other.FreeBytes

	if other.FreeRangeSizeMin < u.FreeRangeSizeMin {
		u.FreeRangeSizeMin = other.FreeRangeSizeMin
	}

	if other.FreeRangeSizeMax > u.FreeRangeSizeMax {
		u.FreeRangeSizeMax = other.FreeRangeSizeMax
	}

	if other.AllocationSizeMin < u.AllocationSizeMin {
		u.AllocationSizeMin = other.AllocationSizeMin
	}

	if other.AllocationSizeMax > u.AllocationSizeMax {
		u.AllocationSizeMax = other.AllocationSizeMax
	}
}

// Utilization returns the fraction of TotalBytes held by allocations, in the range [0, 1]
func (u *Usage) Utilization() float64 {
	if u.TotalBytes == 0 {
		return 0
	}
	return float64(u.UsedBytes) / float64(u.TotalBytes)
}
