package paging

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/memsim"
)

// Free is the owner of a frame that no process holds
const Free = 0

// Frame is a single fixed-size slot of the address space
type Frame struct {
	Index int
	// Owner is the 1-based id of the process holding this frame, or Free
	Owner int
}

// IsFree returns true if no process owns the frame
func (f Frame) IsFree() bool {
	return f.Owner == Free
}

// Base returns the first address covered by the frame
func (f Frame) Base(pageSize int) int {
	return f.Index * pageSize
}

// ProcessPages records how a single process fared during paging
type ProcessPages struct {
	// Process is the 1-based id of the process, in request order
	Process int
	// Size is the size in bytes the process requested
	Size int
	// PagesNeeded is the number of pages required to hold Size bytes
	PagesNeeded int
	// PagesAssigned is the number of frames the process actually received
	PagesAssigned int
	// Attempted is false for processes that were never considered because an earlier process overflowed
	Attempted bool
	// Overflowed is true if the process ran out of frames before all of its pages were placed
	Overflowed bool
}

// InternalFragmentation returns the number of bytes in the process's last page that it does not use.
// Processes that did not receive all of their pages report 0.
func (p ProcessPages) InternalFragmentation(pageSize int) int {
	if !p.Attempted || p.Overflowed {
		return 0
	}
	return p.PagesNeeded*pageSize - p.Size
}

// Result is the frame table produced by Allocate along with per-process outcomes
type Result struct {
	TotalMemory int
	PageSize    int
	// Frames holds every frame of the address space in index order. Its length is always
	// TotalMemory / PageSize.
	Frames []Frame
	// Processes holds one entry per requested process, in request order
	Processes []ProcessPages
	// Overflow is true if some process could not be given all of its pages
	Overflow bool
	// OverflowProcess is the id of the process that overflowed, or 0
	OverflowProcess int

	framesByProcess *swiss.Map[int, []int]
}

var _ memsim.Validatable = &Result{}

// Allocate divides totalMemory into frames of pageSize bytes and hands them out to each
// process in request order. Each process receives ceil(size / pageSize) consecutive frames.
// When the frames run out partway through a process, that process is marked as overflowed
// and no later process is attempted.
//
// An error is returned only if totalMemory, pageSize or a process size is not positive, or if
// the address space would hold more than memsim.MaxFrameCount frames.
func Allocate(totalMemory, pageSize int, processSizes []int) (*Result, error) {
	if err := memsim.CheckPositive(totalMemory, "total memory"); err != nil {
		return nil, err
	}
	if err := memsim.CheckPositive(pageSize, "page size"); err != nil {
		return nil, err
	}
	for i, size := range processSizes {
		if err := memsim.CheckPositive(size, "process size"); err != nil {
			return nil, errors.Wrapf(err, "process %d", i+1)
		}
	}
	if err := memsim.CheckFrameCount(totalMemory, pageSize); err != nil {
		return nil, err
	}

	frameCount := totalMemory / pageSize
	result := &Result{
		TotalMemory:     totalMemory,
		PageSize:        pageSize,
		Frames:          make([]Frame, frameCount),
		Processes:       make([]ProcessPages, 0, len(processSizes)),
		framesByProcess: swiss.NewMap[int, []int](uint32(max(len(processSizes), 1))),
	}
	for i := range result.Frames {
		result.Frames[i].Index = i
	}

	cursor := 0
	for processIndex, size := range processSizes {
		process := ProcessPages{
			Process:     processIndex + 1,
			Size:        size,
			PagesNeeded: memsim.CeilDiv(size, pageSize),
		}

		if result.Overflow {
			result.Processes = append(result.Processes, process)
			continue
		}

		process.Attempted = true
		owned := make([]int, 0, min(process.PagesNeeded, frameCount-cursor))
		for process.PagesAssigned < process.PagesNeeded && cursor < frameCount {
			result.Frames[cursor].Owner = process.Process
			owned = append(owned, cursor)
			process.PagesAssigned++
			cursor++
		}
		result.framesByProcess.Put(process.Process, owned)

		if process.PagesAssigned < process.PagesNeeded {
			process.Overflowed = true
			result.Overflow = true
			result.OverflowProcess = process.Process
		}

		result.Processes = append(result.Processes, process)
	}

	memsim.DebugValidate(result)
	return result, nil
}

// FrameCount returns the number of frames in the table
func (r *Result) FrameCount() int {
	return len(r.Frames)
}

// FramesOf returns the indices of the frames owned by the provided process, in ascending order
func (r *Result) FramesOf(process int) []int {
	frames, ok := r.framesByProcess.Get(process)
	if !ok {
		return nil
	}
	return frames
}

// FreeFrames returns the number of frames no process owns
func (r *Result) FreeFrames() int {
	var count int
	for _, frame := range r.Frames {
		if frame.IsFree() {
			count++
		}
	}
	return count
}

// Remainder returns the bytes at the end of the address space too small to form a frame
func (r *Result) Remainder() int {
	return r.TotalMemory - len(r.Frames)*r.PageSize
}

// AddUsage sums the frame table's usage into the provided memsim.Usage. Each process's frames
// count as one allocation, each run of free frames as one free range.
func (r *Result) AddUsage(usage *memsim.Usage) {
	usage.TotalBytes += len(r.Frames) * r.PageSize

	for _, process := range r.Processes {
		if process.PagesAssigned == 0 {
			continue
		}
		usage.AddAllocation(process.PagesAssigned * r.PageSize)
		usage.WastedBytes += process.InternalFragmentation(r.PageSize)
	}

	freeRun := 0
	for _, frame := range r.Frames {
		if frame.IsFree() {
			freeRun++
			continue
		}
		if freeRun > 0 {
			usage.AddFreeRange(freeRun * r.PageSize)
			freeRun = 0
		}
	}
	if freeRun > 0 {
		usage.AddFreeRange(freeRun * r.PageSize)
	}
}

// Validate performs internal consistency checks on the frame table
func (r *Result) Validate() error {
	if r.PageSize <= 0 {
		return errors.Newf("page size must be positive, but is %d", r.PageSize)
	}

	if len(r.Frames) != r.TotalMemory/r.PageSize {
		return errors.Newf("frame table holds %d frames, but %d bytes of memory divided into %d-byte pages should produce %d", len(r.Frames), r.TotalMemory, r.PageSize, r.TotalMemory/r.PageSize)
	}

	owned := make(map[int]int, len(r.Processes))
	lastOwner := 0
	for _, frame := range r.Frames {
		if frame.IsFree() {
			continue
		}
		if frame.Owner < lastOwner {
			return errors.Newf("frame %d is owned by process %d, after a frame owned by process %d", frame.Index, frame.Owner, lastOwner)
		}
		lastOwner = frame.Owner
		owned[frame.Owner]++
	}

	overflowSeen := false
	for _, process := range r.Processes {
		if owned[process.Process] != process.PagesAssigned {
			return errors.Newf("process %d is recorded with %d pages, but owns %d frames", process.Process, process.PagesAssigned, owned[process.Process])
		}
		if process.PagesAssigned > process.PagesNeeded {
			return errors.Newf("process %d was assigned %d pages, but only needs %d", process.Process, process.PagesAssigned, process.PagesNeeded)
		}
		if overflowSeen && process.PagesAssigned > 0 {
			return errors.Newf("process %d was assigned frames after an earlier process overflowed", process.Process)
		}
		if process.Overflowed {
			overflowSeen = true
		}
	}

	if overflowSeen != r.Overflow {
		return errors.Newf("overflow flag is %t, but process records indicate %t", r.Overflow, overflowSeen)
	}

	return nil
}
