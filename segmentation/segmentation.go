package segmentation

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/memsim"
	"github.com/vkngwrapper/memsim/metadata"
)

// SegmentRef identifies a segment by its 1-based process and segment indices
type SegmentRef struct {
	Process int
	Segment int
}

// SegmentRecord is a placed segment. Its extent is [Base, Base+Size).
type SegmentRecord struct {
	Process int
	Segment int
	Base    int
	// Size is the segment's limit
	Size int
}

// End returns the first address past the segment
func (r SegmentRecord) End() int {
	return r.Base + r.Size
}

// FreeBlock is the unused tail of the address space
type FreeBlock struct {
	Base int
	Size int
}

// Overflow identifies the first segment that could not be placed
type Overflow struct {
	Process int
	Segment int
	Size    int
	// Address is where the segment would have been placed
	Address int
}

// Table is the base/limit table produced by Allocate
type Table struct {
	TotalMemory int
	// Segments holds every placed segment in ascending address order
	Segments []SegmentRecord
	// FreeBlock is nil when the placed segments consume the whole address space
	FreeBlock *FreeBlock
	// OverflowAt is nil unless placement stopped because a segment did not fit
	OverflowAt *Overflow
	// Unplaced counts the segments that were never placed, including the one at OverflowAt
	Unplaced int

	block metadata.BlockMetadata
}

var _ memsim.Validatable = &Table{}

// Allocate places every segment of every group contiguously, starting at address 0, in
// declaration order. Placement stops entirely at the first segment that would extend past
// totalMemory: that segment is recorded in the table's OverflowAt and no later segment, from
// this process or any other, is attempted. Any space left after the last placed segment is
// reported as the table's FreeBlock.
//
// An error is returned if totalMemory or a segment size is not positive.
func Allocate(totalMemory int, segmentGroups [][]int) (*Table, error) {
	return allocate(metadata.NewLinearBlockMetadata(), totalMemory, segmentGroups)
}

func allocate(block metadata.BlockMetadata, totalMemory int, segmentGroups [][]int) (*Table, error) {
	if err := memsim.CheckPositive(totalMemory, "total memory"); err != nil {
		return nil, err
	}
	for processIndex, group := range segmentGroups {
		for segmentIndex, size := range group {
			if err := memsim.CheckPositive(size, "segment size"); err != nil {
				return nil, errors.Wrapf(err, "process %d segment %d", processIndex+1, segmentIndex+1)
			}
		}
	}

	block.Init(totalMemory)
	table := &Table{
		TotalMemory: totalMemory,
		Segments:    []SegmentRecord{},
		block:       block,
	}

placement:
	for processIndex, group := range segmentGroups {
		for segmentIndex, size := range group {
			ref := SegmentRef{Process: processIndex + 1, Segment: segmentIndex + 1}
			allocType := uint32(ref.Process)

			success, request, err := block.CreateAllocationRequest(size, allocType)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to request space for process %d segment %d", ref.Process, ref.Segment)
			}

			if !success {
				table.OverflowAt = &Overflow{
					Process: ref.Process,
					Segment: ref.Segment,
					Size:    size,
					Address: totalMemory - block.SumFreeSize(),
				}
				table.Unplaced = countFrom(segmentGroups, processIndex, segmentIndex)
				break placement
			}

			err = block.Alloc(request, allocType, ref)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to place process %d segment %d", ref.Process, ref.Segment)
			}

			base, err := block.AllocationOffset(request.BlockAllocationHandle)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to locate process %d segment %d", ref.Process, ref.Segment)
			}
			table.Segments = append(table.Segments, SegmentRecord{
				Process: ref.Process,
				Segment: ref.Segment,
				Base:    base,
				Size:    size,
			})
		}
	}

	// The block's regions must agree with the records built from allocation handles
	visited := 0
	err := block.VisitAllRegions(func(handle metadata.BlockAllocationHandle, offset int, size int, userData any, free bool) error {
		if free {
			if size != totalMemory-offset {
				return errors.Newf("found a free region at offset %d in the middle of placed segments", offset)
			}
			table.FreeBlock = &FreeBlock{Base: offset, Size: size}
			return nil
		}

		ref, ok := userData.(SegmentRef)
		if !ok {
			return errors.Newf("region at offset %d does not belong to a segment", offset)
		}
		if visited >= len(table.Segments) {
			return errors.Newf("process %d segment %d at offset %d was never placed", ref.Process, ref.Segment, offset)
		}

		record := table.Segments[visited]
		if record.Process != ref.Process || record.Segment != ref.Segment || record.Base != offset || record.Size != size {
			return errors.Newf("region [%d, %d) holds process %d segment %d, but process %d segment %d was placed at [%d, %d)",
				offset, offset+size, ref.Process, ref.Segment, record.Process, record.Segment, record.Base, record.End())
		}
		visited++
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build segment table")
	}
	if visited != len(table.Segments) {
		return nil, errors.Newf("placed %d segments, but the block holds %d", len(table.Segments), visited)
	}

	memsim.DebugValidate(table)
	return table, nil
}

func countFrom(segmentGroups [][]int, processIndex, segmentIndex int) int {
	count := len(segmentGroups[processIndex]) - segmentIndex
	for _, group := range segmentGroups[processIndex+1:] {
		count += len(group)
	}
	return count
}

// Overflowed returns true if placement stopped before every segment was placed
func (t *Table) Overflowed() bool {
	return t.OverflowAt != nil
}

// UsedBytes returns the number of bytes held by placed segments
func (t *Table) UsedBytes() int {
	var used int
	for _, segment := range t.Segments {
		used += segment.Size
	}
	return used
}

// FreeBytes returns the size of the trailing free block, or 0 if there is none
func (t *Table) FreeBytes() int {
	if t.FreeBlock == nil {
		return 0
	}
	return t.FreeBlock.Size
}

// SegmentsOf returns the placed segments of the provided process, in segment order
func (t *Table) SegmentsOf(process int) []SegmentRecord {
	var segments []SegmentRecord
	for _, segment := range t.Segments {
		if segment.Process == process {
			segments = append(segments, segment)
		}
	}
	return segments
}

// AddUsage sums the table's usage into the provided memsim.Usage
func (t *Table) AddUsage(usage *memsim.Usage) {
	t.block.AddUsage(usage)
}

// BlockJsonData populates a json object with summary information about the address space
func (t *Table) BlockJsonData(json jwriter.ObjectState) {
	t.block.BlockJsonData(json)
}

// Validate performs internal consistency checks on the table
func (t *Table) Validate() error {
	err := t.block.Validate()
	if err != nil {
		return err
	}

	cursor := 0
	for index, segment := range t.Segments {
		if segment.Base != cursor {
			return errors.Newf("segment %d (process %d segment %d) starts at %d, but the previous segment ended at %d", index, segment.Process, segment.Segment, segment.Base, cursor)
		}
		cursor = segment.End()
	}

	if cursor > t.TotalMemory {
		return errors.Newf("placed segments end at %d, past the end of memory at %d", cursor, t.TotalMemory)
	}

	if cursor < t.TotalMemory {
		if t.FreeBlock == nil {
			return errors.Newf("placed segments end at %d, but no free block covers the rest of memory", cursor)
		}
		if t.FreeBlock.Base != cursor || t.FreeBlock.Base+t.FreeBlock.Size != t.TotalMemory {
			return errors.Newf("free block [%d, %d) does not cover the tail [%d, %d)", t.FreeBlock.Base, t.FreeBlock.Base+t.FreeBlock.Size, cursor, t.TotalMemory)
		}
	} else if t.FreeBlock != nil {
		return errors.New("memory is fully used, but a free block is present")
	}

	if t.OverflowAt != nil && t.OverflowAt.Size <= t.TotalMemory-t.OverflowAt.Address {
		return errors.Newf("process %d segment %d is marked as overflowing, but it fits", t.OverflowAt.Process, t.OverflowAt.Segment)
	}

	return nil
}
