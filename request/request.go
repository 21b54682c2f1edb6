package request

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsim"
	"golang.org/x/exp/slices"
)

// Field names reported by ValidationError.Field
const (
	FieldTotalMemory  = "total_memory"
	FieldProcesses    = "processes"
	FieldProcessSizes = "process_sizes"
	FieldPageSize     = "page_size"
	FieldSegments     = "segments"
)

const (
	sizeDelimiter  = ","
	groupDelimiter = ";"
)

// Raw holds the five textual fields a simulation is requested with, before any parsing
type Raw struct {
	// TotalMemory is the size of the address space, in bytes
	TotalMemory string
	// Processes is the declared number of processes, which must match the number of ProcessSizes
	Processes string
	// ProcessSizes is a comma-separated list of process sizes, e.g. "300,200,150"
	ProcessSizes string
	// PageSize is the size of a single page and frame
	PageSize string
	// Segments is a semicolon-separated list of comma-separated segment sizes, one group per
	// process, e.g. "100,200;150;300,80"
	Segments string
}

// AllocationRequest is a validated simulation request. It is never modified once built.
type AllocationRequest struct {
	TotalMemory  int
	PageSize     int
	ProcessSizes []int
	// SegmentGroups holds one entry per process, each listing that process's segment sizes
	// in declaration order
	SegmentGroups [][]int
}

var _ memsim.Validatable = &AllocationRequest{}

// Parse validates raw and builds the AllocationRequest it describes. The returned error is
// always a *memsim.ValidationError.
func Parse(raw Raw) (*AllocationRequest, error) {
	totalMemory, err := parsePositive(FieldTotalMemory, raw.TotalMemory)
	if err != nil {
		return nil, err
	}

	processCount, err := parsePositive(FieldProcesses, raw.Processes)
	if err != nil {
		return nil, err
	}

	processSizes, err := parseSizeList(FieldProcessSizes, raw.ProcessSizes)
	if err != nil {
		return nil, err
	}

	if len(processSizes) != processCount {
		return nil, memsim.NewValidationError(memsim.ReasonCountMismatch, FieldProcesses,
			errors.Newf("%d processes declared but %d process sizes given", processCount, len(processSizes)))
	}

	pageSize, err := parsePositive(FieldPageSize, raw.PageSize)
	if err != nil {
		return nil, err
	}
	if err := memsim.CheckFrameCount(totalMemory, pageSize); err != nil {
		return nil, memsim.NewValidationError(memsim.ReasonOutOfRange, FieldTotalMemory, err)
	}

	segmentGroups, err := parseSegmentGroups(raw.Segments)
	if err != nil {
		return nil, err
	}

	return &AllocationRequest{
		TotalMemory:   totalMemory,
		PageSize:      pageSize,
		ProcessSizes:  processSizes,
		SegmentGroups: segmentGroups,
	}, nil
}

// New builds an AllocationRequest from already-parsed values. The slices are copied, so the
// caller may reuse them afterward.
func New(totalMemory, pageSize int, processSizes []int, segmentGroups [][]int) (*AllocationRequest, error) {
	req := &AllocationRequest{
		TotalMemory:   totalMemory,
		PageSize:      pageSize,
		ProcessSizes:  slices.Clone(processSizes),
		SegmentGroups: make([][]int, 0, len(segmentGroups)),
	}
	for _, group := range segmentGroups {
		req.SegmentGroups = append(req.SegmentGroups, slices.Clone(group))
	}

	err := req.Validate()
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ProcessCount returns the number of processes taking part in paging
func (r *AllocationRequest) ProcessCount() int {
	return len(r.ProcessSizes)
}

// SegmentCount returns the total number of segments across all groups
func (r *AllocationRequest) SegmentCount() int {
	var count int
	for _, group := range r.SegmentGroups {
		count += len(group)
	}
	return count
}

// Validate verifies that every size in the request is positive, that there is at least one
// process and that the frame table fits within memsim.MaxFrameCount. Requests produced by Parse always pass.
func (r *AllocationRequest) Validate() error {
	if err := memsim.CheckPositive(r.TotalMemory, FieldTotalMemory); err != nil {
		return memsim.NewValidationError(memsim.ReasonParseFailure, FieldTotalMemory, err)
	}
	if err := memsim.CheckPositive(r.PageSize, FieldPageSize); err != nil {
		return memsim.NewValidationError(memsim.ReasonParseFailure, FieldPageSize, err)
	}
	if err := memsim.CheckFrameCount(r.TotalMemory, r.PageSize); err != nil {
		return memsim.NewValidationError(memsim.ReasonOutOfRange, FieldTotalMemory, err)
	}
	if len(r.ProcessSizes) == 0 {
		return memsim.NewValidationError(memsim.ReasonParseFailure, FieldProcesses, errors.New("at least one process is required"))
	}

	for i, size := range r.ProcessSizes {
		if err := memsim.CheckPositive(size, "process size"); err != nil {
			return memsim.NewValidationError(memsim.ReasonParseFailure, FieldProcessSizes, errors.Wrapf(err, "process %d", i+1))
		}
	}

	for i, group := range r.SegmentGroups {
		if len(group) == 0 {
			return memsim.NewValidationError(memsim.ReasonParseFailure, FieldSegments, errors.Newf("segment group %d is empty", i+1))
		}
		for j, size := range group {
			if err := memsim.CheckPositive(size, "segment size"); err != nil {
				return memsim.NewValidationError(memsim.ReasonParseFailure, FieldSegments, errors.Wrapf(err, "process %d segment %d", i+1, j+1))
			}
		}
	}

	return nil
}

func parsePositive(field, token string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, memsim.NewValidationError(memsim.ReasonParseFailure, field, errors.Wrapf(err, "%q is not an integer", token))
	}

	err = memsim.CheckPositive(value, field)
	if err != nil {
		return 0, memsim.NewValidationError(memsim.ReasonParseFailure, field, err)
	}

	return value, nil
}

func parseSizeList(field, list string) ([]int, error) {
	tokens := strings.Split(list, sizeDelimiter)
	sizes := make([]int, 0, len(tokens))

	for _, token := range tokens {
		size, err := parsePositive(field, token)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}

	return sizes, nil
}

func parseSegmentGroups(groups string) ([][]int, error) {
	segmentGroups := [][]int{}

	for _, group := range strings.Split(groups, groupDelimiter) {
		// Blank groups are dropped rather than kept as zero-length groups
		if strings.TrimSpace(group) == "" {
			continue
		}

		sizes, err := parseSizeList(FieldSegments, group)
		if err != nil {
			return nil, err
		}
		segmentGroups = append(segmentGroups, sizes)
	}

	return segmentGroups, nil
}
