package simulation

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsim"
	"github.com/vkngwrapper/memsim/paging"
	"github.com/vkngwrapper/memsim/request"
	"github.com/vkngwrapper/memsim/segmentation"
	"golang.org/x/exp/slog"
)

// Mode selects which allocators a run uses
type Mode uint32

const (
	// ModePaging runs the paging allocator
	ModePaging Mode = 1 << iota
	// ModeSegmentation runs the segmentation allocator
	ModeSegmentation

	// ModeAll runs both allocators
	ModeAll = ModePaging | ModeSegmentation
)

var modeMapping = map[Mode]string{
	ModePaging:       "Paging",
	ModeSegmentation: "Segmentation",
}

func (m Mode) String() string {
	var names []string
	for _, mode := range []Mode{ModePaging, ModeSegmentation} {
		if m&mode != 0 {
			names = append(names, modeMapping[mode])
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// Result holds the placements produced by a single run
type Result struct {
	Request *request.AllocationRequest
	// Paging is nil unless the run included ModePaging
	Paging *paging.Result
	// Segmentation is nil unless the run included ModeSegmentation
	Segmentation *segmentation.Table
}

// PagingUsage summarizes the frame table. It returns false if paging was not run.
func (r *Result) PagingUsage() (memsim.Usage, bool) {
	var usage memsim.Usage
	if r.Paging == nil {
		return usage, false
	}

	usage.Clear()
	r.Paging.AddUsage(&usage)
	return usage, true
}

// SegmentationUsage summarizes the segment table. It returns false if segmentation was not run.
func (r *Result) SegmentationUsage() (memsim.Usage, bool) {
	var usage memsim.Usage
	if r.Segmentation == nil {
		return usage, false
	}

	usage.Clear()
	r.Segmentation.AddUsage(&usage)
	return usage, true
}

// Simulator runs allocation requests. It holds no state between runs, so a single Simulator
// may be reused for any number of requests.
type Simulator struct {
	logger *slog.Logger
}

// New creates a new Simulator that logs to the provided logger
func New(logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger}
}

// RunRaw parses raw and runs the resulting request. Validation failures are returned as
// *memsim.ValidationError and no allocator is run.
func (s *Simulator) RunRaw(raw request.Raw, mode Mode) (*Result, error) {
	req, err := request.Parse(raw)
	if err != nil {
		s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Simulator::RunRaw rejected request", slog.Any("error", err))
		return nil, err
	}

	return s.Run(req, mode)
}

// Run places req with each allocator selected by mode. Overflows are recorded in the
// returned Result and are not errors.
func (s *Simulator) Run(req *request.AllocationRequest, mode Mode) (*Result, error) {
	if mode&ModeAll == 0 {
		return nil, errors.Newf("no allocator selected by mode %d", uint32(mode))
	}

	err := req.Validate()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Simulator::Run",
		slog.String("Mode", mode.String()),
		slog.Int("TotalMemory", req.TotalMemory),
		slog.Int("PageSize", req.PageSize),
		slog.Int("ProcessCount", req.ProcessCount()),
		slog.Int("SegmentCount", req.SegmentCount()))

	result := &Result{Request: req}

	if mode&ModePaging != 0 {
		result.Paging, err = paging.Allocate(req.TotalMemory, req.PageSize, req.ProcessSizes)
		if err != nil {
			return nil, errors.Wrap(err, "paging failed")
		}
		s.logPaging(result.Paging)
	}

	if mode&ModeSegmentation != 0 {
		result.Segmentation, err = segmentation.Allocate(req.TotalMemory, req.SegmentGroups)
		if err != nil {
			return nil, errors.Wrap(err, "segmentation failed")
		}
		s.logSegmentation(result.Segmentation)
	}

	return result, nil
}

func (s *Simulator) logPaging(result *paging.Result) {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Paged processes",
		slog.Int("FrameCount", result.FrameCount()),
		slog.Int("FreeFrames", result.FreeFrames()))

	if result.Overflow {
		process := result.Processes[result.OverflowProcess-1]
		s.logger.LogAttrs(context.Background(), slog.LevelWarn, "paging overflow",
			slog.Int("process", process.Process),
			slog.Int("pagesNeeded", process.PagesNeeded),
			slog.Int("pagesAssigned", process.PagesAssigned))
	}
}

func (s *Simulator) logSegmentation(table *segmentation.Table) {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "    Placed segments",
		slog.Int("SegmentCount", len(table.Segments)),
		slog.Int("FreeBytes", table.FreeBytes()))

	if table.OverflowAt != nil {
		s.logger.LogAttrs(context.Background(), slog.LevelWarn, "segmentation overflow",
			slog.Int("process", table.OverflowAt.Process),
			slog.Int("segment", table.OverflowAt.Segment),
			slog.Int("size", table.OverflowAt.Size),
			slog.Int("address", table.OverflowAt.Address))
	}
}
