package paging_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/memsim"
	"github.com/vkngwrapper/memsim/paging"
)

func owners(result *paging.Result) []int {
	out := make([]int, 0, len(result.Frames))
	for _, frame := range result.Frames {
		out = append(out, frame.Owner)
	}
	return out
}

func TestAllocateFitsAllProcesses(t *testing.T) {
	result, err := paging.Allocate(1000, 100, []int{250, 150})
	require.NoError(t, err)

	require.Equal(t, 10, result.FrameCount())
	require.Equal(t, []int{1, 1, 1, 2, 2, 0, 0, 0, 0, 0}, owners(result))
	require.Equal(t, []int{0, 1, 2}, result.FramesOf(1))
	require.Equal(t, []int{3, 4}, result.FramesOf(2))
	require.Nil(t, result.FramesOf(3))
	require.Equal(t, 5, result.FreeFrames())
	require.False(t, result.Overflow)
	require.Equal(t, 0, result.OverflowProcess)

	require.Equal(t, []paging.ProcessPages{
		{Process: 1, Size: 250, PagesNeeded: 3, PagesAssigned: 3, Attempted: true},
		{Process: 2, Size: 150, PagesNeeded: 2, PagesAssigned: 2, Attempted: true},
	}, result.Processes)
	require.NoError(t, result.Validate())
}

func TestAllocateOverflowSingleProcess(t *testing.T) {
	result, err := paging.Allocate(500, 100, []int{650})
	require.NoError(t, err)

	require.Equal(t, 5, result.FrameCount())
	require.Equal(t, []int{1, 1, 1, 1, 1}, owners(result))
	require.True(t, result.Overflow)
	require.Equal(t, 1, result.OverflowProcess)
	require.Equal(t, paging.ProcessPages{
		Process: 1, Size: 650, PagesNeeded: 7, PagesAssigned: 5, Attempted: true, Overflowed: true,
	}, result.Processes[0])
	require.NoError(t, result.Validate())
}

func TestAllocateStopsAfterOverflow(t *testing.T) {
	result, err := paging.Allocate(400, 100, []int{150, 300, 50})
	require.NoError(t, err)

	require.Equal(t, []int{1, 1, 2, 2}, owners(result))
	require.True(t, result.Overflow)
	require.Equal(t, 2, result.OverflowProcess)

	// The third process would have fit in a free frame had the second not overflowed, but it
	// is never attempted
	require.Equal(t, paging.ProcessPages{
		Process: 3, Size: 50, PagesNeeded: 1,
	}, result.Processes[2])
	require.Empty(t, result.FramesOf(3))
	require.NoError(t, result.Validate())
}

func TestAllocateExactFitThenOverflow(t *testing.T) {
	result, err := paging.Allocate(300, 100, []int{300, 1})
	require.NoError(t, err)

	require.Equal(t, []int{1, 1, 1}, owners(result))
	require.False(t, result.Processes[0].Overflowed)
	require.True(t, result.Processes[1].Overflowed)
	require.Equal(t, 0, result.Processes[1].PagesAssigned)
	require.Equal(t, 2, result.OverflowProcess)
	require.Empty(t, result.FramesOf(2))
	require.NoError(t, result.Validate())
}

func TestAllocateNoFrames(t *testing.T) {
	result, err := paging.Allocate(50, 100, []int{10, 20})
	require.NoError(t, err)

	require.Equal(t, 0, result.FrameCount())
	require.Equal(t, 50, result.Remainder())
	require.True(t, result.Overflow)
	require.Equal(t, 1, result.OverflowProcess)
	require.False(t, result.Processes[1].Attempted)
	require.NoError(t, result.Validate())
}

func TestAllocateFloorsFrameCount(t *testing.T) {
	result, err := paging.Allocate(1050, 100, []int{100})
	require.NoError(t, err)

	require.Equal(t, 10, result.FrameCount())
	require.Equal(t, 50, result.Remainder())
	require.Equal(t, 900, result.Frames[9].Base(100))
}

func TestAllocateInvalidArguments(t *testing.T) {
	_, err := paging.Allocate(0, 100, []int{10})
	require.ErrorIs(t, err, memsim.NonPositiveError)

	_, err = paging.Allocate(100, 0, []int{10})
	require.ErrorIs(t, err, memsim.NonPositiveError)

	_, err = paging.Allocate(100, 10, []int{10, -1})
	require.ErrorIs(t, err, memsim.NonPositiveError)
}

func TestAllocateHugeProcess(t *testing.T) {
	result, err := paging.Allocate(1000, 1, []int{1 << 50, 10})
	require.NoError(t, err)

	require.True(t, result.Overflow)
	require.Equal(t, 1, result.OverflowProcess)
	require.Equal(t, 1<<50, result.Processes[0].PagesNeeded)
	require.Equal(t, 1000, result.Processes[0].PagesAssigned)
	require.Len(t, result.FramesOf(1), 1000)
	require.False(t, result.Processes[1].Attempted)
	require.Zero(t, result.FreeFrames())
}

func TestAllocateMaxIntProcess(t *testing.T) {
	result, err := paging.Allocate(1000, 100, []int{200, math.MaxInt})
	require.NoError(t, err)

	require.True(t, result.Overflow)
	require.Equal(t, 2, result.OverflowProcess)

	process := result.Processes[1]
	require.Equal(t, math.MaxInt/100+1, process.PagesNeeded)
	require.Equal(t, 8, process.PagesAssigned)
	require.Zero(t, process.InternalFragmentation(100))
	require.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, result.FramesOf(2))
	require.NoError(t, result.Validate())
}

func TestAllocateRejectsTooManyFrames(t *testing.T) {
	result, err := paging.Allocate(math.MaxInt, 1, []int{1})
	require.Nil(t, result)
	require.ErrorIs(t, err, memsim.TooManyFramesError)

	_, err = paging.Allocate(memsim.MaxFrameCount+1, 1, []int{1})
	require.ErrorIs(t, err, memsim.TooManyFramesError)

	result, err = paging.Allocate(memsim.MaxFrameCount, 1, []int{10})
	require.NoError(t, err)
	require.Equal(t, memsim.MaxFrameCount, result.FrameCount())
}

func TestAllocateIsDeterministic(t *testing.T) {
	sizes := []int{120, 330, 45, 900, 10}

	first, err := paging.Allocate(1500, 64, sizes)
	require.NoError(t, err)
	second, err := paging.Allocate(1500, 64, sizes)
	require.NoError(t, err)

	require.Equal(t, first.Frames, second.Frames)
	require.Equal(t, first.Processes, second.Processes)
	require.Equal(t, first.Overflow, second.Overflow)
	require.Equal(t, first.OverflowProcess, second.OverflowProcess)
}

func TestAllocateProperties(t *testing.T) {
	cases := []struct {
		totalMemory int
		pageSize    int
		sizes       []int
	}{
		{1000, 100, []int{250, 150}},
		{500, 100, []int{650}},
		{4096, 512, []int{1, 511, 512, 513, 2048}},
		{777, 7, []int{100, 200, 300, 400}},
		{10, 3, []int{1, 1, 1, 1}},
		{1000, 1, []int{1 << 50}},
		{1000, 100, []int{math.MaxInt}},
		{1000, 100, []int{100, math.MaxInt, 5}},
		{math.MaxInt, math.MaxInt / 1000, []int{math.MaxInt - 1, 1}},
	}

	for _, c := range cases {
		result, err := paging.Allocate(c.totalMemory, c.pageSize, c.sizes)
		require.NoError(t, err)

		require.Len(t, result.Frames, c.totalMemory/c.pageSize)
		require.Len(t, result.Processes, len(c.sizes))

		overflowed := false
		for _, process := range result.Processes {
			needed := process.Size / c.pageSize
			if process.Size%c.pageSize != 0 {
				needed++
			}
			require.Equal(t, needed, process.PagesNeeded)
			require.Len(t, result.FramesOf(process.Process), process.PagesAssigned)
			require.LessOrEqual(t, process.PagesAssigned, needed)

			if overflowed {
				require.Zero(t, process.PagesAssigned)
				require.False(t, process.Attempted)
			} else if !process.Overflowed {
				require.Equal(t, needed, process.PagesAssigned)
			}
			overflowed = overflowed || process.Overflowed
		}
		require.Equal(t, overflowed, result.Overflow)
		require.NoError(t, result.Validate())
	}
}

func TestAddUsage(t *testing.T) {
	result, err := paging.Allocate(1000, 100, []int{250, 150})
	require.NoError(t, err)

	var usage memsim.Usage
	usage.Clear()
	result.AddUsage(&usage)

	require.Equal(t, memsim.Usage{
		TotalBytes:        1000,
		UsedBytes:         500,
		AllocationCount:   2,
		WastedBytes:       100,
		FreeRangeCount:    1,
		FreeBytes:         500,
		AllocationSizeMin: 200,
		AllocationSizeMax: 300,
		FreeRangeSizeMin:  500,
		FreeRangeSizeMax:  500,
	}, usage)
	require.InDelta(t, 0.5, usage.Utilization(), 0.0001)
}

func TestValidateCatchesCorruption(t *testing.T) {
	result, err := paging.Allocate(1000, 100, []int{250, 150})
	require.NoError(t, err)

	result.Frames[7].Owner = 1
	require.Error(t, result.Validate())

	result.Frames[7].Owner = paging.Free
	result.Frames = result.Frames[:9]
	require.Error(t, result.Validate())
}
