package request_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/memsim"
	"github.com/vkngwrapper/memsim/request"
)

func validRaw() request.Raw {
	return request.Raw{
		TotalMemory:  "1000",
		Processes:    "2",
		ProcessSizes: "250,150",
		PageSize:     "100",
		Segments:     "100,200;150;300,80",
	}
}

func TestParse(t *testing.T) {
	req, err := request.Parse(validRaw())
	require.NoError(t, err)

	require.Equal(t, &request.AllocationRequest{
		TotalMemory:   1000,
		PageSize:      100,
		ProcessSizes:  []int{250, 150},
		SegmentGroups: [][]int{{100, 200}, {150}, {300, 80}},
	}, req)
	require.Equal(t, 2, req.ProcessCount())
	require.Equal(t, 5, req.SegmentCount())
	require.NoError(t, req.Validate())
}

func TestParseTrimsWhitespace(t *testing.T) {
	req, err := request.Parse(request.Raw{
		TotalMemory:  " 600 ",
		Processes:    "3",
		ProcessSizes: " 300 , 200,150 ",
		PageSize:     "\t50",
		Segments:     " 100 , 200 ; 150 ",
	})
	require.NoError(t, err)

	require.Equal(t, 600, req.TotalMemory)
	require.Equal(t, 50, req.PageSize)
	require.Equal(t, []int{300, 200, 150}, req.ProcessSizes)
	require.Equal(t, [][]int{{100, 200}, {150}}, req.SegmentGroups)
}

func TestParseSkipsEmptySegmentGroups(t *testing.T) {
	raw := validRaw()
	raw.Segments = "100;;  ;200,50;"

	req, err := request.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, [][]int{{100}, {200, 50}}, req.SegmentGroups)

	raw.Segments = ""
	req, err = request.Parse(raw)
	require.NoError(t, err)
	require.Empty(t, req.SegmentGroups)
}

func TestParseCountMismatch(t *testing.T) {
	raw := validRaw()
	raw.Processes = "2"
	raw.ProcessSizes = "100"

	req, err := request.Parse(raw)
	require.Nil(t, req)
	require.ErrorIs(t, err, memsim.ErrValidation)

	var validationErr *memsim.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, memsim.ReasonCountMismatch, validationErr.Reason)
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(raw *request.Raw)
		wantField string
	}{
		{
			name:      "total memory not a number",
			mutate:    func(raw *request.Raw) { raw.TotalMemory = "lots" },
			wantField: request.FieldTotalMemory,
		},
		{
			name:      "total memory zero",
			mutate:    func(raw *request.Raw) { raw.TotalMemory = "0" },
			wantField: request.FieldTotalMemory,
		},
		{
			name:      "process count negative",
			mutate:    func(raw *request.Raw) { raw.Processes = "-2" },
			wantField: request.FieldProcesses,
		},
		{
			name:      "process count empty",
			mutate:    func(raw *request.Raw) { raw.Processes = "" },
			wantField: request.FieldProcesses,
		},
		{
			name:      "process size fractional",
			mutate:    func(raw *request.Raw) { raw.ProcessSizes = "250,15.5" },
			wantField: request.FieldProcessSizes,
		},
		{
			name:      "process size empty token",
			mutate:    func(raw *request.Raw) { raw.ProcessSizes = "250," },
			wantField: request.FieldProcessSizes,
		},
		{
			name:      "process size zero",
			mutate:    func(raw *request.Raw) { raw.ProcessSizes = "0,150" },
			wantField: request.FieldProcessSizes,
		},
		{
			name:      "page size zero",
			mutate:    func(raw *request.Raw) { raw.PageSize = "0" },
			wantField: request.FieldPageSize,
		},
		{
			name:      "segment size not a number",
			mutate:    func(raw *request.Raw) { raw.Segments = "100,abc;150" },
			wantField: request.FieldSegments,
		},
		{
			name:      "segment size empty token",
			mutate:    func(raw *request.Raw) { raw.Segments = "100,,200" },
			wantField: request.FieldSegments,
		},
		{
			name:      "segment size negative",
			mutate:    func(raw *request.Raw) { raw.Segments = "100;-150" },
			wantField: request.FieldSegments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			req, err := request.Parse(raw)
			require.Nil(t, req)
			require.ErrorIs(t, err, memsim.ErrValidation)

			var validationErr *memsim.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Equal(t, memsim.ReasonParseFailure, validationErr.Reason)
			require.Equal(t, tt.wantField, validationErr.Field)
			require.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestNewCopiesSlices(t *testing.T) {
	sizes := []int{100, 200}
	groups := [][]int{{50, 50}}

	req, err := request.New(1000, 100, sizes, groups)
	require.NoError(t, err)

	sizes[0] = 999
	groups[0][0] = 999

	require.Equal(t, []int{100, 200}, req.ProcessSizes)
	require.Equal(t, [][]int{{50, 50}}, req.SegmentGroups)
}

func TestNewRejectsInvalidValues(t *testing.T) {
	_, err := request.New(0, 100, []int{100}, nil)
	require.ErrorIs(t, err, memsim.ErrValidation)

	_, err = request.New(1000, -1, []int{100}, nil)
	require.ErrorIs(t, err, memsim.ErrValidation)

	_, err = request.New(1000, 100, nil, nil)
	require.ErrorIs(t, err, memsim.ErrValidation)

	_, err = request.New(1000, 100, []int{100, 0}, nil)
	require.ErrorIs(t, err, memsim.ErrValidation)

	_, err = request.New(1000, 100, []int{100}, [][]int{{}})
	require.ErrorIs(t, err, memsim.ErrValidation)

	_, err = request.New(1000, 100, []int{100}, [][]int{{10, -10}})
	require.ErrorIs(t, err, memsim.ErrValidation)
}

func TestParseRejectsTooManyFrames(t *testing.T) {
	_, err := request.Parse(request.Raw{
		TotalMemory:  "9223372036854775807",
		Processes:    "1",
		ProcessSizes: "1",
		PageSize:     "1",
	})
	require.ErrorIs(t, err, memsim.ErrValidation)
	require.ErrorIs(t, err, memsim.TooManyFramesError)

	var validationErr *memsim.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, memsim.ReasonOutOfRange, validationErr.Reason)
	require.Equal(t, request.FieldTotalMemory, validationErr.Field)

	req, err := request.Parse(request.Raw{
		TotalMemory:  "9223372036854775807",
		Processes:    "1",
		ProcessSizes: "9223372036854775807",
		PageSize:     "9223372036854775807",
	})
	require.NoError(t, err)
	require.Equal(t, math.MaxInt, req.ProcessSizes[0])
}

func TestNewRejectsTooManyFrames(t *testing.T) {
	_, err := request.New(memsim.MaxFrameCount+1, 1, []int{1}, nil)
	require.ErrorIs(t, err, memsim.ErrValidation)
	require.ErrorIs(t, err, memsim.TooManyFramesError)

	req, err := request.New(memsim.MaxFrameCount, 1, []int{math.MaxInt}, nil)
	require.NoError(t, err)
	require.Equal(t, memsim.MaxFrameCount, req.TotalMemory)
}
