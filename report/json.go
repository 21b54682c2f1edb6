package report

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/memsim"
	"github.com/vkngwrapper/memsim/paging"
	"github.com/vkngwrapper/memsim/request"
	"github.com/vkngwrapper/memsim/segmentation"
	"github.com/vkngwrapper/memsim/simulation"
)

// WriteJSON writes the full result of a run to out as a single JSON object
func WriteJSON(out io.Writer, result *simulation.Result) error {
	writer := jwriter.NewWriter()
	BuildJSON(&writer, result)

	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "failed to build json report")
	}

	_, err := out.Write(append(writer.Bytes(), '\n'))
	return err
}

// BuildJSON writes the result of a run into writer as a single JSON object
func BuildJSON(writer *jwriter.Writer, result *simulation.Result) {
	obj := writer.Object()
	defer obj.End()

	printRequest(obj.Name("Request"), result.Request)

	if result.Paging != nil {
		printPaging(obj.Name("Paging"), result.Paging)
	}

	if result.Segmentation != nil {
		printSegmentation(obj.Name("Segmentation"), result.Segmentation)
	}
}

func printRequest(writer *jwriter.Writer, req *request.AllocationRequest) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("TotalMemory").Int(req.TotalMemory)
	obj.Name("PageSize").Int(req.PageSize)

	sizes := obj.Name("ProcessSizes").Array()
	for _, size := range req.ProcessSizes {
		sizes.Int(size)
	}
	sizes.End()

	groups := obj.Name("SegmentGroups").Array()
	for _, group := range req.SegmentGroups {
		groupArray := groups.Array()
		for _, size := range group {
			groupArray.Int(size)
		}
		groupArray.End()
	}
	groups.End()
}

func printPaging(writer *jwriter.Writer, result *paging.Result) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("FrameCount").Int(result.FrameCount())
	obj.Name("Remainder").Int(result.Remainder())

	frames := obj.Name("Frames").Array()
	for _, frame := range result.Frames {
		frameObj := frames.Object()
		frameObj.Name("Index").Int(frame.Index)
		frameObj.Name("Base").Int(frame.Base(result.PageSize))
		if frame.IsFree() {
			frameObj.Name("Owner").Null()
		} else {
			frameObj.Name("Owner").Int(frame.Owner)
		}
		frameObj.End()
	}
	frames.End()

	processes := obj.Name("Processes").Array()
	for _, process := range result.Processes {
		processObj := processes.Object()
		processObj.Name("Process").Int(process.Process)
		processObj.Name("Size").Int(process.Size)
		processObj.Name("PagesNeeded").Int(process.PagesNeeded)
		processObj.Name("PagesAssigned").Int(process.PagesAssigned)
		processObj.Name("Attempted").Bool(process.Attempted)
		processObj.Name("Overflowed").Bool(process.Overflowed)

		frameArray := processObj.Name("Frames").Array()
		for _, index := range result.FramesOf(process.Process) {
			frameArray.Int(index)
		}
		frameArray.End()

		processObj.End()
	}
	processes.End()

	obj.Name("Overflow").Bool(result.Overflow)
	if result.Overflow {
		obj.Name("OverflowProcess").Int(result.OverflowProcess)
	} else {
		obj.Name("OverflowProcess").Null()
	}

	var usage memsim.Usage
	usage.Clear()
	result.AddUsage(&usage)
	printUsage(obj.Name("Usage"), &usage)
}

func printSegmentation(writer *jwriter.Writer, table *segmentation.Table) {
	obj := writer.Object()
	defer obj.End()

	blockObj := obj.Name("Block").Object()
	table.BlockJsonData(blockObj)
	blockObj.End()

	segments := obj.Name("Segments").Array()
	for _, segment := range table.Segments {
		segmentObj := segments.Object()
		segmentObj.Name("Process").Int(segment.Process)
		segmentObj.Name("Segment").Int(segment.Segment)
		segmentObj.Name("Base").Int(segment.Base)
		segmentObj.Name("Limit").Int(segment.Size)
		segmentObj.End()
	}
	segments.End()

	if table.FreeBlock != nil {
		freeObj := obj.Name("FreeBlock").Object()
		freeObj.Name("Base").Int(table.FreeBlock.Base)
		freeObj.Name("Size").Int(table.FreeBlock.Size)
		freeObj.End()
	} else {
		obj.Name("FreeBlock").Null()
	}

	if table.OverflowAt != nil {
		overflowObj := obj.Name("OverflowAt").Object()
		overflowObj.Name("Process").Int(table.OverflowAt.Process)
		overflowObj.Name("Segment").Int(table.OverflowAt.Segment)
		overflowObj.Name("Size").Int(table.OverflowAt.Size)
		overflowObj.Name("Address").Int(table.OverflowAt.Address)
		overflowObj.End()
	} else {
		obj.Name("OverflowAt").Null()
	}
	obj.Name("Unplaced").Int(table.Unplaced)

	var usage memsim.Usage
	usage.Clear()
	table.AddUsage(&usage)
	printUsage(obj.Name("Usage"), &usage)
}

func printUsage(writer *jwriter.Writer, usage *memsim.Usage) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("TotalBytes").Int(usage.TotalBytes)
	obj.Name("UsedBytes").Int(usage.UsedBytes)
	obj.Name("FreeBytes").Int(usage.FreeBytes)
	obj.Name("WastedBytes").Int(usage.WastedBytes)
	obj.Name("Allocations").Int(usage.AllocationCount)
	obj.Name("FreeRanges").Int(usage.FreeRangeCount)
	obj.Maybe("AllocationSizeMin", usage.AllocationCount > 0).Int(usage.AllocationSizeMin)
	obj.Maybe("AllocationSizeMax", usage.AllocationCount > 0).Int(usage.AllocationSizeMax)
	obj.Maybe("FreeRangeSizeMin", usage.FreeRangeCount > 0).Int(usage.FreeRangeSizeMin)
	obj.Maybe("FreeRangeSizeMax", usage.FreeRangeCount > 0).Int(usage.FreeRangeSizeMax)
}
