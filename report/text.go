package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/vkngwrapper/memsim/paging"
	"github.com/vkngwrapper/memsim/segmentation"
	"github.com/vkngwrapper/memsim/simulation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	statusPlaced     = "placed"
	statusOverflowed = "overflowed"
	statusSkipped    = "skipped"

	freeLabel = "FREE"
)

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func processLabel(process int) string {
	return fmt.Sprintf("P%d", process)
}

func bytesLabel(size int) string {
	return humanize.IBytes(uint64(size))
}

// WriteTable writes the frame table and the base/limit table of a run as aligned columns
func WriteTable(out io.Writer, result *simulation.Result) error {
	var buf bytes.Buffer
	p := newPrinter()

	if result.Paging != nil {
		writePagingTable(&buf, p, result.Paging)
	}

	if result.Segmentation != nil {
		if result.Paging != nil {
			buf.WriteString("\n")
		}
		writeSegmentTable(&buf, p, result.Segmentation)
	}

	_, err := out.Write(buf.Bytes())
	return err
}

func writePagingTable(buf *bytes.Buffer, p *message.Printer, result *paging.Result) {
	p.Fprintf(buf, "Paging: %d frames of %d bytes (%s)\n", result.FrameCount(), result.PageSize, bytesLabel(result.TotalMemory))

	p.Fprintf(buf, "%-8s %12s %8s\n", "Frame", "Base", "Owner")
	for _, frame := range result.Frames {
		owner := freeLabel
		if !frame.IsFree() {
			owner = processLabel(frame.Owner)
		}
		p.Fprintf(buf, "%-8d %12d %8s\n", frame.Index, frame.Base(result.PageSize), owner)
	}

	buf.WriteString("\n")
	p.Fprintf(buf, "%-8s %12s %8s %8s %-10s\n", "Process", "Size", "Pages", "Assigned", "Status")
	for _, process := range result.Processes {
		status := statusPlaced
		if !process.Attempted {
			status = statusSkipped
		} else if process.Overflowed {
			status = statusOverflowed
		}
		p.Fprintf(buf, "%-8s %12d %8d %8d %-10s\n", processLabel(process.Process), process.Size, process.PagesNeeded, process.PagesAssigned, status)
	}

	var wasted int
	for _, process := range result.Processes {
		wasted += process.InternalFragmentation(result.PageSize)
	}
	usedFrames := result.FrameCount() - result.FreeFrames()
	p.Fprintf(buf, "Used %s, free %s, internal fragmentation %s",
		bytesLabel(usedFrames*result.PageSize),
		bytesLabel(result.FreeFrames()*result.PageSize),
		bytesLabel(wasted))
	if result.Remainder() > 0 {
		p.Fprintf(buf, ", %s unusable past the last frame", bytesLabel(result.Remainder()))
	}
	buf.WriteString("\n")

	writePagingOverflow(buf, p, result)
}

func writePagingOverflow(buf *bytes.Buffer, p *message.Printer, result *paging.Result) {
	if !result.Overflow {
		return
	}

	process := result.Processes[result.OverflowProcess-1]
	p.Fprintf(buf, "OVERFLOW: process %d needed %d pages but received %d\n", process.Process, process.PagesNeeded, process.PagesAssigned)
}

func writeSegmentTable(buf *bytes.Buffer, p *message.Printer, table *segmentation.Table) {
	p.Fprintf(buf, "Segmentation: %d segments in %s\n", len(table.Segments), bytesLabel(table.TotalMemory))

	p.Fprintf(buf, "%-8s %8s %12s %12s\n", "Process", "Segment", "Base", "Limit")
	for _, segment := range table.Segments {
		p.Fprintf(buf, "%-8d %8d %12d %12d\n", segment.Process, segment.Segment, segment.Base, segment.Size)
	}
	if table.FreeBlock != nil {
		p.Fprintf(buf, "%-8s %8s %12d %12d\n", freeLabel, "-", table.FreeBlock.Base, table.FreeBlock.Size)
	}

	p.Fprintf(buf, "Used %s, free %s\n", bytesLabel(table.UsedBytes()), bytesLabel(table.FreeBytes()))
	writeSegmentOverflow(buf, p, table)
}

func writeSegmentOverflow(buf *bytes.Buffer, p *message.Printer, table *segmentation.Table) {
	if table.OverflowAt == nil {
		return
	}

	overflow := table.OverflowAt
	p.Fprintf(buf, "OVERFLOW: process %d segment %d (%d bytes) does not fit at address %d, %d segments unplaced\n",
		overflow.Process, overflow.Segment, overflow.Size, overflow.Address, table.Unplaced)
}

// WriteMap writes one cell per frame and one cell per placed segment, in address order
func WriteMap(out io.Writer, result *simulation.Result) error {
	var buf bytes.Buffer
	p := newPrinter()

	if result.Paging != nil {
		buf.WriteString("Frame map:\n")
		buf.WriteString(FrameMap(result.Paging))
		buf.WriteString("\n")
		writePagingOverflow(&buf, p, result.Paging)
	}

	if result.Segmentation != nil {
		buf.WriteString("Segment map:\n")
		buf.WriteString(SegmentMap(result.Segmentation))
		buf.WriteString("\n")
		writeSegmentOverflow(&buf, p, result.Segmentation)
	}

	_, err := out.Write(buf.Bytes())
	return err
}

// FrameMap renders the frame table as a single row of cells, e.g. |P1|P1|P2|FREE|
func FrameMap(result *paging.Result) string {
	cells := make([]string, 0, result.FrameCount())
	for _, frame := range result.Frames {
		if frame.IsFree() {
			cells = append(cells, freeLabel)
			continue
		}
		cells = append(cells, processLabel(frame.Owner))
	}
	return joinCells(cells)
}

// SegmentMap renders the segment table as a single row of cells, e.g. |P1:S1 [0,100)|FREE [100,600)|
func SegmentMap(table *segmentation.Table) string {
	cells := make([]string, 0, len(table.Segments)+1)
	for _, segment := range table.Segments {
		cells = append(cells, fmt.Sprintf("%s:S%d [%d,%d)", processLabel(segment.Process), segment.Segment, segment.Base, segment.End()))
	}
	if table.FreeBlock != nil {
		cells = append(cells, fmt.Sprintf("%s [%d,%d)", freeLabel, table.FreeBlock.Base, table.FreeBlock.Base+table.FreeBlock.Size))
	}
	return joinCells(cells)
}

func joinCells(cells []string) string {
	if len(cells) == 0 {
		return "||"
	}
	return "|" + strings.Join(cells, "|") + "|"
}
