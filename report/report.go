// Package report renders simulation results for people and for other programs
package report

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsim/config"
	"github.com/vkngwrapper/memsim/simulation"
)

// Write renders result to out in the requested format
func Write(out io.Writer, result *simulation.Result, format config.Format) error {
	if result == nil {
		return errors.New("no result to report")
	}

	switch format {
	case config.FormatJSON:
		return WriteJSON(out, result)
	case config.FormatMap:
		return WriteMap(out, result)
	case config.FormatTable, "":
		return WriteTable(out, result)
	default:
		return errors.Newf("unknown format %q", format)
	}
}
