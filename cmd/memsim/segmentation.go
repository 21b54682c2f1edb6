package main

import (
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/memsim/simulation"
)

func init() {
	rootCmd.AddCommand(newSegmentationCmd())
}

func newSegmentationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segmentation",
		Short: "Run only the segmentation allocator",
		Long: `The segmentation command places every segment directly after the previous one,
starting at address 0, and stops at the first segment that does not fit.

The full request is still validated, so process sizes and a page size are required.

Example:
  memsim segmentation -m 600 -n 3 -s 300,150,380 -p 100 --segments "100,200;150;300,80"`,
		Aliases: []string{"seg"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(simulation.ModeSegmentation)
		},
	}
	return cmd
}
