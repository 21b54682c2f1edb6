package main

import (
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/memsim/simulation"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run both paging and segmentation",
		Long: `The run command validates the request, places it with both allocators and
prints the frame table followed by the segment table.

Example:
  memsim run -m 1000 -n 2 -s 250,150 -p 100 --segments "100,200;150"
  memsim run --config request.yaml --format map
  memsim run --config request.yaml -m 2000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(simulation.ModeAll)
		},
	}
	return cmd
}
