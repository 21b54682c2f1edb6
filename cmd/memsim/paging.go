package main

import (
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/memsim/simulation"
)

func init() {
	rootCmd.AddCommand(newPagingCmd())
}

func newPagingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paging",
		Short: "Run only the paging allocator",
		Long: `The paging command divides memory into frames of --page-size bytes and hands
them to each process in order, stopping at the first process that runs out of frames.

Example:
  memsim paging -m 1000 -n 2 -s 250,150 -p 100
  memsim paging -m 500 -n 1 -s 650 -p 100 --format map`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(simulation.ModePaging)
		},
	}
	return cmd
}
