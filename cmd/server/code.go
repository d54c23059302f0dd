package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
)

func newCodeCommand() *cobra.Command {
	var (
		length int
		count  int
	)

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Generate design codes",
		Long:  "Prints design codes using the configured random source. --length 0 prints the bare prefix.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := stateFrom(cmd.Context())
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			if !cmd.Flags().Changed("length") {
				length = st.cfg.Code.Length
			}

			src, err := designcode.SelectSource(st.cfg.Code.Source, nil)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), designcode.Generate(src, length))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 0, "Total code length including the W prefix (default from config)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of codes to print")

	return cmd
}
