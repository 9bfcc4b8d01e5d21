package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/takedsl/take"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <template>...",
	Short: "Compile templates and report faults without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			src, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed++
				continue
			}
			if _, err := take.New(string(src)); err != nil {
				fmt.Fprintln(os.Stderr, describeCompileError(path, err))
				failed++
				continue
			}
			fmt.Printf("ok %s\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d templates failed", failed, len(args))
		}
		return nil
	},
}
