package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/accelerate/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every collection document against its schema",
	Long:  "Reads each collection document and reports whether it loads, is missing, or would be discarded as invalid. Nothing is written.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	reports := app.store.Check()
	app.printer.PrintCheck(reports)

	invalid := 0
	for _, r := range reports {
		if r.Status == store.LoadInvalid {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d collection document(s) failed validation", invalid)
	}
	return nil
}
