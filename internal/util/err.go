package util

import "github.com/spf13/cobra"

func CheckError(err error) {
	// Delegate to Cobra, which prints "Error: ..." and exits 1
	cobra.CheckErr(err)
}
