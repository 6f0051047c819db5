package cmd

import (
	"fmt"

	"github.com/liamg/scandiff/scan"
	"github.com/spf13/cobra"
)

var parseFirstMatch bool

func init() {
	parseCmd.Flags().BoolVar(&parseFirstMatch, "first-match", parseFirstMatch, "Only take the first open port after each report line (legacy matching)")
}

var parseCmd = &cobra.Command{
	Use:   "parse REPORT",
	Short: "Print the open ports found in an nmap report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := scan.NewParser(newMatcher(parseFirstMatch)).ParseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), snapshot.String())
		return nil
	},
}
