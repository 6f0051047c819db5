package cmd

import (
	"fmt"

	"github.com/liamg/scandiff/scan"
	"github.com/spf13/cobra"
)

var diffFirstMatch bool
var diffResolveHosts bool

func init() {
	diffCmd.Flags().BoolVar(&diffFirstMatch, "first-match", diffFirstMatch, "Only take the first open port after each report line (legacy matching)")
	diffCmd.Flags().BoolVar(&diffResolveHosts, "resolve-hosts", diffResolveHosts, "Annotate hosts with MAC address and vendor from the local ARP cache")
}

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Compare two nmap reports once",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {

		parser := scan.NewParser(newMatcher(diffFirstMatch))

		older, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		newer, err := parser.ParseFile(args[1])
		if err != nil {
			return err
		}

		changes := scan.Diff(older, newer)
		describer := newDescriber(diffResolveHosts)

		out := cmd.OutOrStdout()
		if len(changes) == 0 {
			fmt.Fprintln(out, "No changes")
			return nil
		}
		for _, change := range changes {
			fmt.Fprintln(out, change.Format(describer))
		}
		fmt.Fprintf(out, "\n%s\n", scan.Summarize(changes))
		return nil
	},
}
