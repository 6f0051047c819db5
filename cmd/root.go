package cmd

import (
	"fmt"
	"os"

	"github.com/liamg/scandiff/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var debug bool
var versionRequested bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", debug, "Enable verbose logging")

	rootCmd.AddCommand(watchCmd, diffCmd, parseCmd)
}

var rootCmd = &cobra.Command{
	Use:   "scandiff",
	Short: "scandiff reports changes between consecutive port scans",
	Long:  `Runs a port scan on a schedule and logs hosts and ports which appear or disappear between nmap reports.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionRequested {
			fmt.Fprintf(cmd.OutOrStdout(), "scandiff %s\n", versionString())
			return nil
		}
		return cmd.Help()
	},
}

func versionString() string {
	v := version.Version
	if v == "" {
		v = "development version"
	}
	return v
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
