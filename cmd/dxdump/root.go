package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagSkipDebug          bool
	flagSkipCode           bool
	flagSkipAnnotation     bool
	flagSkipFieldConstant  bool
	flagIgnoreReadExc      bool
	flagKeepAllMethods     bool
	flagVerbose            bool
	log                    = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "dxdump",
	Short: "Inspect Dalvik executable (.dex) containers and multidex archives",
	Long: `dxdump walks the class/method/field structure of a .dex file (or an
archive of them, such as an APK) and reports what it finds without ever
disassembling into a higher-level IR.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagSkipDebug, "skip-debug", false, "don't walk debug_info_item")
	pf.BoolVar(&flagSkipCode, "skip-code", false, "don't walk code_item bodies")
	pf.BoolVar(&flagSkipAnnotation, "skip-annotation", false, "don't walk annotations_directory_item")
	pf.BoolVar(&flagSkipFieldConstant, "skip-field-constant", false, "don't resolve static field initial values")
	pf.BoolVar(&flagIgnoreReadExc, "ignore-read-exception", false, "keep going past a broken class instead of aborting")
	pf.BoolVar(&flagKeepAllMethods, "keep-all-methods", false, "keep duplicate method_idx entries instead of dropping them")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log warnings as they're recorded")

	rootCmd.AddCommand(dumpCmd, countsCmd, cfgCmd, callgraphCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
