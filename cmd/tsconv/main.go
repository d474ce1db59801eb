// Command tsconv drives the phase runtime for a set of libraries rooted
// at a node_modules-style directory and prints a report. It deliberately
// contains none of the core algorithms -- it is a thin host over
// internal/runtime + internal/report, the same role the teacher's cmd/
// package plays over internal/pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsdecl/tsconv/internal/config"
	"github.com/tsdecl/tsconv/internal/dtsparse"
	"github.com/tsdecl/tsconv/internal/fsio"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/logging"
	"github.com/tsdecl/tsconv/internal/phase"
	"github.com/tsdecl/tsconv/internal/report"
	"github.com/tsdecl/tsconv/internal/resolver"
	"github.com/tsdecl/tsconv/internal/runtime"
	"github.com/tsdecl/tsconv/internal/transform"
)

var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "tsconv",
	Short:   "Convert TypeScript declaration files into the phase-1 AST pipeline's output",
	Long:    "tsconv resolves one or more npm libraries from a node_modules tree, runs\neach through the twenty-step declaration-file transform pipeline, and\nreports the result.",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.SilenceErrors = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	configPath   string
	pedantic     bool
	jsonOutput   bool
	reportChart  string
	traceLibrary string
)

var convertCmd = &cobra.Command{
	Use:   "convert <node_modules-dir> <library> [library...]",
	Short: "Resolve and convert one or more libraries",
	Args:  cobra.MinimumNArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("cannot resolve path: %w", err)
		}
		if err := validateNodeModulesRoot(root); err != nil {
			return err
		}

		projectCfg, err := config.Load(root, configPath)
		if err != nil {
			return fmt.Errorf("load project config: %w", err)
		}
		if pedantic {
			projectCfg.Pedantic = true
		}

		logger := logging.New(cmd.ErrOrStderr(), verbose)

		wanted := make([]ident.LibraryName, len(args)-1)
		for i, name := range args[1:] {
			wanted[i] = ident.ParseLibraryName(name)
		}

		ignored := map[string]bool{}
		for _, lib := range projectCfg.Ignore {
			ignored[lib] = true
		}

		boot, err := resolver.FromNodeModules(root, resolver.Options{
			StdlibFiles: projectCfg.StdlibFiles,
			IgnoredLibs: ignored,
			Logger:      logger,
		}, wanted)
		if err != nil {
			return fmt.Errorf("bootstrap node_modules: %w", err)
		}

		parser, err := dtsparse.New()
		if err != nil {
			return fmt.Errorf("init parser: %w", err)
		}
		defer parser.Close()

		driver := &phase.Driver{
			Parser:          parser.Parse,
			Walk:            fsio.Walk,
			Logger:          logger,
			Pedantic:        projectCfg.Pedantic,
			IgnoredLibs:     ignored,
			IgnoredPrefixes: projectCfg.IgnorePrefixes,
			IsReact:         func(name ident.LibraryName) bool { return projectCfg.IsReact(name.String()) },
			TraceLib:        traceLibrary,
		}

		rt := runtime.New(driver, boot)
		libs, failures := rt.RunAll(wanted)

		var passCounts []transform.PassCount
		if traceLibrary != "" {
			if lib, ok := libs[ident.ParseLibraryName(traceLibrary)]; ok && lib != nil {
				passCounts = lib.PassCounts
			}
		}

		summary := report.Build(libs, failures, passCounts)

		if jsonOutput {
			if err := report.RenderJSON(cmd.OutOrStdout(), report.BuildJSONReport(summary)); err != nil {
				return fmt.Errorf("render JSON report: %w", err)
			}
		} else {
			report.RenderTerminal(cmd.OutOrStdout(), summary, verbose)
		}

		if reportChart != "" {
			svg, err := report.RenderPassChart(summary.PassCounts)
			if err != nil {
				return fmt.Errorf("render pass chart: %w", err)
			}
			if svg != "" {
				if err := os.WriteFile(reportChart, []byte(svg), 0644); err != nil {
					return fmt.Errorf("write pass chart: %w", err)
				}
			}
		}

		if len(failures) > 0 {
			return fmt.Errorf("%d librar%s failed to convert", len(failures), plural(len(failures)))
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&configPath, "config", "", "path to .tsconvrc.yml project config file")
	convertCmd.Flags().BoolVar(&pedantic, "pedantic", false, "enable pedantic mode (passed to each library's scopes; no diagnostic is made fatal)")
	convertCmd.Flags().BoolVar(&jsonOutput, "json", false, "output the report as JSON")
	convertCmd.Flags().StringVar(&reportChart, "report", "", "write an SVG bar chart of declaration counts per pipeline pass to this path")
	convertCmd.Flags().StringVar(&traceLibrary, "trace-library", "", "enable pipeline pass tracing for this library, feeding --report")
	rootCmd.AddCommand(convertCmd)
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// validateNodeModulesRoot checks that root exists, is a directory, and
// contains a node_modules tree to resolve libraries from.
func validateNodeModulesRoot(root string) error {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory not found: %s", root)
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}
	if _, err := os.Stat(filepath.Join(root, "node_modules")); err != nil {
		return fmt.Errorf("no node_modules found under: %s", root)
	}
	return nil
}
