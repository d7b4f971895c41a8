// Package build is a subcommand of the root command. It turns a diagnostic dump into a report.
package build

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"serverreport/internal/alert"
	"serverreport/internal/common"
	"serverreport/internal/config"
	"serverreport/internal/dump"
	"serverreport/internal/inventory"
	"serverreport/internal/layout"
	"serverreport/internal/progress"
	"serverreport/internal/report"
	"serverreport/internal/util"
	"serverreport/internal/workflow"
)

const cmdName = "build"

var examples = []string{
	fmt.Sprintf("  Report from servers_info.txt:       $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Report in every format:             $ %s %s --input dump.txt --format all", common.AppName, cmdName),
	fmt.Sprintf("  Highlight nearly full filesystems:  $ %s %s --disk-alert \"use_percent >= 90\"", common.AppName, cmdName),
	fmt.Sprintf("  Add servers missing from the dump:  $ %s %s --inventory servers.yaml", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Build a linked report from a multi-server diagnostic dump",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// flag vars
var (
	flagInput        string
	flagOutput       string
	flagFormat       []string
	flagSummarySheet string
	flagDuplicates   string
	flagDiskAlert    string
	flagInventory    string
	flagMetricsFile  string
	flagProgress     bool
)

// flag names
const (
	flagInputName        = "input"
	flagOutputName       = "output"
	flagFormatName       = "format"
	flagSummarySheetName = "summary-sheet"
	flagDuplicatesName   = "duplicates"
	flagDiskAlertName    = "disk-alert"
	flagInventoryName    = "inventory"
	flagMetricsFileName  = "metrics-file"
	flagProgressName     = "progress"
)

func init() {
	Cmd.Flags().StringVar(&flagInput, flagInputName, "servers_info.txt", "")
	Cmd.Flags().StringVar(&flagOutput, flagOutputName, "server-report.xlsx", "")
	Cmd.Flags().StringSliceVar(&flagFormat, flagFormatName, []string{report.FormatXlsx}, "")
	Cmd.Flags().StringVar(&flagSummarySheet, flagSummarySheetName, layout.DefaultSummaryName, "")
	Cmd.Flags().StringVar(&flagDuplicates, flagDuplicatesName, string(layout.DuplicateSuffix), "")
	Cmd.Flags().StringVar(&flagDiskAlert, flagDiskAlertName, "", "")
	Cmd.Flags().StringVar(&flagInventory, flagInventoryName, "", "")
	Cmd.Flags().StringVar(&flagMetricsFile, flagMetricsFileName, "", "")
	Cmd.Flags().BoolVar(&flagProgress, flagProgressName, true, "")

	// config file keys use underscores, flags use dashes
	Cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	Cmd.SetUsageFunc(usageFunc)
}

func usageFunc(cmd *cobra.Command) error {
	cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
	cmd.Printf("Examples:\n%s\n\n", cmd.Example)
	cmd.Println("Flags:")
	for _, group := range getFlagGroups() {
		cmd.Printf("  %s:\n", group.GroupName)
		for _, flag := range group.Flags {
			flagDefault := ""
			if cmd.Flags().Lookup(flag.Name).DefValue != "" {
				flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
			}
			cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
		}
	}
	cmd.Println("\nGlobal Flags:")
	cmd.Parent().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
		flagDefault := ""
		if cmd.Parent().PersistentFlags().Lookup(pf.Name).DefValue != "" {
			flagDefault = fmt.Sprintf(" (default: %s)", cmd.Parent().PersistentFlags().Lookup(pf.Name).DefValue)
		}
		cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
	})
	return nil
}

func getFlagGroups() []common.FlagGroup {
	var groups []common.FlagGroup
	groups = append(groups, common.FlagGroup{
		GroupName: "Input",
		Flags: []common.Flag{
			{Name: flagInputName, Help: "diagnostic dump with one \"=== Server: <id> ===\" block per server"},
			{Name: flagInventoryName, Help: "YAML file listing servers to add when they are missing from the dump"},
		},
	})
	groups = append(groups, common.FlagGroup{
		GroupName: "Output",
		Flags: []common.Flag{
			{Name: flagOutputName, Help: "report file, its extension is replaced per format"},
			{Name: flagFormatName, Help: fmt.Sprintf("choose output format(s) from: %s", strings.Join(append([]string{report.FormatAll}, report.FormatOptions...), ", "))},
			{Name: flagSummarySheetName, Help: "name of the page that lists and links every server"},
			{Name: flagDuplicatesName, Help: fmt.Sprintf("what to do when two servers share a page name: %s", strings.Join(layout.DuplicatePolicies, ", "))},
		},
	})
	groups = append(groups, common.FlagGroup{
		GroupName: "Other Options",
		Flags: []common.Flag{
			{Name: flagDiskAlertName, Help: fmt.Sprintf("expression that highlights disk rows, variables: %s", strings.Join(alert.Variables, ", "))},
			{Name: flagMetricsFileName, Help: "write run diagnostics to this file in Prometheus text format"},
			{Name: flagProgressName, Help: "show per-server progress on stderr"},
		},
	})
	return groups
}

func validateFlags(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// validateConfig checks the settings that can come from flags, the environment or a config file
func validateConfig(cfg *config.Config) error {
	if cfg.Input == "" {
		return fmt.Errorf("--%s is required", flagInputName)
	}
	if cfg.Output == "" {
		return fmt.Errorf("--%s is required", flagOutputName)
	}
	if len(cfg.Format) == 0 {
		return fmt.Errorf("at least one --%s is required", flagFormatName)
	}
	formatOptions := append([]string{report.FormatAll}, report.FormatOptions...)
	for _, format := range cfg.Format {
		if !slices.Contains(formatOptions, format) {
			return fmt.Errorf("format options are: %s", strings.Join(formatOptions, ", "))
		}
	}
	if !slices.Contains(layout.DuplicatePolicies, cfg.Duplicates) {
		return fmt.Errorf("duplicates options are: %s", strings.Join(layout.DuplicatePolicies, ", "))
	}
	if cfg.SummarySheet != "" && layout.SanitizePageName(cfg.SummarySheet) != cfg.SummarySheet {
		return fmt.Errorf("summary sheet name %q contains characters not allowed in a sheet name or is too long", cfg.SummarySheet)
	}
	if cfg.DiskAlert != "" {
		if _, err := alert.Compile(cfg.DiskAlert); err != nil {
			return err
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := cmd.Parent().Context().Value(common.AppContext{}).(common.AppContext)
	slog.Debug("build started", slog.String("timestamp", appContext.Timestamp), slog.String("config", appContext.ConfigFile))
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	var statusOut io.Writer
	if cfg.Progress {
		statusOut = os.Stderr
	}
	o, err := buildReports(cfg, statusOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	printOutcome(os.Stdout, o)
	if appContext.LogFilePath != "" {
		fmt.Printf("Log file:\n  %s\n", appContext.LogFilePath)
	}
	return nil
}

// outcome summarizes a completed run
type outcome struct {
	Servers      int
	Placeholders int
	Alerts       int
	Dropped      int
	ReportFiles  []string
	MetricsFile  string
}

// buildReports runs the whole pipeline. Nothing is written unless every requested
// format rendered successfully.
func buildReports(cfg *config.Config, statusOut io.Writer) (outcome, error) {
	text, err := util.ReadInput(cfg.Input)
	if err != nil {
		return outcome{}, err
	}
	var servers []inventory.Server
	if cfg.Inventory != "" {
		servers, err = inventory.Load(cfg.Inventory)
		if err != nil {
			return outcome{}, err
		}
	}
	var rule *alert.Rule
	if cfg.DiskAlert != "" {
		rule, err = alert.Compile(cfg.DiskAlert)
		if err != nil {
			return outcome{}, err
		}
	}
	opts := workflow.Options{
		SummaryName: cfg.SummarySheet,
		Duplicates:  layout.DuplicatePolicy(cfg.Duplicates),
		DiskAlert:   rule,
		Inventory:   servers,
	}
	var statusLine *progress.StatusLine
	if statusOut != nil {
		statusLine = progress.NewStatusLine(statusOut, len(dump.SplitBlocks(text))+len(servers))
		opts.StatusUpdate = statusLine.Status
	}
	result, err := workflow.BuildPlan(text, opts)
	if statusLine != nil {
		statusLine.Finish()
	}
	if err != nil {
		return outcome{}, err
	}

	files := make(map[string][]byte)
	var reportFiles []string
	for _, format := range report.ExpandFormats(cfg.Format) {
		out, err := report.Create(format, result.Plan)
		if err != nil {
			return outcome{}, fmt.Errorf("failed to create %s report: %w", format, err)
		}
		path, err := util.AbsPath(util.ReplaceExtension(cfg.Output, format))
		if err != nil {
			return outcome{}, err
		}
		files[path] = out
		reportFiles = append(reportFiles, path)
		slog.Debug("rendered report", slog.String("format", format), slog.Int("bytes", len(out)))
	}
	if err := util.WriteFiles(files); err != nil {
		return outcome{}, err
	}
	result.Diagnostics.Log()

	o := outcome{ReportFiles: reportFiles}
	for _, r := range result.Reports {
		if r.Manual {
			o.Placeholders++
		} else {
			o.Servers++
		}
		o.Dropped += r.Diagnostics.TotalDropped()
	}
	for _, page := range result.Plan.Pages {
		for _, band := range page.Bands {
			o.Alerts += len(band.AlertRows)
		}
	}
	if cfg.MetricsFile != "" {
		path, err := util.AbsPath(cfg.MetricsFile)
		if err != nil {
			return outcome{}, err
		}
		if err := result.Diagnostics.WriteTextfile(path); err != nil {
			return outcome{}, err
		}
		o.MetricsFile = path
	}
	return o, nil
}

func printOutcome(w io.Writer, o outcome) {
	p := message.NewPrinter(language.English) // commas at thousands, e.g., 1,024 servers
	p.Fprintf(w, "Servers: %d from dump, %d from inventory\n", o.Servers, o.Placeholders)
	if o.Dropped > 0 {
		p.Fprintf(w, "Lines skipped: %d (see log for details)\n", o.Dropped)
	}
	if o.Alerts > 0 {
		p.Fprintf(w, "Disk rows highlighted: %d\n", o.Alerts)
	}
	if len(o.ReportFiles) > 0 {
		fmt.Fprintln(w, "Report files:")
	}
	for _, path := range o.ReportFiles {
		fmt.Fprintf(w, "  %s\n", path)
	}
	if o.MetricsFile != "" {
		fmt.Fprintf(w, "Metrics file:\n  %s\n", o.MetricsFile)
	}
}
