package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
	"github.com/arnavshah/freewindow-api-go/pkg/config"
	"github.com/arnavshah/freewindow-api-go/pkg/ingest"
	"github.com/arnavshah/freewindow-api-go/pkg/logger"
	"github.com/arnavshah/freewindow-api-go/pkg/models"
	"github.com/arnavshah/freewindow-api-go/pkg/report"
)

type findOptions struct {
	start  int
	end    int
	step   float64
	days   string
	people string
	sheet  string
	format string
}

func newFindCmd() *cobra.Command {
	opts := &findOptions{}
	cmd := &cobra.Command{
		Use:   "find <timetable.csv|timetable.xlsx>",
		Short: "Print common free windows per day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.start, "start", 8, "working window start hour (0-23)")
	f.IntVar(&opts.end, "end", 18, "working window end hour (1-24)")
	f.Float64Var(&opts.step, "step", float64(availability.DefaultStep), "partial scan step in hours")
	f.StringVar(&opts.days, "days", "", "comma separated day labels (default Monday-Friday or $DAYS)")
	f.StringVar(&opts.people, "people", "", "comma separated people to count even without records")
	f.StringVar(&opts.sheet, "sheet", "", "xlsx sheet name (default first sheet)")
	f.StringVar(&opts.format, "format", "text", "output format: text, csv or json")
	return cmd
}

func runFind(cmd *cobra.Command, opts *findOptions, path string) error {
	log := logger.NewWithWriter("cli", cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	window := cfg.Window
	if cmd.Flags().Changed("start") || cmd.Flags().Changed("end") {
		start, end := int(window.Start), int(window.End)
		if cmd.Flags().Changed("start") {
			start = opts.start
		}
		if cmd.Flags().Changed("end") {
			end = opts.end
		}
		if window, err = availability.NewWindow(start, end); err != nil {
			return err
		}
	}
	step := cfg.Step
	if cmd.Flags().Changed("step") {
		step = availability.Hour(opts.step)
	}
	days := cfg.Days
	if opts.days != "" {
		days = config.ParseDays(opts.days)
	}

	engine, err := availability.NewEngine(window, availability.WithStep(step), availability.WithLogger(log))
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := ingest.Read(filepath.Base(path), file, opts.sheet)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	busy, warnings := ingest.Resolve(rows)
	for _, w := range warnings {
		log.Warn().Str("code", w.Code).Int("row", w.Row).Str("person", w.Person).Msg(w.Detail)
	}

	var people []string
	for _, p := range strings.Split(opts.people, ",") {
		if p = strings.TrimSpace(p); p != "" {
			people = append(people, p)
		}
	}
	if len(busy) == 0 && len(people) == 0 {
		return fmt.Errorf("%s: %w", path, ingest.ErrEmptyInput)
	}

	res, err := engine.Compute(availability.Input{Days: days, Participants: people, Records: busy})
	if err != nil {
		return err
	}
	res.Warnings = append(warnings, res.Warnings...)

	out := cmd.OutOrStdout()
	switch opts.format {
	case "text":
		return report.Text(out, res)
	case "csv":
		return report.CSV(out, res)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.NewAvailabilityResponse(uuid.NewString(), res, false))
	}
	return fmt.Errorf("unknown format %q", opts.format)
}
