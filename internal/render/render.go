// Package render writes reports and statistics as a terminal table, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
	"github.com/Elpulgo/azdo-buildstats/internal/ui/styles"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates an output format name. Empty selects the table.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q, expected one of table, json, yaml", s)
}

const timeLayout = "2006-01-02 15:04"

// childPrefix marks an older run nested under its definition's latest run.
const childPrefix = "  └ "

// Renderer writes values to w in one format.
type Renderer struct {
	w      io.Writer
	format Format
	styles *styles.Styles
}

// New creates a Renderer. A nil styles uses the default theme.
func New(w io.Writer, format Format, st *styles.Styles) *Renderer {
	if st == nil {
		st = styles.DefaultStyles()
	}
	return &Renderer{w: w, format: format, styles: st}
}

// Report writes a build status report.
func (r *Renderer) Report(report buildstats.BuildStatusReport) error {
	if r.format != FormatTable {
		return r.encode(report)
	}
	if len(report.Projects) == 0 {
		_, err := fmt.Fprintln(r.w, r.styles.Muted.Render("No builds found."))
		return err
	}
	_, err := fmt.Fprintln(r.w, ReportTable(report, r.styles).Render())
	return err
}

// Stats writes failure statistics.
func (r *Renderer) Stats(stats buildstats.BuildStats) error {
	if r.format != FormatTable {
		return r.encode(stats)
	}
	t := r.keyValueTable([][]string{
		{"Total builds", strconv.Itoa(stats.TotalBuilds)},
		{"Project failures", strconv.Itoa(stats.TotalProjectFailures)},
		{"Build failures", strconv.Itoa(stats.TotalBuildFailures)},
	})
	_, err := fmt.Fprintln(r.w, t.Render())
	return err
}

// Downtime writes estimated downtime in minutes.
func (r *Renderer) Downtime(minutes int) error {
	if r.format != FormatTable {
		return r.encode(struct {
			DowntimeMinutes int `json:"downtimeMinutes" yaml:"downtimeMinutes"`
		}{minutes})
	}
	t := r.keyValueTable([][]string{{"Downtime", FormatMinutes(minutes)}})
	_, err := fmt.Fprintln(r.w, t.Render())
	return err
}

// Snapshot writes a full snapshot: report, stats and downtime.
func (r *Renderer) Snapshot(s buildstats.Snapshot) error {
	if r.format != FormatTable {
		return r.encode(s)
	}
	if err := r.Report(s.Report); err != nil {
		return err
	}
	t := r.keyValueTable([][]string{
		{"Total builds", strconv.Itoa(s.Stats.TotalBuilds)},
		{"Project failures", strconv.Itoa(s.Stats.TotalProjectFailures)},
		{"Build failures", strconv.Itoa(s.Stats.TotalBuildFailures)},
		{"Downtime", FormatMinutes(s.DowntimeMinutes)},
	})
	_, err := fmt.Fprintln(r.w, t.Render())
	return err
}

func (r *Renderer) encode(v interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", r.format)
}

func (r *Renderer) keyValueTable(rows [][]string) *table.Table {
	st := r.styles
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return st.Label.Padding(0, 1)
			}
			return st.TableCell
		})
}

// ReportHeaders are the column titles of the report table.
var ReportHeaders = []string{"Definition", "Project", "Status", "Finished", "Duration"}

// ReportRows flattens a report into table rows. Older runs follow their
// definition's latest run and are prefixed to show the nesting.
func ReportRows(report buildstats.BuildStatusReport) [][]string {
	var rows [][]string
	for _, p := range report.Projects {
		rows = append(rows, runRow(p.Run, ""))
		for _, child := range p.Runs {
			rows = append(rows, runRow(child, childPrefix))
		}
	}
	return rows
}

func runRow(run buildstats.Run, prefix string) []string {
	return []string{
		prefix + run.DefinitionName,
		run.ProjectName,
		run.Status.String(),
		FormatTime(run.FinishTime),
		run.Duration(),
	}
}

// ReportTable builds the lipgloss table for a report, coloring the status column.
func ReportTable(report buildstats.BuildStatusReport, st *styles.Styles) *table.Table {
	rows := ReportRows(report)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers(ReportHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.TableHeader
			}
			if col == 2 && row >= 0 && row < len(rows) {
				status := buildstats.ParseStatus(rows[row][2])
				return st.ForStatus(status).Padding(0, 1)
			}
			if row >= 0 && row < len(rows) && strings.HasPrefix(rows[row][0], childPrefix) {
				return st.Muted.Padding(0, 1)
			}
			return st.TableCell
		})
}

// FormatTime formats a finish time in local time, "-" when unset.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// FormatMinutes formats a minute count as "1h 5m" or "42m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
