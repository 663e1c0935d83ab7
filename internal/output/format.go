// Package output renders daily summaries and delivers them to destinations.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/crimson-sun/trailshift/internal/model"
)

// Format selects the report encoding.
type Format string

const (
	Table Format = "table"
	CSV   Format = "csv"
	JSON  Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{Table, CSV, JSON}

// ParseFormat validates a format name. The empty string selects Table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return Table, nil
	case Table, CSV, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, csv or json)", s)
	}
}

// Row is the rendered form of one DailySummary.
type Row struct {
	User          string `json:"user"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Duration      string `json:"duration"`
	ActivityCount int    `json:"activity_count"`
	FirstAction   string `json:"first_action"`
	LastAction    string `json:"last_action"`
	SourceIP      string `json:"source_ip"`
}

var header = []string{
	"User", "Date", "Start", "End", "Duration (h:m:s)",
	"Activities", "First Action", "Last Action", "IP Address",
}

func (r Row) fields() []string {
	return []string{
		r.User, r.Date, r.StartTime, r.EndTime, r.Duration,
		strconv.Itoa(r.ActivityCount), r.FirstAction, r.LastAction, r.SourceIP,
	}
}

// Rows converts summaries to rows ordered by user, then date.
func Rows(summaries []model.DailySummary) []Row {
	rows := make([]Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, Row{
			User:          s.Actor,
			Date:          s.Date,
			StartTime:     s.StartTime.UTC().Format("15:04:05"),
			EndTime:       s.EndTime.UTC().Format("15:04:05"),
			Duration:      FormatDuration(s.Duration),
			ActivityCount: s.ActivityCount,
			FirstAction:   s.FirstAction,
			LastAction:    s.LastAction,
			SourceIP:      s.SourceIPAddress,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].User != rows[j].User {
			return rows[i].User < rows[j].User
		}
		return rows[i].Date < rows[j].Date
	})
	return rows
}

// FormatDuration renders d as H:MM:SS, appending microseconds when present.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int64(d / time.Hour)
	m := int64(d%time.Hour) / int64(time.Minute)
	s := int64(d%time.Minute) / int64(time.Second)
	us := int64(d%time.Second) / int64(time.Microsecond)
	if us > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%06d", h, m, s, us)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Render encodes summaries in the given format. colorize only affects Table.
func Render(f Format, summaries []model.DailySummary, colorize bool) ([]byte, error) {
	rows := Rows(summaries)
	switch f {
	case CSV:
		return renderCSV(rows)
	case JSON:
		return renderJSON(rows)
	case Table, "":
		return renderTable(rows, colorize), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

// RenderNotice formats a notice line, in yellow when colorize is set.
func RenderNotice(msg string, colorize bool) []byte {
	c := color.New(color.FgYellow)
	if colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return []byte(c.Sprint(msg) + "\n")
}

func renderTable(rows []Row, colorize bool) []byte {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r.fields(), "\t"))
	}
	tw.Flush()

	if !colorize {
		return buf.Bytes()
	}
	// Color is applied after alignment so escape codes don't skew widths.
	out := buf.String()
	first, rest, _ := strings.Cut(out, "\n")
	c := color.New(color.Bold)
	c.EnableColor()
	return []byte(c.Sprint(strings.TrimRight(first, " ")) + "\n" + rest)
}

func renderCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.fields()); err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderJSON(rows []Row) ([]byte, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return append(data, '\n'), nil
}
