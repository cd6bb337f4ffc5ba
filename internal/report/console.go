package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// Box-drawing Unicode characters
const (
	boxHorizontal    = "─"
	boxVertical      = "│"
	boxTopLeft       = "┌"
	boxTopRight      = "┐"
	boxBottomLeft    = "└"
	boxBottomRight   = "┘"
	boxVerticalRight = "├"
	boxVerticalLeft  = "┤"
)

// ConsoleFormatter formats reports for console output.
type ConsoleFormatter struct {
	writer     io.Writer
	noColor    bool
	reportPath string
}

// NewConsoleFormatter creates a new console formatter.
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{
		writer:  os.Stdout,
		noColor: os.Getenv("NO_COLOR") != "",
	}
}

// WithWriter sets a custom writer (useful for testing).
func (cf *ConsoleFormatter) WithWriter(w io.Writer) *ConsoleFormatter {
	cf.writer = w
	return cf
}

// WithReportPath sets the path the full JSON report was written to.
func (cf *ConsoleFormatter) WithReportPath(path string) *ConsoleFormatter {
	cf.reportPath = path
	return cf
}

// WithNoColor disables color output.
func (cf *ConsoleFormatter) WithNoColor(noColor bool) *ConsoleFormatter {
	cf.noColor = noColor
	return cf
}

const reportWidth = 70

// PrintSummary prints a formatted summary of the report.
func (cf *ConsoleFormatter) PrintSummary(report *Report) {
	if report == nil {
		return
	}

	cf.printHeader(report)
	cf.printLifecycleSection(report)
	cf.printStatsTable(report)
	cf.printFooter()
}

func (cf *ConsoleFormatter) printHeader(report *Report) {
	cf.println(cf.boxLine(boxTopLeft, boxHorizontal, boxTopRight, reportWidth))

	title := " nsfxsim - Simulation Results "
	cf.println(cf.boxRow(cf.bold(cf.cyan(title)), reportWidth))

	cf.println(cf.boxLine(boxVerticalRight, boxHorizontal, boxVerticalLeft, reportWidth))

	cf.println(cf.boxRow(fmt.Sprintf("  Scenario: %s    Scheduler: %s",
		cf.bold(report.RunInfo.Scenario),
		cf.bold(report.RunInfo.SchedulerImpl)), reportWidth))

	cf.println(cf.boxRow(fmt.Sprintf("  Tick resolution: %s    Wall clock: %s",
		report.RunInfo.TickResolutionLabel,
		formatDuration(report.RunInfo.Elapsed)), reportWidth))
}

func (cf *ConsoleFormatter) printLifecycleSection(report *Report) {
	cf.println(cf.boxLine(boxVerticalRight, boxHorizontal, boxVerticalLeft, reportWidth))
	cf.println(cf.boxRow(cf.bold("  Summary"), reportWidth))
	cf.println(cf.boxRow("", reportWidth))

	cf.println(cf.boxRow(fmt.Sprintf("  Events fired:   %s",
		cf.bold(formatNumber(report.Counts.Fired))), reportWidth))
	cf.println(cf.boxRow(fmt.Sprintf("  Begin/Run/Pause/End: %d / %d / %d / %d",
		report.Counts.Begin, report.Counts.Run, report.Counts.Pause, report.Counts.End), reportWidth))
}

func (cf *ConsoleFormatter) printStatsTable(report *Report) {
	cf.println(cf.boxLine(boxVerticalRight, boxHorizontal, boxVerticalLeft, reportWidth))
	cf.println(cf.boxRow(cf.bold("  Distribution (ticks)"), reportWidth))
	cf.println(cf.boxRow("", reportWidth))

	header := fmt.Sprintf("  %-16s %10s %10s %10s %10s %10s",
		"Metric", "Mean", "p50", "p95", "p99", "Max")
	cf.println(cf.boxRow(cf.dim(header), reportWidth))
	cf.println(cf.boxRow("  "+strings.Repeat("─", 64), reportWidth))

	cf.printStatsRow("Inter-event gap", report.Gap)
	cf.printStatsRow("Queue depth", report.Depth)
}

func (cf *ConsoleFormatter) printStatsRow(label string, s Stats) {
	row := fmt.Sprintf("  %-16s %10s %10s %10s %10s %10s",
		label,
		formatNumber(s.Mean),
		formatNumber(s.P50),
		formatNumber(s.P95),
		formatNumber(s.P99),
		formatNumber(s.Max))
	cf.println(cf.boxRow(row, reportWidth))
}

func (cf *ConsoleFormatter) printFooter() {
	cf.println(cf.boxLine(boxVerticalRight, boxHorizontal, boxVerticalLeft, reportWidth))

	if cf.reportPath != "" {
		cf.println(cf.boxRow(fmt.Sprintf("  Full report: %s", cf.dim(cf.reportPath)), reportWidth))
	}

	cf.println(cf.boxRow(fmt.Sprintf("  Generated: %s",
		cf.dim(time.Now().Format("2006-01-02 15:04:05"))), reportWidth))

	cf.println(cf.boxLine(boxBottomLeft, boxHorizontal, boxBottomRight, reportWidth))
}

// Helper methods for box drawing

func (cf *ConsoleFormatter) boxLine(left, fill, right string, width int) string {
	return left + strings.Repeat(fill, width-2) + right
}

func (cf *ConsoleFormatter) boxRow(content string, width int) string {
	visibleLen := cf.visibleLength(content)
	padding := width - 2 - visibleLen
	if padding < 0 {
		padding = 0
	}
	return boxVertical + content + strings.Repeat(" ", padding) + boxVertical
}

func (cf *ConsoleFormatter) visibleLength(s string) int {
	inEscape := false
	length := 0
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		length++
	}
	return length
}

// Color helper methods

func (cf *ConsoleFormatter) colorize(s string, color string) string {
	if cf.noColor {
		return s
	}
	return color + s + colorReset
}

func (cf *ConsoleFormatter) bold(s string) string { return cf.colorize(s, colorBold) }
func (cf *ConsoleFormatter) dim(s string) string  { return cf.colorize(s, colorDim) }
func (cf *ConsoleFormatter) cyan(s string) string { return cf.colorize(s, colorCyan) }

func (cf *ConsoleFormatter) println(s string) {
	fmt.Fprintln(cf.writer, s)
}

// Formatting helper functions

// formatNumber formats an integer with thousands separators.
// Example: 45230 -> "45,230"
func formatNumber[T int | int64](n T) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}

	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
		if len(str) > remainder {
			result.WriteString(",")
		}
	}

	for i := remainder; i < len(str); i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(str[i : i+3])
	}

	return result.String()
}

// formatDuration formats a duration in a human-readable way.
// Example: 5m0s, 1h30m, 2h0m0s -> "2h"
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Millisecond).String()
	}

	d = d.Round(time.Second)

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		if minutes == 0 && seconds == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		if seconds == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}
