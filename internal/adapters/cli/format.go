package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// stdout is swapped in tests
var stdout io.Writer = os.Stdout

func newTable(header ...string) *tablewriter.Table {
	return tablewriter.NewTable(stdout, tablewriter.WithHeader(header))
}

func printTitle(format string, args ...interface{}) {
	titleColor.Fprintf(stdout, format+"\n", args...)
}

func printSuccess(format string, args ...interface{}) {
	successColor.Fprintf(stdout, "✓ "+format+"\n", args...)
}

// printEvents writes production notices, coloured by severity
func printEvents(events []production.Event) {
	for _, e := range events {
		c := eventColor(e.Type)
		prefix := ""
		if e.Hour > 0 {
			prefix = dimColor.Sprintf("[h%d] ", e.Hour)
		}
		fmt.Fprintln(stdout, prefix+c.Sprint(e.Message()))
	}
}

func eventColor(t production.EventType) *color.Color {
	switch t {
	case production.EventBlockedCredits, production.EventBlockedSpace, production.EventUnresolved:
		return warnColor
	case production.EventInvariantBroken:
		return errorColor
	case production.EventFinished:
		return successColor
	case production.EventUnitCompleted:
		return dimColor
	}
	return color.New(color.Reset)
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// formatHour renders a campaign hour as day and hour of day
func formatHour(hour int64) string {
	return fmt.Sprintf("day %d, %02d:00", hour/24+1, hour%24)
}
