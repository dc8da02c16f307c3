package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/gregohare/finout-top-costs/internal/shared/types"
)

// Console is an implementation of the ConsoleInterface.
type Console struct{}

// NewConsole creates a new Console.
func NewConsole() *Console {
	return &Console{}
}

// Print prints to the console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf prints a formatted string to the console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println prints to the console with a newline.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo logs an info message.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning logs a warning message.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError logs an error message.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess logs a success message.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Predefined colors for consistent use
var (
	BrightGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed    = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// statusHandle is an implementation of the StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status creates a status spinner with the given message.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update updates the status message.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop stops the status spinner.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

const shareBarWidth = 30

// DisplayTopCosts renders the ranked cost rows as a table with share bars,
// boxed the same way the payload is meant to be read: biggest first.
func (c *Console) DisplayTopCosts(lines []types.TopCostLine, source string) {
	if len(lines) == 0 {
		return
	}

	tableData := [][]string{
		{"Service", "Amount (USD)", "Share", "% of Total"},
	}

	for _, line := range lines {
		filled := int(line.Percent / 100 * shareBarWidth)
		if filled > shareBarWidth {
			filled = shareBarWidth
		}
		if filled < 0 {
			filled = 0
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", shareBarWidth-filled)

		barColor := pterm.FgBlue.Sprint(bar)
		percent := fmt.Sprintf("%.1f%%", line.Percent)
		if line.Percent >= 50 {
			barColor = pterm.FgRed.Sprint(bar)
			percent = pterm.FgRed.Sprint(percent)
		} else if line.Percent >= 25 {
			barColor = pterm.FgYellow.Sprint(bar)
			percent = pterm.FgYellow.Sprint(percent)
		}

		tableData = append(tableData, []string{
			line.Label,
			fmt.Sprintf("$%.2f", line.Amount),
			barColor,
			percent,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Top Costs (%s)", source)).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
