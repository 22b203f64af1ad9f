// Package output renders console feedback for the CLI.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
)

var Symbols = map[string]string{
	"pass":    "✓",
	"fail":    "✗",
	"warning": "!",
	"info":    "ℹ",
	"arrow":   "→",
	"bullet":  "•",
	"hline":   "━",
}

func PrintSuccess(text string) {
	fmt.Println(successStyle.Render(Symbols["pass"] + " " + text))
}

func PrintError(text string) {
	fmt.Println(errorStyle.Render(Symbols["fail"] + " " + text))
}

func PrintWarning(text string) {
	fmt.Println(warningStyle.Render(Symbols["warning"] + " " + text))
}

func PrintInfo(text string) {
	fmt.Println(infoStyle.Render(Symbols["info"] + " " + text))
}

func PrintDetail(text string) {
	fmt.Println(detailStyle.Render("  " + Symbols["arrow"] + " " + text))
}

func PrintHeader(text string) {
	fmt.Println(headerStyle.Render(text))
}

// PrintRule draws a horizontal separator sized to the terminal.
func PrintRule() {
	width := terminalWidth()
	if width > 60 {
		width = 60
	}
	fmt.Println(headerStyle.Render(strings.Repeat(Symbols["hline"], width)))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// FormatBytes converts bytes to a human-readable size.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
