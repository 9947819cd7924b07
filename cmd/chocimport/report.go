// # cmd/chocimport/report.go
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rosuav/Choc/internal/analyzer"
)

var (
	pathStyle = lipgloss.NewStyle().Bold(true)
	loseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	wantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

func printResult(res *analyzer.Result) {
	if !res.Changed {
		return
	}
	fmt.Println(pathStyle.Render(res.Path))
	if len(res.Lose) > 0 {
		fmt.Println(loseStyle.Render("LOSE:"), strings.Join(res.Lose, ", "))
	}
	if len(res.Gain) > 0 {
		fmt.Println(gainStyle.Render("GAIN:"), strings.Join(res.Gain, ", "))
	}
	fmt.Println(wantStyle.Render("WANT:"), res.Clause)
}
