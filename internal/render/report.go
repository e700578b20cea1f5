// Package render formats simulation results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/services/report"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#383838", Dark: "#D9DCCF"}).
			Width(20)

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#BF4343", Dark: "#F57373"}).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1)
)

// Report renders the performance report as a styled terminal block.
func Report(r report.Report) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Simulation report"))
	b.WriteString("\n")

	roiPercent := r.ROI.Mul(decimal.NewFromInt(100))
	writeLine(&b, "ROI", signed(roiPercent, roiPercent.StringFixed(2)+"%"))
	writeLine(&b, "Net profit", signed(r.NetProfit, r.NetProfit.String()))
	writeLine(&b, "Max profit", signed(r.MaxProfit, r.MaxProfit.String()))
	writeLine(&b, "Max loss", signed(r.MaxLoss, r.MaxLoss.String()))
	writeLine(&b, "Transactions", fmt.Sprintf("%d (%d buys, %d sells)",
		r.TotalTransactions, r.BuyTransactions, r.SellTransactions))

	return boxStyle.Render(b.String())
}

func writeLine(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func signed(value decimal.Decimal, text string) string {
	if value.IsNegative() {
		return lossStyle.Render(text)
	}
	return gainStyle.Render(text)
}
