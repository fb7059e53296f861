// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/moneta-app/moneta/internal/model"
)

var (
	// PrimaryColor is the main theme color (indigo).
	PrimaryColor = lipgloss.Color("#6366F1")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#22C55E")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F59E0B")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#EF4444")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#38BDF8")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#94A3B8")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// ExpenseStyle colors outgoing amounts.
	ExpenseStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// IncomeStyle colors incoming amounts.
	IncomeStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠"
	CoinIcon    = "🪙"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(CoinIcon + " " + title)
}

// FormatMoney renders an amount with the configured currency symbol.
func FormatMoney(m model.Money, currency string) string {
	return fmt.Sprintf("%.2f %s", m.Units(), currency)
}

// FormatSignedMoney renders an amount with an explicit direction marker, the
// way the history view shows expenses and incomes.
func FormatSignedMoney(m model.Money, txType model.TransactionType, currency string) string {
	switch txType {
	case model.TypeExpense:
		return ExpenseStyle.Render("-" + FormatMoney(m, currency))
	case model.TypeIncome:
		return IncomeStyle.Render("+" + FormatMoney(m, currency))
	default:
		return SubtleStyle.Render(FormatMoney(m, currency))
	}
}
