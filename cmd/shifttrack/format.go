package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"shifttrack/internal/config"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// moneyFormatter renders amounts in the configured currency and locale.
type moneyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

func newMoneyFormatter(cfg *config.Config) moneyFormatter {
	tag, err := language.Parse(cfg.Wages.Locale)
	if err != nil {
		tag = language.English
	}
	unit, err := currency.ParseISO(cfg.Wages.Currency)
	if err != nil {
		unit = currency.USD
	}
	return moneyFormatter{printer: message.NewPrinter(tag), unit: unit}
}

func (f moneyFormatter) format(amount float64) string {
	return f.printer.Sprint(currency.NarrowSymbol(f.unit.Amount(amount)))
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

func formatClock(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return ts.Local().Format("15:04")
}

func formatStamp(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func writerSupportsColor(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + ansiReset
}

func tierColor(tier string) string {
	switch tier {
	case "accurate":
		return ansiGreen
	case "minor_variance":
		return ansiYellow
	case "discrepancy", "off_track":
		return ansiRed
	}
	return ""
}
