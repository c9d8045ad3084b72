package utils

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateFormatLayout documents the display shape produced by FormatDate.
const DateFormatLayout = "dd MMMM yyyy HH:mm:ss"

var indonesianMonths = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate renders a timestamp as "dd MMMM yyyy HH:mm:ss" in the
// given timezone, with month names localized for the "id" locale.
func FormatDate(t time.Time, lang string, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}

	month := t.Month().String()
	if lang == "id" {
		month = indonesianMonths[t.Month()-1]
	}

	return fmt.Sprintf("%02d %s %d %02d:%02d:%02d",
		t.Day(), month, t.Year(), t.Hour(), t.Minute(), t.Second())
}

// FormatCurrency renders an amount as Indonesian Rupiah with locale
// grouping and zero fraction digits.
func FormatCurrency(amount float64, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Indonesian
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("Rp%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatPercentage renders a discount percentage, trimming a trailing
// zero fraction (10 -> "10%", 12.5 -> "12.5%").
func FormatPercentage(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d%%", int64(value))
	}
	return fmt.Sprintf("%g%%", value)
}
