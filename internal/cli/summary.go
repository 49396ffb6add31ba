package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/i18n"
	"github.com/terraincognita07/nibble/internal/services"
)

// SummarySource is the read side of the analytics service.
type SummarySource interface {
	DailySummary() (services.DailySummary, error)
	WeeklySummary() (services.PeriodSummary, error)
	MonthlySummary() (services.PeriodSummary, error)
	WeightTrend(maxPoints int) (services.WeightTrend, error)
}

// WriteSummary prints today, this week, this month and the weight trend in language.
func WriteSummary(out io.Writer, source SummarySource, manager *i18n.Manager, language string) error {
	language = manager.NormalizeLanguage(language)
	t := func(key string) string { return manager.Translate(language, key) }
	kcal := t("unit.kcal")

	daily, err := source.DailySummary()
	if err != nil {
		return err
	}
	weekly, err := source.WeeklySummary()
	if err != nil {
		return err
	}
	monthly, err := source.MonthlySummary()
	if err != nil {
		return err
	}
	trend, err := source.WeightTrend(0)
	if err != nil {
		return err
	}

	heading := daily.Date
	if day, err := dates.ParseISO(daily.Date, time.UTC); err == nil {
		heading = i18n.FormatLongDate(language, day)
	}

	var b strings.Builder
	fmt.Fprintln(&b, manager.Translatef(language, "summary.title", heading))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, t("summary.today"))
	fmt.Fprintf(&b, "  %s: %d %s\n", t("summary.total"), daily.Total, kcal)
	fmt.Fprintf(&b, "  %s: %d %s\n", t("summary.goal"), daily.CalorieGoal, kcal)
	if daily.Remaining >= 0 {
		fmt.Fprintf(&b, "  %s: %d %s\n", t("summary.remaining"), daily.Remaining, kcal)
	} else {
		fmt.Fprintf(&b, "  %s: %d %s\n", t("summary.over"), -daily.Remaining, kcal)
	}
	fmt.Fprintf(&b, "  %s: %d\n", t("summary.entries"), daily.EntryCount)

	for _, period := range []struct {
		key     string
		summary services.PeriodSummary
	}{
		{key: "summary.week", summary: weekly},
		{key: "summary.month", summary: monthly},
	} {
		fmt.Fprintln(&b, t(period.key))
		fmt.Fprintf(&b, "  %s: %d %s\n", t("summary.total"), period.summary.Total, kcal)
		fmt.Fprintf(&b, "  %s: %.1f %s\n", t("summary.average"), period.summary.DailyAverage, kcal)
	}

	fmt.Fprintln(&b)
	if !trend.HasData {
		fmt.Fprintln(&b, t("summary.no_weight"))
	} else {
		unit := t("unit." + trend.Unit)
		fmt.Fprintf(&b, "%s: %.1f %s (%s)\n", t("summary.weight"), trend.Latest.Weight, unit, trend.Latest.Date)
		fmt.Fprintf(&b, "%s: %+.1f %s\n", t("summary.weight_change"), trend.Change, unit)
	}

	_, err = io.WriteString(out, b.String())
	return err
}
