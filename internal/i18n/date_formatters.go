package i18n

import (
	"fmt"
	"time"
)

var monthShortNames = map[string][]string{
	LangEN: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	LangRU: {"янв", "фев", "мар", "апр", "мая", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"},
}

var monthLongNames = map[string][]string{
	LangEN: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	LangRU: {"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"},
}

var weekdayLongNames = map[string][]string{
	LangEN: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	LangRU: {"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"},
}

// FormatShortDate renders a chart label: "Jan 10" or "10 янв".
func FormatShortDate(language string, value time.Time) string {
	lang := normalizeLanguageTag(language)
	months, ok := monthShortNames[lang]
	if !ok {
		return value.Format("Jan 2")
	}

	month := months[int(value.Month())-1]
	if lang == LangRU {
		return fmt.Sprintf("%d %s", value.Day(), month)
	}
	return fmt.Sprintf("%s %d", month, value.Day())
}

// FormatLongDate renders a header date: "Wednesday, January 10, 2024" or
// "среда, 10 января 2024".
func FormatLongDate(language string, value time.Time) string {
	lang := normalizeLanguageTag(language)
	weekdays, weekdaysOK := weekdayLongNames[lang]
	months, monthsOK := monthLongNames[lang]
	if !weekdaysOK || !monthsOK {
		return value.Format("Monday, January 2, 2006")
	}

	weekday := weekdays[int(value.Weekday())]
	month := months[int(value.Month())-1]
	if lang == LangRU {
		return fmt.Sprintf("%s, %d %s %d", weekday, value.Day(), month, value.Year())
	}
	return fmt.Sprintf("%s, %s %d, %d", weekday, month, value.Day(), value.Year())
}

// Labeler names analytics chart buckets in one language.
type Labeler struct {
	manager  *Manager
	language string
}

func (manager *Manager) Labeler(language string) Labeler {
	return Labeler{
		manager:  manager,
		language: manager.NormalizeLanguage(language),
	}
}

func (labeler Labeler) DayLabel(day time.Time) string {
	return FormatShortDate(labeler.language, day)
}

func (labeler Labeler) WeekLabel(index int) string {
	return labeler.manager.Translatef(labeler.language, "chart.week", index)
}

func (labeler Labeler) Language() string {
	return labeler.language
}
