// Package period содержит календарную арифметику окон подписки.
package period

import (
	"fmt"
	"time"
)

// Window возвращает окно действия подписки, начатое в момент start
// и продолжающееся months календарных месяцев.
func Window(start time.Time, months int) (time.Time, time.Time) {
	return start, start.AddDate(0, months, 0)
}

// Active сообщает, действует ли подписка с окончанием subEnd в момент now.
// Совпадение now с границей окна считается действующей подпиской.
func Active(now, subEnd time.Time) bool {
	return !now.After(subEnd)
}

// Text возвращает человекочитаемое название периода на русском языке.
func Text(months int) string {
	switch {
	case months == 1:
		return "месяц"
	case months < 5:
		return fmt.Sprintf("%d месяца", months)
	default:
		return fmt.Sprintf("%d месяцев", months)
	}
}
