package controllers

import "time"

// clock lets tests pin the current time of date-relative views.
type clock struct {
	now func() time.Time
}

func systemClock() clock {
	return clock{now: time.Now}
}
