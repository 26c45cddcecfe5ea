package models

import (
	"fmt"
	"time"
)

// LocalTime is a wall-clock reading after the UTC offset has been applied.
// It is recomputed every tick and never shared across ticks.
type LocalTime struct {
	Year    int          `json:"year"`
	Month   time.Month   `json:"month"`
	Day     int          `json:"day"`
	Hour    int          `json:"hour"`
	Minute  int          `json:"minute"`
	Second  int          `json:"second"`
	Weekday time.Weekday `json:"weekday"`
}

// MinuteOfDay identifies a minute within a day.
type MinuteOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// MinuteOfDay returns the (hour, minute) part of lt.
func (lt LocalTime) MinuteOfDay() MinuteOfDay {
	return MinuteOfDay{Hour: lt.Hour, Minute: lt.Minute}
}

// Date formats the calendar part as YYYY-MM-DD.
func (lt LocalTime) Date() string {
	return fmt.Sprintf("%d-%02d-%02d", lt.Year, int(lt.Month), lt.Day)
}

// Clock formats the time part as HH:MM:SS.
func (lt LocalTime) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", lt.Hour, lt.Minute, lt.Second)
}

func (lt LocalTime) String() string {
	return lt.Date() + " " + lt.Clock()
}
