package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/timezone"
)

type Config struct {
	ServerPort string
	Timezone   string

	// Clinic operating window, "15:04" wall-clock strings.
	ClinicOpen  string
	ClinicClose string

	// Weekdays the clinic does not book sessions on.
	ClosedWeekdays []time.Weekday

	// Timeline grid: day window start hour and visible minutes per day.
	TimelineDayStartHour int
	TimelineDayMinutes   int

	// Drag/drop snap granularity.
	SnapMinutes int
}

func Load() *Config {
	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		Timezone:             getEnv("PRACTICE_TIMEZONE", timezone.DefaultTimezone),
		ClinicOpen:           getEnv("CLINIC_OPEN", "08:00"),
		ClinicClose:          getEnv("CLINIC_CLOSE", "18:00"),
		ClosedWeekdays:       parseWeekdays(getEnv("CLINIC_CLOSED_DAYS", "Sunday")),
		TimelineDayStartHour: getEnvInt("TIMELINE_DAY_START_HOUR", 7),
		TimelineDayMinutes:   getEnvInt("TIMELINE_DAY_MINUTES", 720),
		SnapMinutes:          getEnvInt("TIMELINE_SNAP_MINUTES", 5),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseWeekdays(list string) []time.Weekday {
	names := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}

	var days []time.Weekday
	for _, part := range strings.Split(list, ",") {
		if day, ok := names[strings.ToLower(strings.TrimSpace(part))]; ok {
			days = append(days, day)
		}
	}
	return days
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) Location() *time.Location {
	return timezone.Location(c.Timezone)
}

// IsClosedDay reports whether the clinic books nothing on the weekday.
func (c *Config) IsClosedDay(day time.Weekday) bool {
	for _, closed := range c.ClosedWeekdays {
		if closed == day {
			return true
		}
	}
	return false
}
