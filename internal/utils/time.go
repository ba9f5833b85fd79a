package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDateTime stores an instant but talks to clients in the platform's
// reporting timezone (IST). Quiz availability windows and analytics date
// labels all use this zone.
type LocalDateTime struct {
	time.Time
}

const layout = "2006-01-02T15:04:05"

const dateLayout = "2006-01-02"

var reportingLocation *time.Location

func init() {
	var err error
	reportingLocation, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		reportingLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// ReportingLocation returns the timezone used for calendar-day bucketing.
func ReportingLocation() *time.Location {
	return reportingLocation
}

// DateLabel formats t as a calendar day in the reporting timezone.
func DateLabel(t time.Time) string {
	return t.In(reportingLocation).Format(dateLayout)
}

// MonthLabel formats t as e.g. "July 2025" in the reporting timezone.
func MonthLabel(t time.Time) string {
	return t.In(reportingLocation).Format("January 2006")
}

func ToTimePtr(ldt *LocalDateTime) *time.Time {
	if ldt == nil {
		return nil
	}
	t := ldt.Time
	return &t
}

func ToLocalPtr(t *time.Time) *LocalDateTime {
	if t == nil {
		return nil
	}
	return &LocalDateTime{Time: *t}
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, reportingLocation)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.In(reportingLocation).Format(layout) + `"`), nil
}

func (ldt LocalDateTime) Equal(other LocalDateTime) bool {
	return ldt.Time.Equal(other.Time)
}

func (ldt LocalDateTime) Value() (driver.Value, error) {
	if ldt.IsZero() {
		return nil, nil
	}
	return ldt.Time, nil
}

func (ldt *LocalDateTime) Scan(value interface{}) error {
	if value == nil {
		ldt.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		ldt.Time = v
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(layout, string(v), reportingLocation)
		if err != nil {
			return err
		}
		ldt.Time = parsed
		return nil
	case string:
		parsed, err := time.ParseInLocation(layout, v, reportingLocation)
		if err != nil {
			return err
		}
		ldt.Time = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into LocalDateTime", value)
	}
}
