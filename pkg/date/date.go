// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

/*
Package date provides a calendar-date value type for the catalog wire format.

Publication dates travel as bare "YYYY-MM-DD" strings and are stored in
PostgreSQL DATE columns; [Date] bridges both representations without carrying
a time-of-day or a timezone.
*/
package date

import (
	"fmt"
	"time"
)

// Layout is the wire representation of a calendar date.
const Layout = "2006-01-02"

// Date is a calendar date without time-of-day.
//
// The zero value marshals as "0001-01-01"; use a *Date for optional fields.
type Date struct {
	time.Time
}

// New builds a Date from a year, month, and day in UTC.
func New(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse converts a "YYYY-MM-DD" string into a Date.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("date: invalid value %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

// String returns the wire representation.
func (d Date) String() string {
	return d.Format(Layout)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(Layout) + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("date: expected quoted string, got %s", raw)
	}

	parsed, err := Parse(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
