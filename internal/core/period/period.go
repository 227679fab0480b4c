// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package period manages the time spans that facts are scoped to.

Periods may overlap or share identical bounds. They exist so that a user can
move many facts to a different time span by editing one record; deleting a
period detaches its facts rather than removing them.
*/
package period

import "time"

// Period is a possibly open-ended span of time owned by one user.
type Period struct {
	ID        string     `json:"id"` // UUIDv7
	UserID    string     `json:"-"`
	Start     *time.Time `json:"start"`
	End       *time.Time `json:"end"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// displayLayout renders bounds with second precision.
const displayLayout = "2006-01-02 15:04:05"

// String renders "start - end" with "?" for an open bound.
func (period Period) String() string {
	if period.Start == nil && period.End == nil {
		return "(unbounded)"
	}
	return bound(period.Start) + " - " + bound(period.End)
}

func bound(t *time.Time) string {
	if t == nil {
		return "?"
	}
	return t.Format(displayLayout)
}

// # Field Identifiers

const (
	FieldStart = "start"
	FieldEnd   = "end"
)
