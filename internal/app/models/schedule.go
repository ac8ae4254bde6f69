package models

import (
	"time"
)

// ScheduleRequest defines an event or meeting proposal based on the
// 'schedule_requests' table. Time and Room are set for meetings; events
// occupy a whole date and usually leave both empty.
type ScheduleRequest struct {
	ID          int64         `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Date        time.Time     `json:"date" db:"date"`
	Time        *string       `json:"time,omitempty" db:"time"` // "15:04" wall-clock
	Room        *string       `json:"room,omitempty" db:"room"`
	Group       string        `json:"group" db:"sig"`
	Kind        RequestKind   `json:"kind" db:"kind"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedBy   int64         `json:"createdBy" db:"created_by"`
	Feedback    *string       `json:"feedback,omitempty" db:"feedback"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

// DateOnly formats the request date the way reports and conflict checks
// compare it.
func (r *ScheduleRequest) DateOnly() string {
	return r.Date.Format("2006-01-02")
}
