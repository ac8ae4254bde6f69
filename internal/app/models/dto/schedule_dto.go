package dto

import "github.com/ejmancilla/sigms/internal/app/models"

// SubmitScheduleRequest represents a new event or meeting proposal
type SubmitScheduleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // "2006-01-02"
	Time        string `json:"time" binding:"omitempty,len=5"`
	Room        string `json:"room"`
	Kind        string `json:"kind" binding:"required,oneof=event meeting"`
}

// DecideScheduleRequest represents an approve/reject decision with
// optional feedback for the requesting group
type DecideScheduleRequest struct {
	Action   string `json:"action" binding:"required,oneof=approve reject"`
	Feedback string `json:"feedback"`
}

// ScheduleListQuery represents list filters for schedule endpoints
type ScheduleListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Group  string `form:"group"`
}

// ScheduleResponse represents a schedule request in API responses
type ScheduleResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        *string `json:"time,omitempty"`
	Room        *string `json:"room,omitempty"`
	Group       string  `json:"group"`
	Kind        string  `json:"kind"`
	Status      string  `json:"status"`
	Feedback    *string `json:"feedback,omitempty"`
}

// ToScheduleResponse maps a schedule request model to its API representation
func ToScheduleResponse(r *models.ScheduleRequest) ScheduleResponse {
	return ScheduleResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.DateOnly(),
		Time:        r.Time,
		Room:        r.Room,
		Group:       r.Group,
		Kind:        string(r.Kind),
		Status:      string(r.Status),
		Feedback:    r.Feedback,
	}
}

// ScheduleListResponse wraps a schedule listing
type ScheduleListResponse struct {
	Requests []ScheduleResponse `json:"requests"`
	Total    int                `json:"total"`
}
