package dto

// RegisterRequest represents a student membership application. The account
// username is derived from the student number.
type RegisterRequest struct {
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	StudentNumber string `json:"studentNumber" binding:"required"`
	Year          int    `json:"year" binding:"required,min=1,max=6"`
	Section       string `json:"section" binding:"required"`
	Major         string `json:"major"`
	Group         string `json:"group" binding:"required"`
}

// TransitionRequest represents a status decision on a membership
type TransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject reconsider"`
}

// UpdateProfileRequest represents profile update data. Pointer fields are
// applied only when present.
type UpdateProfileRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Year    *int    `json:"year,omitempty" binding:"omitempty,min=1,max=6"`
	Section *string `json:"section,omitempty"`
	Major   *string `json:"major,omitempty"`
	Group   *string `json:"group,omitempty"`
}

// MemberListQuery represents list filters for member endpoints
type MemberListQuery struct {
	Group        string `form:"group"`
	Status       string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Year         *int   `form:"year" binding:"omitempty,min=1,max=6"`
	Section      string `form:"section"`
	Major        string `form:"major"`
	NumberSearch string `form:"studentNumber"`
}

// MemberListResponse wraps a filtered member listing
type MemberListResponse struct {
	Members []AccountResponse `json:"members"`
	Total   int               `json:"total"`
}

// FilterOptionsResponse lists the distinct values available for member filters
type FilterOptionsResponse struct {
	Years    []int    `json:"years"`
	Sections []string `json:"sections"`
	Majors   []string `json:"majors"`
	Groups   []string `json:"groups"`
}

// StudentDashboard is the student landing view. Group data is present only
// for approved members; a pending or rejected student sees just Status.
type StudentDashboard struct {
	Status      string             `json:"status"`
	Group       string             `json:"group,omitempty"`
	MemberCount int                `json:"memberCount,omitempty"`
	Events      []ScheduleResponse `json:"events,omitempty"`
	Officers    []OfficerResponse  `json:"officers,omitempty"`
}

// AdminDashboard is the admin landing view for their own group
type AdminDashboard struct {
	Group          string             `json:"group"`
	ApprovedCount  int                `json:"approvedCount"`
	PendingCount   int                `json:"pendingCount"`
	RejectedCount  int                `json:"rejectedCount"`
	OfficerCount   int                `json:"officerCount"`
	ApprovedEvents []ScheduleResponse `json:"approvedEvents"`
}

// GroupCount pairs a group with a member count
type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// SuperadminDashboard is the system-wide landing view
type SuperadminDashboard struct {
	GroupCounts     []GroupCount       `json:"groupCounts"`
	TotalStudents   int                `json:"totalStudents"`
	PendingRequests []ScheduleResponse `json:"pendingRequests"`
}
