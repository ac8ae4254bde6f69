package dto

import "github.com/ejmancilla/sigms/internal/app/models"

// OfficerEntry represents one officer row in a roster replacement
type OfficerEntry struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position" binding:"required"`
}

// ReplaceRosterRequest replaces a group's entire officer roster
type ReplaceRosterRequest struct {
	Officers []OfficerEntry `json:"officers" binding:"required,dive"`
}

// OfficerResponse represents an officer in API responses
type OfficerResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Group    string `json:"group"`
}

// ToOfficerResponse maps an officer model to its API representation
func ToOfficerResponse(o *models.Officer) OfficerResponse {
	return OfficerResponse{ID: o.ID, Name: o.Name, Position: o.Position, Group: o.Group}
}

// RosterResponse wraps a group's officer listing
type RosterResponse struct {
	Group    string            `json:"group"`
	Officers []OfficerResponse `json:"officers"`
}
