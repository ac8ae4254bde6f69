package models

// Officer represents a named position holder within a group. The set for a
// group is replaced wholesale on every roster update; there is no
// uniqueness constraint on name or position.
type Officer struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Position string `json:"position" db:"position"`
	Group    string `json:"group" db:"sig"`
}
