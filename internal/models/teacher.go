package models

// Teacher represents a member of staff
type Teacher struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AssignedClass string `json:"assignedClass"`
}
