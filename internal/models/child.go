package models

// Child represents an enrolled child. ParentID and TeacherID are plain references;
// nothing but the parent deletion guard checks them.
type Child struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ParentID         string `json:"parentId"`
	TeacherID        string `json:"teacherId"`
	Age              int    `json:"age"`
	EmergencyContact string `json:"emergencyContact"`
	Allergies        string `json:"allergies"`
	MedicalNotes     string `json:"medicalNotes"`
}
