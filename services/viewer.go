package services

// Viewer roles.
const (
	RoleDietitian = "dietitian"
	RolePatient   = "patient"
)

// Viewer identifies the authenticated caller. It is built by the auth
// middleware and passed explicitly into any operation that needs to know who
// is asking; services never read ambient session state.
type Viewer struct {
	Role        string
	DietitianID uint
	PatientID   uint
}

func (v Viewer) IsDietitian() bool { return v.Role == RoleDietitian }
func (v Viewer) IsPatient() bool   { return v.Role == RolePatient }
