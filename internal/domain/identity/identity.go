package identity

// Role tags the four account types of the platform.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleEstablishment Role = "establishment"
	RoleProfessional  Role = "professional"
	RoleClient        Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleEstablishment, RoleProfessional, RoleClient:
		return true
	}
	return false
}

// Actor is the authenticated identity a request acts as. EstablishmentID
// is only meaningful for professionals, where it names their employer;
// for every other role it is zero.
type Actor struct {
	ID              uint
	Role            Role
	EstablishmentID uint
}

// OwnsEstablishment reports whether the actor controls the given
// establishment account: the establishment itself, or a super admin.
func (a Actor) OwnsEstablishment(establishmentID uint) bool {
	switch a.Role {
	case RoleSuperAdmin:
		return true
	case RoleEstablishment:
		return a.ID == establishmentID
	}
	return false
}

// CanViewAppointment mirrors the read rule: participants and admins only.
func (a Actor) CanViewAppointment(clientID, professionalID, establishmentID uint) bool {
	switch a.Role {
	case RoleSuperAdmin:
		return true
	case RoleClient:
		return a.ID == clientID
	case RoleProfessional:
		return a.ID == professionalID
	case RoleEstablishment:
		return a.ID == establishmentID
	}
	return false
}
