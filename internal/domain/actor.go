package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "restaurant-owner"
	RoleAdmin Role = "admin"
)

// Actor is the authenticated caller of a use case. The zero value is anonymous.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) Anonymous() bool { return a.UserID == "" }

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanManage reports whether the actor owns the resource or is an admin.
func (a Actor) CanManage(ownerID string) bool {
	if a.Anonymous() {
		return false
	}
	return a.IsAdmin() || a.UserID == ownerID
}
