package user

// Principal is the authenticated caller resolved from a bearer token.
// Accounts themselves are owned by the identity service.
type Principal struct {
	id   int64
	role Role
}

func NewPrincipal(id int64, role Role) (Principal, error) {
	if id <= 0 {
		return Principal{}, ErrInvalidUserID
	}
	if !role.IsValid() {
		return Principal{}, ErrInvalidRole
	}
	return Principal{id: id, role: role}, nil
}

func (p Principal) ID() int64     { return p.id }
func (p Principal) Role() Role    { return p.role }
func (p Principal) IsAdmin() bool { return p.role == RoleAdmin }
