package domain

// Principal is the authenticated actor supplied by the identity provider
type Principal struct {
	UserID  int64
	Email   string
	IsStaff bool
}

// CanAccessOwnedBy reports whether the principal may act on a resource owned by ownerID
func (p Principal) CanAccessOwnedBy(ownerID int64) bool {
	return p.IsStaff || p.UserID == ownerID
}
