package auth

import "errors"

// ErrForbidden is returned when a caller tries to mutate a resource they do
// not own. Callers must establish existence first so this never stands in
// for "not found".
var ErrForbidden = errors.New("caller is not the owner of this resource")

// Guard decides whether a caller may mutate a resource. Ownership is an
// exact identity match; identity is always an explicit parameter, never an
// ambient lookup.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// Authorize allows the operation when callerID equals ownerID.
func (g *Guard) Authorize(callerID, ownerID string) error {
	if callerID == "" || callerID != ownerID {
		return ErrForbidden
	}
	return nil
}
