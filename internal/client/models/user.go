package models

// AuthUser is the profile of the currently signed-in user, derived from the
// identity provider. It is owned by the session service; other components
// hold only read references.
type AuthUser struct {
	Username   string
	Email      string
	Attributes map[string]string
}
