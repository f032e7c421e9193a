package auth

// User is the domain entity. Votes reference it optionally.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
}
