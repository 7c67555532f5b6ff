package entity

// UserProfile is the identity-provider record the assistant consumes. Sign-up,
// login and sessions live in the identity provider.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
