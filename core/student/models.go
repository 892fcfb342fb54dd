package student

// Student identifies the current viewer. It is already-authenticated input
// from the identity service; nothing here is an access-control token.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisplayLabel is what the watermark and blocking overlay show for this
// viewer. Cosmetic only.
func (s Student) DisplayLabel() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}
