package domain

// PersonRequest is the flat creation shape consumed at the API boundary.
// It carries both the person fields and the profile fields; the mapper splits
// them into a Person with a freshly constructed Profile.
//
// The validate tags are enforced by the service layer before any persistence
// is attempted.
type PersonRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Bio      string `json:"bio"`
	Age      int    `json:"age" validate:"gte=0"`
	ShoeSize int    `json:"shoe_size" validate:"gte=0"`
}

// PersonView is the read-only projection returned to callers.
// It is never persisted: Bio is copied from the attached Profile (empty when
// none is attached) and Posts is assembled by a lookup at mapping time.
type PersonView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Posts []Post `json:"posts"`
}
