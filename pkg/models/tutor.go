package models

// Tutor represents a tutor offering topics
type Tutor struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Profile   string `json:"profile" db:"profile"`
}

// CreateTutor holds the fields required to register a tutor
type CreateTutor struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Profile   string `json:"profile" binding:"required"`
}

// UpdateTutor is a partial update of a tutor
type UpdateTutor struct {
	FirstName Field[string] `json:"first_name"`
	LastName  Field[string] `json:"last_name"`
	Email     Field[string] `json:"email"`
	Profile   Field[string] `json:"profile"`
}

// Apply merges the update onto current and returns the full record to write.
func (u UpdateTutor) Apply(current Tutor) Tutor {
	return Tutor{
		ID:        current.ID,
		FirstName: u.FirstName.Or(current.FirstName),
		LastName:  u.LastName.Or(current.LastName),
		Email:     u.Email.Or(current.Email),
		Profile:   u.Profile.Or(current.Profile),
	}
}

// DeleteSummary reports the rows removed by a cascading tutor delete
type DeleteSummary struct {
	TutorID       int64 `json:"tutor_id"`
	TutorsDeleted int64 `json:"tutors_deleted"`
	TopicsDeleted int64 `json:"topics_deleted"`
}
