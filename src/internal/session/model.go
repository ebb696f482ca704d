package session

import "time"

// Session is a bookable class instance. Users holds participant ids in
// join order and never contains duplicates.
type Session struct {
	ID          int64     `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Date        time.Time `json:"date" bson:"date"`
	TeacherID   *int64    `json:"teacher_id" bson:"teacher_id"`
	Description string    `json:"description" bson:"description"`
	Users       []int64   `json:"users" bson:"users"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// Dto is the create/update payload with its validation rules.
type Dto struct {
	Name        string    `json:"name" binding:"required,max=50"`
	Date        time.Time `json:"date" binding:"required"`
	TeacherID   *int64    `json:"teacher_id" binding:"required"`
	Description string    `json:"description" binding:"required,max=2500"`
	Users       []int64   `json:"users"`
}

// ToSession builds a session from the payload. Ids and timestamps are
// assigned by the repository.
func (d *Dto) ToSession() *Session {
	users := d.Users
	if users == nil {
		users = []int64{}
	}
	return &Session{
		Name:        d.Name,
		Date:        d.Date,
		TeacherID:   d.TeacherID,
		Description: d.Description,
		Users:       users,
	}
}
