package teacher

import "time"

type Teacher struct {
	ID        int64     `json:"id" bson:"_id"`
	LastName  string    `json:"lastName" bson:"last_name"`
	FirstName string    `json:"firstName" bson:"first_name"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
