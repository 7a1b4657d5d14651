package models

// Admin is the studio owner's account for the availability dashboard.
type Admin struct {
	ID           string `json:"id" bson:"id"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"passwordHash"`
}
