package domain

// Client is a customer whose equipment passes through the workflow.
//
// Deleting a client does not cascade to its equipment; equipment keeps a
// dangling client reference.
type Client struct {
	ID    int64  `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}
