package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type UserDoc struct {
	ID           primitive.ObjectID `json:"userId" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	CreatedAt    string             `json:"createdAt" bson:"createdAt"`
}
