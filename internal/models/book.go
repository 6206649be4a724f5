package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Rating embebido dentro de un libro: un usuario, una nota.
type Rating struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	Grade  int                `json:"grade" bson:"grade"`
}

type BookDoc struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"userId" bson:"userId"` // dueño (creador)
	Title  string             `json:"title" bson:"title"`
	Author string             `json:"author" bson:"author"`
	Year   int                `json:"year" bson:"year"`
	Genre  string             `json:"genre" bson:"genre"`
	// URL pública completa de la portada (servida desde /images)
	ImageURL      string   `json:"imageUrl" bson:"imageUrl"`
	Ratings       []Rating `json:"ratings" bson:"ratings"`
	AverageRating float64  `json:"averageRating" bson:"averageRating"`
	CreatedAt     string   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     string   `json:"updatedAt" bson:"updatedAt"`
}

// Payload para crear un libro (la parte "book" del multipart).
// Si el cliente manda ratings/averageRating se ignoran: un libro
// siempre nace sin valoraciones.
type BookCreateRequest struct {
	Title  string `json:"title"`  // obligatorio
	Author string `json:"author"` // obligatorio
	Year   int    `json:"year,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

// Payload para actualización de libro. La imagen llega aparte
// (multipart) y ratings/averageRating nunca se tocan por esta vía.
type BookUpdateRequest struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	Year   *int    `json:"year,omitempty"`
	Genre  *string `json:"genre,omitempty"`
}
