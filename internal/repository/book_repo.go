// internal/repository/book_repo.go
package repository

import (
	"context"

	"libroteca/internal/db"
	"libroteca/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository() *BookRepository {
	return &BookRepository{col: db.DB().Collection("books")}
}

func (r *BookRepository) Insert(ctx context.Context, b *models.BookDoc) error {
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BookDoc, error) {
	var b models.BookDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &b, err
}

func (r *BookRepository) GetAll(ctx context.Context) ([]models.BookDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BookDoc
	for cur.Next(ctx) {
		var b models.BookDoc
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}

// TopRated devuelve los n libros con mejor promedio. El desempate
// queda en el orden natural de la colección (estable para un mismo
// estado de la base).
func (r *BookRepository) TopRated(ctx context.Context, n int) ([]models.BookDoc, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating", Value: -1}}).
		SetLimit(int64(n))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BookDoc
	for cur.Next(ctx) {
		var b models.BookDoc
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}

// UpdateFields aplica un $set parcial sobre el libro. Devuelve false
// si el id no existe. Ratings y averageRating nunca entran por aquí.
func (r *BookRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *BookRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// PushRating agrega la valoración y fija el nuevo promedio en una sola
// operación condicional: el filtro excluye documentos donde el usuario
// ya votó, así un duplicado concurrente pierde la carrera.
func (r *BookRepository) PushRating(ctx context.Context, id primitive.ObjectID, rating models.Rating, newAvg float64, updatedAt string) (bool, error) {
	filter := bson.M{
		"_id":            id,
		"ratings.userId": bson.M{"$ne": rating.UserID},
	}
	update := bson.M{
		"$push": bson.M{"ratings": rating},
		"$set": bson.M{
			"averageRating": newAvg,
			"updatedAt":     updatedAt,
		},
	}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
