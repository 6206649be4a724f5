package service

import (
	"context"
	"log"
	"time"

	"libroteca/internal/cache"
	"libroteca/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingService struct {
	books BookStore
}

func NewRatingService(books BookStore) *RatingService {
	return &RatingService{books: books}
}

// Submit registra la valoración de un usuario sobre un libro. Una vez
// enviada es permanente: no hay update ni delete de ratings.
func (s *RatingService) Submit(ctx context.Context, bookID, raterID primitive.ObjectID, grade int) (*models.BookDoc, error) {
	if grade < 0 || grade > 5 {
		return nil, ErrInvalidGrade
	}

	// 1) Buscar el libro
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	// 2) Un rating por usuario
	for _, r := range book.Ratings {
		if r.UserID == raterID {
			return nil, ErrDuplicateRating
		}
	}

	// 3) Recalcular el promedio desde la lista completa de notas,
	// nunca de forma incremental.
	sum := grade
	for _, r := range book.Ratings {
		sum += r.Grade
	}
	newAvg := float64(sum) / float64(len(book.Ratings)+1)

	rating := models.Rating{UserID: raterID, Grade: grade}
	now := time.Now().UTC().Format(time.RFC3339)

	// 4) Push condicional: si otro request del mismo usuario ganó la
	// carrera entre el fetch y acá, el filtro no matchea.
	ok, err := s.books.PushRating(ctx, bookID, rating, newAvg, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDuplicateRating
	}

	if err := cache.Del(ctx, cacheKeyAllBooks, cacheKeyTopBooks); err != nil {
		log.Printf("[ratings] error invalidando cache: %v", err)
	}

	book.Ratings = append(book.Ratings, rating)
	book.AverageRating = newAvg
	book.UpdatedAt = now
	return book, nil
}
