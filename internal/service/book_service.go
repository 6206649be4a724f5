// internal/service/book_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"libroteca/internal/cache"
	"libroteca/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	cacheKeyAllBooks = "books:all"
	cacheKeyTopBooks = "books:top:3"

	// TTL corto: las escrituras ya invalidan, esto solo acota el daño
	// si alguna invalidación se pierde.
	booksCacheTTLSeconds = 5 * 60
)

// BookStore es lo que los servicios de libros y ratings necesitan de
// la persistencia.
type BookStore interface {
	Insert(ctx context.Context, b *models.BookDoc) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BookDoc, error)
	GetAll(ctx context.Context) ([]models.BookDoc, error)
	TopRated(ctx context.Context, n int) ([]models.BookDoc, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	PushRating(ctx context.Context, id primitive.ObjectID, rating models.Rating, newAvg float64, updatedAt string) (bool, error)
}

type BookService struct {
	books BookStore
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

// Create da de alta un libro a nombre del usuario autenticado. Nace
// siempre sin valoraciones: cualquier ratings/averageRating que mande
// el cliente se descarta.
func (s *BookService) Create(ctx context.Context, ownerID primitive.ObjectID, req *models.BookCreateRequest, imageURL string) (*models.BookDoc, error) {
	if req.Title == "" || req.Author == "" {
		return nil, fmt.Errorf("%w: title y author son obligatorios", ErrValidation)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	b := &models.BookDoc{
		UserID:        ownerID,
		Title:         req.Title,
		Author:        req.Author,
		Year:          req.Year,
		Genre:         req.Genre,
		ImageURL:      imageURL,
		Ratings:       []models.Rating{},
		AverageRating: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.books.Insert(ctx, b); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return b, nil
}

func (s *BookService) GetAll(ctx context.Context) ([]models.BookDoc, error) {
	var cached []models.BookDoc
	if ok, err := cache.GetJSON(ctx, cacheKeyAllBooks, &cached); err == nil && ok {
		return cached, nil
	}

	books, err := s.books.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, cacheKeyAllBooks, books, booksCacheTTLSeconds); err != nil {
		log.Printf("[books] error cacheando listado: %v", err)
	}
	return books, nil
}

func (s *BookService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BookDoc, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// TopRated devuelve los 3 libros con mejor promedio.
func (s *BookService) TopRated(ctx context.Context) ([]models.BookDoc, error) {
	var cached []models.BookDoc
	if ok, err := cache.GetJSON(ctx, cacheKeyTopBooks, &cached); err == nil && ok {
		return cached, nil
	}

	books, err := s.books.TopRated(ctx, 3)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, cacheKeyTopBooks, books, booksCacheTTLSeconds); err != nil {
		log.Printf("[books] error cacheando top: %v", err)
	}
	return books, nil
}

// Update reemplaza los campos enviados. La imagen solo cambia si vino
// una nueva; ratings y averageRating jamás se tocan por esta vía.
func (s *BookService) Update(ctx context.Context, id primitive.ObjectID, req *models.BookUpdateRequest, newImageURL string) (*models.BookDoc, error) {
	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Author != nil {
		set["author"] = *req.Author
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.Genre != nil {
		set["genre"] = *req.Genre
	}
	if newImageURL != "" {
		set["imageUrl"] = newImageURL
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no hay campos para actualizar", ErrValidation)
	}
	set["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	matched, err := s.books.UpdateFields(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrBookNotFound
	}

	s.invalidateCache(ctx)
	return s.GetByID(ctx, id)
}

// Delete borra el libro. La imagen huérfana queda en disco (limpieza
// pendiente del lado del almacenamiento).
func (s *BookService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.books.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBookNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *BookService) invalidateCache(ctx context.Context) {
	if err := cache.Del(ctx, cacheKeyAllBooks, cacheKeyTopBooks); err != nil {
		log.Printf("[books] error invalidando cache: %v", err)
	}
}
