package service

import (
	"context"
	"testing"

	"libroteca/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateBookStartsWithoutRatings(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)
	owner := primitive.NewObjectID()

	b, err := svc.Create(context.Background(), owner, &models.BookCreateRequest{
		Title:  "Rayuela",
		Author: "Cortázar",
		Year:   1963,
		Genre:  "novela",
	}, "http://localhost:4000/images/rayuela_1.jpg")
	require.NoError(t, err)

	assert.Equal(t, owner, b.UserID)
	assert.Empty(t, b.Ratings)
	assert.Zero(t, b.AverageRating)
	assert.NotEmpty(t, b.CreatedAt)
}

func TestCreateBookRequiredFields(t *testing.T) {
	svc := NewBookService(newFakeBookStore())
	owner := primitive.NewObjectID()

	_, err := svc.Create(context.Background(), owner, &models.BookCreateRequest{Author: "Cortázar"}, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), owner, &models.BookCreateRequest{Title: "Rayuela"}, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTopRatedSortsAndTruncates(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)
	ctx := context.Background()

	avgs := []float64{2.5, 4.8, 1.0, 3.9, 4.8}
	for i, avg := range avgs {
		b := &models.BookDoc{
			Title:         "Libro",
			Author:        "Autor",
			Year:          2000 + i,
			AverageRating: avg,
		}
		require.NoError(t, store.Insert(ctx, b))
	}

	top, err := svc.TopRated(ctx)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, 4.8, top[0].AverageRating)
	assert.Equal(t, 4.8, top[1].AverageRating)
	assert.Equal(t, 3.9, top[2].AverageRating)
	// empate resuelto por orden natural de la colección
	assert.Equal(t, 2001, top[0].Year)
	assert.Equal(t, 2004, top[1].Year)
}

func TestTopRatedFewerThanThree(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &models.BookDoc{Title: "Único", Author: "A"}))

	top, err := svc.TopRated(ctx)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestUpdateBookReplacesFieldsKeepsRatings(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)
	ctx := context.Background()

	b := &models.BookDoc{
		Title:         "Ficciones",
		Author:        "Borges",
		ImageURL:      "http://localhost:4000/images/vieja.jpg",
		Ratings:       []models.Rating{{UserID: primitive.NewObjectID(), Grade: 5}},
		AverageRating: 5,
	}
	require.NoError(t, store.Insert(ctx, b))

	newTitle := "Ficciones (2a ed.)"
	got, err := svc.Update(ctx, b.ID, &models.BookUpdateRequest{Title: &newTitle}, "")
	require.NoError(t, err)

	assert.Equal(t, newTitle, got.Title)
	assert.Equal(t, "Borges", got.Author)
	// sin imagen nueva se conserva la anterior
	assert.Equal(t, "http://localhost:4000/images/vieja.jpg", got.ImageURL)
	assert.Len(t, got.Ratings, 1)
	assert.Equal(t, 5.0, got.AverageRating)
}

func TestUpdateBookNewImage(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)
	ctx := context.Background()

	b := &models.BookDoc{Title: "Ficciones", Author: "Borges", ImageURL: "http://x/images/a.jpg"}
	require.NoError(t, store.Insert(ctx, b))

	got, err := svc.Update(ctx, b.ID, &models.BookUpdateRequest{}, "http://x/images/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://x/images/b.jpg", got.ImageURL)
}

func TestUpdateBookNotFound(t *testing.T) {
	svc := NewBookService(newFakeBookStore())
	title := "x"

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), &models.BookUpdateRequest{Title: &title}, "")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBook(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)
	ctx := context.Background()

	b := &models.BookDoc{Title: "Ficciones", Author: "Borges"}
	require.NoError(t, store.Insert(ctx, b))

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrBookNotFound)

	_, err := svc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
