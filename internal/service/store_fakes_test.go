package service

import (
	"context"
	"sort"

	"libroteca/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakes en memoria con la misma semántica que los repos de Mongo

type fakeUserStore struct {
	users []*models.UserDoc
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.UserDoc) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users = append(f.users, u)
	return nil
}

type fakeBookStore struct {
	books map[primitive.ObjectID]*models.BookDoc
	order []primitive.ObjectID
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: map[primitive.ObjectID]*models.BookDoc{}}
}

func (f *fakeBookStore) Insert(_ context.Context, b *models.BookDoc) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	cp := *b
	f.books[b.ID] = &cp
	f.order = append(f.order, b.ID)
	return nil
}

func (f *fakeBookStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.BookDoc, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	cp.Ratings = append([]models.Rating(nil), b.Ratings...)
	return &cp, nil
}

func (f *fakeBookStore) GetAll(_ context.Context) ([]models.BookDoc, error) {
	var out []models.BookDoc
	for _, id := range f.order {
		out = append(out, *f.books[id])
	}
	return out, nil
}

func (f *fakeBookStore) TopRated(_ context.Context, n int) ([]models.BookDoc, error) {
	all, _ := f.GetAll(context.Background())
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].AverageRating > all[j].AverageRating
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (f *fakeBookStore) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	b, ok := f.books[id]
	if !ok {
		return false, nil
	}
	for k, v := range set {
		switch k {
		case "title":
			b.Title = v.(string)
		case "author":
			b.Author = v.(string)
		case "year":
			b.Year = v.(int)
		case "genre":
			b.Genre = v.(string)
		case "imageUrl":
			b.ImageURL = v.(string)
		case "updatedAt":
			b.UpdatedAt = v.(string)
		}
	}
	return true, nil
}

func (f *fakeBookStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.books[id]; !ok {
		return false, nil
	}
	delete(f.books, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (f *fakeBookStore) PushRating(_ context.Context, id primitive.ObjectID, rating models.Rating, newAvg float64, updatedAt string) (bool, error) {
	b, ok := f.books[id]
	if !ok {
		return false, nil
	}
	for _, r := range b.Ratings {
		if r.UserID == rating.UserID {
			return false, nil
		}
	}
	b.Ratings = append(b.Ratings, rating)
	b.AverageRating = newAvg
	b.UpdatedAt = updatedAt
	return true, nil
}
