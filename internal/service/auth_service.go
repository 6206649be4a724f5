package service

import (
	"context"
	"fmt"
	"time"

	"libroteca/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserStore es lo que el servicio de auth necesita de la persistencia.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
	Insert(ctx context.Context, u *models.UserDoc) error
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// ================== REGISTER & LOGIN ==================

// Register crea un usuario nuevo. El password se guarda solo como
// hash bcrypt, el texto plano no se persiste nunca.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.UserDoc, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", ErrValidation)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.UserDoc{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login valida credenciales y emite el token de sesión.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrBadCredential
	}

	token, err := s.tokens.Issue(u.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
