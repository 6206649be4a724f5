package service

import "errors"

// Errores centinela del dominio. Los handlers los mapean a códigos
// HTTP con errors.Is.
var (
	ErrEmailTaken      = errors.New("email ya registrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrBadCredential   = errors.New("contraseña incorrecta")
	ErrTokenInvalid    = errors.New("token inválido")
	ErrTokenExpired    = errors.New("token expirado")
	ErrBookNotFound    = errors.New("libro no encontrado")
	ErrDuplicateRating = errors.New("el usuario ya valoró este libro")
	ErrInvalidGrade    = errors.New("la nota debe estar entre 0 y 5")
	ErrValidation      = errors.New("datos inválidos")
)
