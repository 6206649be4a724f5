package handler

import (
	"encoding/json"
	"net/http"

	"libroteca/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(s *service.RatingService) *RatingHandler { return &RatingHandler{svc: s} }

type ratingRequest struct {
	Rating int `json:"rating"`
}

// @Summary Valorar un libro
// @Description Una valoración por usuario, permanente. Nota de 0 a 5.
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "bookId"
// @Param body body ratingRequest true "nota"
// @Success 200 {object} models.BookDoc
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id}/rating [post]
func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	raterID, ok := UserIDFromContext(r.Context())
	if !ok {
		jsonError(w, "no autenticado", http.StatusUnauthorized)
		return
	}

	bookID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "id inválido", http.StatusBadRequest)
		return
	}

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "body inválido", http.StatusBadRequest)
		return
	}

	// la identidad del votante sale siempre del token, nunca del body
	book, err := h.svc.Submit(r.Context(), bookID, raterID, req.Rating)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(book)
}
