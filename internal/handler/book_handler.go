// internal/handler/book_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"libroteca/internal/models"
	"libroteca/internal/service"
	"libroteca/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxUploadBytes = 10 << 20 // 10 MB por request multipart

type BookHandler struct {
	svc     *service.BookService
	images  *storage.ImageStore
	baseURL string
}

func NewBookHandler(s *service.BookService, images *storage.ImageStore, baseURL string) *BookHandler {
	return &BookHandler{svc: s, images: images, baseURL: strings.TrimRight(baseURL, "/")}
}

// @Summary Listar todos los libros
// @Tags books
// @Produce json
// @Success 200 {array} models.BookDoc
// @Router /books [get]
func (h *BookHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	books, err := h.svc.GetAll(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	if books == nil {
		books = []models.BookDoc{}
	}
	_ = json.NewEncoder(w).Encode(books)
}

// @Summary Top 3 libros por promedio
// @Tags books
// @Produce json
// @Success 200 {array} models.BookDoc
// @Router /books/bestrating [get]
func (h *BookHandler) BestRating(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	books, err := h.svc.TopRated(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	if books == nil {
		books = []models.BookDoc{}
	}
	_ = json.NewEncoder(w).Encode(books)
}

// @Summary Obtener un libro
// @Tags books
// @Produce json
// @Param id path string true "bookId"
// @Success 200 {object} models.BookDoc
// @Failure 404 {object} map[string]string
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "id inválido", http.StatusBadRequest)
		return
	}
	book, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(book)
}

// @Summary Crear libro con portada
// @Description Multipart: parte "book" con el JSON y parte "image" con el archivo
// @Tags books
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param book formData string true "JSON del libro"
// @Param image formData file true "portada"
// @Success 201 {object} models.BookDoc
// @Failure 400 {object} map[string]string
// @Router /books [post]
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		jsonError(w, "no autenticado", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, "se espera multipart/form-data", http.StatusBadRequest)
		return
	}

	var req models.BookCreateRequest
	if err := json.Unmarshal([]byte(r.FormValue("book")), &req); err != nil {
		jsonError(w, "parte \"book\" inválida", http.StatusBadRequest)
		return
	}

	imageURL, err := h.saveImage(r)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			jsonError(w, "la imagen es obligatoria", http.StatusBadRequest)
			return
		}
		// la parte vino pero no se pudo guardar
		jsonError(w, "error guardando la imagen", http.StatusInternalServerError)
		return
	}

	book, err := h.svc.Create(r.Context(), ownerID, &req, imageURL)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(book)
}

// @Summary Actualizar libro
// @Description Acepta JSON plano o multipart con nueva portada
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "bookId"
// @Success 200 {object} models.BookDoc
// @Failure 404 {object} map[string]string
// @Router /books/{id} [put]
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "id inválido", http.StatusBadRequest)
		return
	}

	var req models.BookUpdateRequest
	var newImageURL string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			jsonError(w, "multipart inválido", http.StatusBadRequest)
			return
		}
		if raw := r.FormValue("book"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req); err != nil {
				jsonError(w, "parte \"book\" inválida", http.StatusBadRequest)
				return
			}
		}
		// la imagen nueva es opcional en el update, pero si vino y
		// no se pudo guardar hay que avisarlo, no seguir con la vieja
		url, err := h.saveImage(r)
		switch {
		case err == nil:
			newImageURL = url
		case errors.Is(err, http.ErrMissingFile):
			// sin imagen nueva, se conserva la anterior
		default:
			jsonError(w, "error guardando la imagen", http.StatusInternalServerError)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "body inválido", http.StatusBadRequest)
			return
		}
	}

	book, err := h.svc.Update(r.Context(), id, &req, newImageURL)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(book)
}

// @Summary Borrar libro
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param id path string true "bookId"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "id inválido", http.StatusBadRequest)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "libro eliminado"})
}

// saveImage guarda la parte "image" del multipart y devuelve la URL
// pública completa.
func (h *BookHandler) saveImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", err
	}
	defer file.Close()

	filename, err := h.images.Save(header.Filename, file)
	if err != nil {
		return "", err
	}
	return h.baseURL + "/images/" + filename, nil
}
