package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inovotek/book-directory-api/internal/api/middleware"
	"github.com/inovotek/book-directory-api/internal/domain"
	"github.com/inovotek/book-directory-api/internal/service"
)

type BookHandler struct {
	bookService *service.BookService
}

func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Desc   string `json:"desc"`
}

type UpdateBookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	ISBN   *string `json:"isbn"`
	Desc   *string `json:"desc"`
}

// BookWithOwnerResponse is the list shape: createdBy carries the current
// owner record resolved at query time, not the id.
type BookWithOwnerResponse struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Author    string       `json:"author"`
	ISBN      string       `json:"isbn"`
	Desc      string       `json:"desc"`
	CreatedBy *domain.User `json:"createdBy"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "please login before creating")
		return
	}

	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.bookService.Create(r.Context(), subject, service.CreateBookInput{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
		Desc:   req.Desc,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTitleTaken):
			respondError(w, http.StatusConflict, "a book with that title already exists")
		case errors.Is(err, domain.ErrValidation):
			respondError(w, http.StatusBadRequest, "title, author, isbn and desc are required")
		default:
			log.Printf("ERROR [books.Create]: %v", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.GetAll(r.Context())
	if err != nil {
		log.Printf("ERROR [books.GetAll]: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]BookWithOwnerResponse, len(books))
	for i, b := range books {
		resp[i] = BookWithOwnerResponse{
			ID:        b.ID.String(),
			Title:     b.Title,
			Author:    b.Author,
			ISBN:      b.ISBN,
			Desc:      b.Desc,
			CreatedBy: b.CreatedBy,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			respondError(w, http.StatusNotFound, "book not found")
			return
		}
		log.Printf("ERROR [books.Get] bookID=%s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.bookService.Update(r.Context(), id, service.UpdateBookInput{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
		Desc:   req.Desc,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			respondError(w, http.StatusNotFound, "book not found")
		case errors.Is(err, domain.ErrTitleTaken):
			respondError(w, http.StatusConflict, "a book with that title already exists")
		case errors.Is(err, domain.ErrValidation):
			respondError(w, http.StatusBadRequest, "required fields must not be empty")
		default:
			log.Printf("ERROR [books.Update] bookID=%s: %v", id, err)
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		log.Printf("ERROR [books.Delete] bookID=%s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "book deleted"})
}
