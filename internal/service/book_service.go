package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inovotek/book-directory-api/internal/domain"
	"github.com/inovotek/book-directory-api/internal/repository"
	"gorm.io/gorm"
)

type BookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

type CreateBookInput struct {
	Title  string
	Author string
	ISBN   string
	Desc   string
}

type UpdateBookInput struct {
	Title  *string
	Author *string
	ISBN   *string
	Desc   *string
}

// Create inserts a book owned by the subject. The repository appends the
// owner-side snapshot in the same transaction.
func (s *BookService) Create(ctx context.Context, subject *domain.User, input CreateBookInput) (*domain.Book, error) {
	if input.Title == "" || input.Author == "" || input.ISBN == "" || input.Desc == "" {
		return nil, domain.ErrValidation
	}

	// Check if the title is taken
	existing, err := s.bookRepo.GetByTitle(ctx, input.Title)
	if err == nil && existing != nil {
		return nil, domain.ErrTitleTaken
	}

	book := &domain.Book{
		ID:          uuid.New(),
		Title:       input.Title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		Desc:        input.Desc,
		CreatedByID: subject.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrTitleTaken
		}
		return nil, err
	}

	return book, nil
}

// GetAll returns every book with CreatedBy resolved to the current user
// record (query-time join, not the owner's stale snapshot).
func (s *BookService) GetAll(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.GetAll(ctx)
}

func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// Update applies a partial update. Required fields may not be cleared.
// Owner snapshots are not rewritten, so they keep the pre-update copy.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*domain.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrValidation
		}
		if *input.Title != book.Title {
			existing, err := s.bookRepo.GetByTitle(ctx, *input.Title)
			if err == nil && existing != nil {
				return nil, domain.ErrTitleTaken
			}
			book.Title = *input.Title
		}
	}
	if input.Author != nil {
		if *input.Author == "" {
			return nil, domain.ErrValidation
		}
		book.Author = *input.Author
	}
	if input.ISBN != nil {
		if *input.ISBN == "" {
			return nil, domain.ErrValidation
		}
		book.ISBN = *input.ISBN
	}
	if input.Desc != nil {
		if *input.Desc == "" {
			return nil, domain.ErrValidation
		}
		book.Desc = *input.Desc
	}
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrTitleTaken
		}
		return nil, err
	}

	return book, nil
}

// Delete removes the book. Deleting an absent id is not an error, and
// stale snapshots in user records are left as-is.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookRepo.Delete(ctx, id)
}
