package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/inovotek/book-directory-api/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *bookRepository {
	return &bookRepository{db: db}
}

// Create inserts the book and appends its snapshot to the owning user's
// books list. Both writes run in one transaction so a crash cannot leave
// the book without its owner-side copy.
func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			return err
		}

		var owner domain.User
		if err := tx.First(&owner, "id = ?", book.CreatedByID).Error; err != nil {
			return err
		}

		var snapshots []domain.BookSnapshot
		if len(owner.Books) > 0 {
			if err := json.Unmarshal(owner.Books, &snapshots); err != nil {
				return err
			}
		}
		snapshots = append(snapshots, domain.SnapshotOf(book))

		raw, err := json.Marshal(snapshots)
		if err != nil {
			return err
		}
		owner.Books = datatypes.JSON(raw)

		return tx.Save(&owner).Error
	})
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	var book domain.Book
	err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetByTitle(ctx context.Context, title string) (*domain.Book, error) {
	var book domain.Book
	err := r.db.WithContext(ctx).First(&book, "title = ?", title).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetAll(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	err := r.db.WithContext(ctx).Preload("CreatedBy").Order("created_at").Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete removes the book row only. Snapshots embedded in user records are
// intentionally left behind.
func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Book{}, "id = ?", id).Error
}
