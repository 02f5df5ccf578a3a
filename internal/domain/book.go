package domain

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"uniqueIndex;not null"`
	Author      string    `json:"author" gorm:"not null"`
	ISBN        string    `json:"isbn" gorm:"not null"`
	Desc        string    `json:"desc" gorm:"not null"`
	CreatedByID uuid.UUID `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedBy   *User     `json:"-" gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookSnapshot is the copy of a book embedded in the owning user's books
// list at creation time. It is never updated afterwards, so it drifts from
// the canonical Book record if the book is later changed or deleted.
type BookSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Desc      string    `json:"desc"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func SnapshotOf(b *Book) BookSnapshot {
	return BookSnapshot{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Desc:      b.Desc,
		CreatedBy: b.CreatedByID,
		CreatedAt: b.CreatedAt,
	}
}
