package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inovotek/book-directory-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	fullName string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		fullName: fmt.Sprintf("Test User %s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithFullName sets the full name
func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     b.fullName,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Books:        datatypes.JSON([]byte("[]")),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// UserEnvelope matches the register/login response bodies
type UserEnvelope struct {
	Message string `json:"message"`
	User    struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	} `json:"user"`
}

// BuildAndLogin registers the user via the API, logs in, and returns the
// user together with the session cookie.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Cookie) {
	t.Helper()

	regBody, _ := json.Marshal(map[string]string{
		"fullName": b.fullName,
		"email":    b.email,
		"password": b.password,
	})

	resp, err := http.Post(ts.APIURL("/users/register"), "application/json", bytes.NewBuffer(regBody))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status code: %d", resp.StatusCode)
	}

	var envelope UserEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})

	loginResp, err := http.Post(ts.APIURL("/users/login"), "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", loginResp.StatusCode)
	}

	cookie := SessionCookie(t, loginResp)

	userID, _ := uuid.Parse(envelope.User.ID)
	user := &domain.User{
		ID:       userID,
		FullName: envelope.User.FullName,
		Email:    envelope.User.Email,
	}

	return user, cookie
}

// SessionCookie extracts the session cookie from a response
func SessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

// BookBuilder creates test books with a builder pattern
type BookBuilder struct {
	title   string
	author  string
	isbn    string
	desc    string
	creator *domain.User
}

// NewBookBuilder creates a new BookBuilder with default values
func NewBookBuilder() *BookBuilder {
	suffix := uuid.New().String()[:8]
	return &BookBuilder{
		title:  fmt.Sprintf("Test Book %s", suffix),
		author: "Test Author",
		isbn:   "978-0000000000",
		desc:   "A test book",
	}
}

// WithTitle sets the title
func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.title = title
	return b
}

// WithAuthor sets the author
func (b *BookBuilder) WithAuthor(author string) *BookBuilder {
	b.author = author
	return b
}

// WithCreator sets the owning user
func (b *BookBuilder) WithCreator(user *domain.User) *BookBuilder {
	b.creator = user
	return b
}

// Build creates the book in the database
func (b *BookBuilder) Build(t *testing.T, db *gorm.DB) *domain.Book {
	t.Helper()

	if b.creator == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.creator = user
	}

	book := &domain.Book{
		ID:          uuid.New(),
		Title:       b.title,
		Author:      b.author,
		ISBN:        b.isbn,
		Desc:        b.desc,
		CreatedByID: b.creator.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create book: %v", err)
	}

	return book
}

// NewRequest creates an HTTP request, optionally carrying a session cookie
func NewRequest(t *testing.T, method, url string, body interface{}, session *http.Cookie) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if session != nil {
		req.AddCookie(session)
	}

	return req
}
