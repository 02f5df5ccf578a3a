package service

import (
	"github.com/inovotek/book-directory-api/internal/config"
	"github.com/inovotek/book-directory-api/internal/repository"
)

type Services struct {
	Auth *AuthService
	Book *BookService
	User *UserService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	sessions := NewSessionManager(repos.Session, cfg.SessionTTL)

	return &Services{
		Auth: NewAuthService(repos.User, sessions, cfg),
		Book: NewBookService(repos.Book),
		User: NewUserService(repos.User),
	}
}
