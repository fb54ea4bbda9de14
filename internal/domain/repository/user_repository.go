package repository

import "github.com/petverde/green-pos/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios (actores de auditoría).
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
