package repository

import "github.com/jhoicas/editorial-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para cuentas de usuario (DIP).
type UserRepository interface {
	GetByID(id int64) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	Create(u *entity.User) error
	UpdatePassword(id int64, passwordHash string) error
}
