package repository

import "github.com/jhoicas/editorial-api/internal/domain/entity"

// BookRepository define el puerto de persistencia para libros y sus versiones (DIP).
type BookRepository interface {
	GetByID(id int64) (*entity.Book, error)
	// List filtra por título (coincidencia parcial) y autor (exacto);
	// sort admite id_asc, id_desc o name_alpha.
	List(titleKw, author, sort string) ([]*entity.Book, error)
	Create(b *entity.Book) error

	CreateVersion(v *entity.BookVersion) error
	ListVersions(bookID int64) ([]*entity.BookVersion, error)
	ListAllVersions() ([]*entity.BookVersion, error)
}
