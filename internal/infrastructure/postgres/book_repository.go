package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación del puerto BookRepository sobre PostgreSQL (usable con pool o tx).
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador de persistencia para libros. Pasar pool o tx (Querier).
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

// Create persiste un libro y asigna el ID generado.
func (r *BookRepo) Create(b *entity.Book) error {
	query := `
		INSERT INTO books (title, author, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, b.Title, b.Author, b.CreatedAt).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por ID.
func (r *BookRepo) GetByID(id int64) (*entity.Book, error) {
	query := `
		SELECT id, title, author, created_at
		FROM books WHERE id = $1`
	var b entity.Book
	err := r.q.QueryRow(context.Background(), query, id).Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

// List lista libros filtrando por título (parcial) y autor (exacto).
// El orden se mapea aquí a cláusulas fijas; cualquier valor desconocido cae a id ascendente.
func (r *BookRepo) List(titleKw, author, sort string) ([]*entity.Book, error) {
	query := `
		SELECT id, title, author, created_at
		FROM books WHERE 1=1`
	args := []any{}
	pos := 1
	if titleKw != "" {
		query += fmt.Sprintf(" AND title ILIKE $%d", pos)
		args = append(args, "%"+titleKw+"%")
		pos++
	}
	if author != "" {
		query += fmt.Sprintf(" AND author = $%d", pos)
		args = append(args, author)
		pos++
	}
	switch sort {
	case "id_desc":
		query += " ORDER BY id DESC"
	case "name_alpha":
		query += " ORDER BY title, id"
	default:
		query += " ORDER BY id"
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var list []*entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// CreateVersion persiste una versión (edición) de un libro y asigna el ID generado.
func (r *BookRepo) CreateVersion(v *entity.BookVersion) error {
	query := `
		INSERT INTO book_versions (book_id, isbn, description, pages, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		v.BookID, v.ISBN, v.Description, v.Pages, v.CreatedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("insert book version: %w", err)
	}
	return nil
}

// ListVersions lista las versiones de un libro.
func (r *BookRepo) ListVersions(bookID int64) ([]*entity.BookVersion, error) {
	query := `
		SELECT id, book_id, isbn, description, pages, created_at
		FROM book_versions WHERE book_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book versions: %w", err)
	}
	defer rows.Close()
	return scanVersions(rows)
}

// ListAllVersions lista todas las versiones del catálogo.
func (r *BookRepo) ListAllVersions() ([]*entity.BookVersion, error) {
	query := `
		SELECT id, book_id, isbn, description, pages, created_at
		FROM book_versions ORDER BY book_id, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all book versions: %w", err)
	}
	defer rows.Close()
	return scanVersions(rows)
}

func scanVersions(rows pgx.Rows) ([]*entity.BookVersion, error) {
	var list []*entity.BookVersion
	for rows.Next() {
		var v entity.BookVersion
		if err := rows.Scan(&v.ID, &v.BookID, &v.ISBN, &v.Description, &v.Pages, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book version: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
