package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/ports"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

// Ordenamientos permitidos en el listado de libros.
const (
	BookSortIDAsc     = "id_asc"
	BookSortIDDesc    = "id_desc"
	BookSortNameAlpha = "name_alpha"
)

// BookUseCase catálogo editorial: libros, versiones e importación de feeds.
type BookUseCase struct {
	repo repository.BookRepository
	feed ports.BookFeedReader
	log  *logger.Logger
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(repo repository.BookRepository, feed ports.BookFeedReader, log *logger.Logger) *BookUseCase {
	return &BookUseCase{repo: repo, feed: feed, log: log}
}

// Create da de alta un libro.
func (uc *BookUseCase) Create(ctx context.Context, in dto.BookRequest) (*dto.BookDTO, error) {
	if in.Title == "" {
		return nil, domain.NewValidation("title", "el título del libro no puede estar vacío")
	}
	book := &entity.Book{Title: in.Title, Author: in.Author, CreatedAt: time.Now()}
	if err := uc.repo.Create(book); err != nil {
		return nil, err
	}
	out := bookToDTO(book, nil)
	return &out, nil
}

// Get obtiene un libro con sus versiones.
func (uc *BookUseCase) Get(ctx context.Context, id int64) (*dto.BookDTO, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("libro %d: %w", id, domain.ErrNotFound)
	}
	versions, err := uc.repo.ListVersions(id)
	if err != nil {
		return nil, err
	}
	out := bookToDTO(book, versions)
	return &out, nil
}

// List lista libros con filtros por título (parcial) y autor (exacto).
// Ordenamientos: id_asc (por defecto), id_desc, name_alpha.
func (uc *BookUseCase) List(ctx context.Context, in dto.BookListRequest) ([]dto.BookDTO, error) {
	sort := in.Sort
	switch sort {
	case "", BookSortIDAsc, BookSortIDDesc, BookSortNameAlpha:
	default:
		sort = BookSortIDAsc
	}
	list, err := uc.repo.List(in.Title, in.Author, sort)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookDTO, 0, len(list))
	for _, b := range list {
		items = append(items, bookToDTO(b, nil))
	}
	return items, nil
}

// CreateVersion registra una versión/edición de un libro existente.
func (uc *BookUseCase) CreateVersion(ctx context.Context, bookID int64, in dto.BookVersionRequest) (*dto.BookVersionDTO, error) {
	if in.ISBN == "" {
		return nil, domain.NewValidation("isbn", "el ISBN no puede estar vacío")
	}
	if in.Description == "" {
		return nil, domain.NewValidation("description", "la descripción de la versión no puede estar vacía")
	}
	if in.Pages <= 0 {
		return nil, domain.NewValidation("pages", "las páginas deben ser mayores que cero")
	}
	book, err := uc.repo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("libro %d: %w", bookID, domain.ErrNotFound)
	}
	version := &entity.BookVersion{
		BookID:      bookID,
		ISBN:        in.ISBN,
		Description: in.Description,
		Pages:       in.Pages,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.CreateVersion(version); err != nil {
		return nil, err
	}
	out := versionToDTO(version)
	return &out, nil
}

// ListVersions lista las versiones de un libro.
func (uc *BookUseCase) ListVersions(ctx context.Context, bookID int64) ([]dto.BookVersionDTO, error) {
	book, err := uc.repo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("libro %d: %w", bookID, domain.ErrNotFound)
	}
	versions, err := uc.repo.ListVersions(bookID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookVersionDTO, 0, len(versions))
	for _, v := range versions {
		items = append(items, versionToDTO(v))
	}
	return items, nil
}

// ListAllVersions devuelve todas las versiones del catálogo, para selectores.
func (uc *BookUseCase) ListAllVersions(ctx context.Context) ([]dto.BookVersionDTO, error) {
	versions, err := uc.repo.ListAllVersions()
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookVersionDTO, 0, len(versions))
	for _, v := range versions {
		items = append(items, versionToDTO(v))
	}
	return items, nil
}

// ImportFeed lee un feed ONIX y da de alta sus títulos. Cuando el Product trae
// ISBN y páginas, registra además la versión correspondiente.
func (uc *BookUseCase) ImportFeed(ctx context.Context, r io.Reader) (*dto.BookImportResponse, error) {
	entries, err := uc.feed.ReadFeed(r)
	if err != nil {
		return nil, fmt.Errorf("leer feed: %w", err)
	}
	now := time.Now()
	resp := &dto.BookImportResponse{Books: []dto.BookDTO{}}
	for _, e := range entries {
		book := &entity.Book{Title: e.Title, Author: e.Author, CreatedAt: now}
		if err := uc.repo.Create(book); err != nil {
			return nil, fmt.Errorf("importar %q: %w", e.Title, err)
		}
		var versions []*entity.BookVersion
		if e.ISBN != "" && e.Pages > 0 {
			version := &entity.BookVersion{
				BookID:      book.ID,
				ISBN:        e.ISBN,
				Description: "importada de catálogo ONIX",
				Pages:       e.Pages,
				CreatedAt:   now,
			}
			if err := uc.repo.CreateVersion(version); err != nil {
				return nil, fmt.Errorf("importar versión de %q: %w", e.Title, err)
			}
			versions = append(versions, version)
		}
		resp.Books = append(resp.Books, bookToDTO(book, versions))
		resp.Imported++
	}
	uc.log.Info().Int("imported", resp.Imported).Msg("feed ONIX importado")
	return resp, nil
}

func bookToDTO(b *entity.Book, versions []*entity.BookVersion) dto.BookDTO {
	out := dto.BookDTO{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		CreatedAt: b.CreatedAt.Format(dto.DateTimeLayout),
	}
	for _, v := range versions {
		out.Versions = append(out.Versions, versionToDTO(v))
	}
	return out
}

func versionToDTO(v *entity.BookVersion) dto.BookVersionDTO {
	return dto.BookVersionDTO{
		ID:          v.ID,
		BookID:      v.BookID,
		ISBN:        v.ISBN,
		Description: v.Description,
		Pages:       v.Pages,
		CreatedAt:   v.CreatedAt.Format(dto.DateLayout),
	}
}
