package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/dto"
)

// BookHandler maneja libros y sus versiones/ediciones (protegido).
type BookHandler struct {
	uc *catalog.BookUseCase
}

// NewBookHandler construye el handler.
func NewBookHandler(uc *catalog.BookUseCase) *BookHandler {
	return &BookHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar libro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookRequest  true  "Título y autor"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.BookRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "libro registrado", out)
}

// Get godoc
// @Summary      Detalle de libro con sus versiones
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del libro"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "libro", out)
}

// List godoc
// @Summary      Listar libros
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        title   query  string  false  "Filtro por título (parcial)"
// @Param        author  query  string  false  "Filtro por autor (exacto)"
// @Param        sort    query  string  false  "id_asc, id_desc o name_alpha"  default(id_asc)
// @Success      200  {object}  dto.Result
// @Router       /api/books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	var in dto.BookListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "libros", out)
}

// CreateVersion godoc
// @Summary      Registrar versión/edición de un libro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del libro"
// @Param        body  body  dto.BookVersionRequest  true  "ISBN, descripción y páginas"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/books/{id}/versions [post]
func (h *BookHandler) CreateVersion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.BookVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateVersion(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "versión registrada", out)
}

// ListVersions godoc
// @Summary      Versiones de un libro
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del libro"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id}/versions [get]
func (h *BookHandler) ListVersions(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListVersions(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "versiones", out)
}

// ListAllVersions godoc
// @Summary      Todas las versiones registradas
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Result
// @Router       /api/books/versions [get]
func (h *BookHandler) ListAllVersions(c *fiber.Ctx) error {
	out, err := h.uc.ListAllVersions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "versiones", out)
}

// ImportFeed godoc
// @Summary      Importar libros desde un feed ONIX
// @Description  Acepta un ONIXMessage XML en el cuerpo y registra cada Product con título como libro (y versión si trae ISBN).
// @Tags         books
// @Security     Bearer
// @Accept       xml
// @Produce      json
// @Success      200  {object}  dto.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/books/import [post]
func (h *BookHandler) ImportFeed(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return invalidBody(c)
	}
	out, err := h.uc.ImportFeed(c.Context(), bytes.NewReader(body))
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "feed importado", out)
}
