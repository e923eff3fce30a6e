package ports

import "io"

// BookFeedEntry título leído de un catálogo externo. Un Product ONIX se reduce
// a estos campos; lo que el feed no trae queda en cero.
type BookFeedEntry struct {
	Title  string
	Author string
	ISBN   string
	Pages  int
}

// BookFeedReader define el puerto de entrada de catálogos editoriales externos.
// Cualquier adaptador (ONIX 3.0, mock) debe implementar esta interfaz; la capa
// de aplicación solo conoce este contrato, no el formato del feed.
type BookFeedReader interface {
	// ReadFeed parsea un feed completo y devuelve sus títulos en orden de
	// aparición. Entradas sin título se descartan.
	ReadFeed(r io.Reader) ([]BookFeedEntry, error)
}
