package entity

import "time"

// Book título del catálogo editorial. Las tareas de impresión referencian un libro.
type Book struct {
	ID        int64
	Title     string
	Author    string
	CreatedAt time.Time
}

// BookVersion edición o versión de un libro, identificada por su ISBN.
type BookVersion struct {
	ID          int64
	BookID      int64
	ISBN        string
	Description string
	Pages       int
	CreatedAt   time.Time
}
