package onix

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/jhoicas/editorial-api/internal/application/ports"
)

var _ ports.BookFeedReader = (*Reader)(nil)

// Reader adaptador de catálogos ONIX 3.0 al puerto BookFeedReader. Espera los
// nombres de referencia (Product, TitleText...), no la variante corta, y solo
// extrae lo que el catálogo editorial usa: título, autor, ISBN-13 y páginas.
type Reader struct{}

// NewReader construye el lector de feeds ONIX.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFeed parsea un mensaje ONIX y devuelve un entry por cada Product con título.
func (rd *Reader) ReadFeed(r io.Reader) ([]ports.BookFeedEntry, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("onix: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("onix: documento sin raíz")
	}
	if root.Tag != "ONIXMessage" {
		return nil, fmt.Errorf("onix: raíz inesperada %q", root.Tag)
	}

	var entries []ports.BookFeedEntry
	for _, product := range root.FindElements("Product") {
		e := parseProduct(product)
		if e.Title == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseProduct(product *etree.Element) ports.BookFeedEntry {
	var e ports.BookFeedEntry

	// ISBN-13 (ProductIDType 15); como respaldo GTIN-13 (03), que en libros coincide.
	var gtin string
	for _, id := range product.FindElements("ProductIdentifier") {
		value := childText(id, "IDValue")
		switch childText(id, "ProductIDType") {
		case "15":
			e.ISBN = value
		case "03":
			gtin = value
		}
	}
	if e.ISBN == "" {
		e.ISBN = gtin
	}

	detail := product.SelectElement("DescriptiveDetail")
	if detail == nil {
		return e
	}
	if title := detail.FindElement("TitleDetail/TitleElement/TitleText"); title != nil {
		e.Title = strings.TrimSpace(title.Text())
	}
	// Autor: PersonName del contribuidor A01; si ninguno lo es, el primero con nombre.
	for _, c := range detail.FindElements("Contributor") {
		name := childText(c, "PersonName")
		if name == "" {
			continue
		}
		if childText(c, "ContributorRole") == "A01" {
			e.Author = name
			break
		}
		if e.Author == "" {
			e.Author = name
		}
	}
	// Páginas: primer Extent expresado en páginas (ExtentUnit 03).
	for _, ext := range detail.FindElements("Extent") {
		if childText(ext, "ExtentUnit") != "03" {
			continue
		}
		if pages, err := strconv.Atoi(childText(ext, "ExtentValue")); err == nil && pages > 0 {
			e.Pages = pages
			break
		}
	}
	return e
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}
