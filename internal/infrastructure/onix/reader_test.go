package onix_test

import (
	"strings"
	"testing"

	"github.com/jhoicas/editorial-api/internal/infrastructure/onix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Lector de catálogos ONIX 3.0 (nombres de referencia). Los feeds de prueba
// son mensajes mínimos pero bien formados, con los code lists reales:
// ProductIDType 15 = ISBN-13, 03 = GTIN-13; ContributorRole A01 = autor;
// ExtentUnit 03 = páginas.
// ─────────────────────────────────────────────────────────────────────────────

const feedCompleto = `<?xml version="1.0" encoding="UTF-8"?>
<ONIXMessage release="3.0">
  <Header>
    <Sender><SenderName>Distribuidora Norte</SenderName></Sender>
  </Header>
  <Product>
    <RecordReference>prod-001</RecordReference>
    <ProductIdentifier>
      <ProductIDType>15</ProductIDType>
      <IDValue>9780307474728</IDValue>
    </ProductIdentifier>
    <DescriptiveDetail>
      <TitleDetail>
        <TitleType>01</TitleType>
        <TitleElement>
          <TitleElementLevel>01</TitleElementLevel>
          <TitleText>Cien años de soledad</TitleText>
        </TitleElement>
      </TitleDetail>
      <Contributor>
        <ContributorRole>A01</ContributorRole>
        <PersonName>Gabriel García Márquez</PersonName>
      </Contributor>
      <Extent>
        <ExtentType>00</ExtentType>
        <ExtentValue>417</ExtentValue>
        <ExtentUnit>03</ExtentUnit>
      </Extent>
    </DescriptiveDetail>
  </Product>
  <Product>
    <RecordReference>prod-002</RecordReference>
    <DescriptiveDetail>
      <TitleDetail>
        <TitleType>01</TitleType>
        <TitleElement>
          <TitleElementLevel>01</TitleElementLevel>
          <TitleText>El coronel no tiene quien le escriba</TitleText>
        </TitleElement>
      </TitleDetail>
    </DescriptiveDetail>
  </Product>
</ONIXMessage>`

func TestReadFeed_ExtraeTitulosCompletos(t *testing.T) {
	entries, err := onix.NewReader().ReadFeed(strings.NewReader(feedCompleto))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Cien años de soledad", entries[0].Title)
	assert.Equal(t, "Gabriel García Márquez", entries[0].Author)
	assert.Equal(t, "9780307474728", entries[0].ISBN)
	assert.Equal(t, 417, entries[0].Pages)

	// El segundo Product solo trae título: el resto queda en cero.
	assert.Equal(t, "El coronel no tiene quien le escriba", entries[1].Title)
	assert.Empty(t, entries[1].Author)
	assert.Empty(t, entries[1].ISBN)
	assert.Zero(t, entries[1].Pages)
}

func TestReadFeed_AceptaNamespacePorDefecto(t *testing.T) {
	feed := `<ONIXMessage xmlns="http://ns.editeur.org/onix/3.0/reference" release="3.0">
  <Product>
    <DescriptiveDetail>
      <TitleDetail>
        <TitleElement><TitleText>La hojarasca</TitleText></TitleElement>
      </TitleDetail>
    </DescriptiveDetail>
  </Product>
</ONIXMessage>`
	entries, err := onix.NewReader().ReadFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "La hojarasca", entries[0].Title)
}

func TestReadFeed_DescartaProductosSinTitulo(t *testing.T) {
	feed := `<ONIXMessage release="3.0">
  <Product>
    <ProductIdentifier>
      <ProductIDType>15</ProductIDType>
      <IDValue>9789999999999</IDValue>
    </ProductIdentifier>
  </Product>
  <Product>
    <DescriptiveDetail>
      <TitleDetail>
        <TitleElement><TitleText>Relato de un náufrago</TitleText></TitleElement>
      </TitleDetail>
    </DescriptiveDetail>
  </Product>
</ONIXMessage>`
	entries, err := onix.NewReader().ReadFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Relato de un náufrago", entries[0].Title)
}

func TestReadFeed_PrefiereISBNSobreGTIN(t *testing.T) {
	feed := `<ONIXMessage release="3.0">
  <Product>
    <ProductIdentifier>
      <ProductIDType>03</ProductIDType>
      <IDValue>9780000000003</IDValue>
    </ProductIdentifier>
    <ProductIdentifier>
      <ProductIDType>15</ProductIDType>
      <IDValue>9780000000015</IDValue>
    </ProductIdentifier>
    <DescriptiveDetail>
      <TitleDetail>
        <TitleElement><TitleText>Del amor y otros demonios</TitleText></TitleElement>
      </TitleDetail>
    </DescriptiveDetail>
  </Product>
  <Product>
    <ProductIdentifier>
      <ProductIDType>03</ProductIDType>
      <IDValue>9780000000003</IDValue>
    </ProductIdentifier>
    <DescriptiveDetail>
      <TitleDetail>
        <TitleElement><TitleText>Ojos de perro azul</TitleText></TitleElement>
      </TitleDetail>
    </DescriptiveDetail>
  </Product>
</ONIXMessage>`
	entries, err := onix.NewReader().ReadFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "9780000000015", entries[0].ISBN, "con ambos identificadores gana el ISBN-13")
	assert.Equal(t, "9780000000003", entries[1].ISBN, "sin tipo 15 se acepta el GTIN-13")
}

func TestReadFeed_AutorEsElContribuidorA01(t *testing.T) {
	feed := `<ONIXMessage release="3.0">
  <Product>
    <DescriptiveDetail>
      <TitleDetail>
        <TitleElement><TitleText>Crónica de una muerte anunciada</TitleText></TitleElement>
      </TitleDetail>
      <Contributor>
        <ContributorRole>B01</ContributorRole>
        <PersonName>Editora Delgado</PersonName>
      </Contributor>
      <Contributor>
        <ContributorRole>A01</ContributorRole>
        <PersonName>Gabriel García Márquez</PersonName>
      </Contributor>
    </DescriptiveDetail>
  </Product>
</ONIXMessage>`
	entries, err := onix.NewReader().ReadFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Gabriel García Márquez", entries[0].Author)
}

func TestReadFeed_RechazaRaizAjena(t *testing.T) {
	_, err := onix.NewReader().ReadFeed(strings.NewReader(`<Catalogo><Libro/></Catalogo>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raíz inesperada")
}

func TestReadFeed_XMLMalFormado(t *testing.T) {
	_, err := onix.NewReader().ReadFeed(strings.NewReader(`<ONIXMessage><Product>`))
	require.Error(t, err)
}
