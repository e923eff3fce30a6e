package printing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/editorial-api/internal/domain"
)

// FactorTable resuelve los factores de consumo de material por unidad impresa
// de un libro. Es un puerto: la tabla fija de abajo es la implementación por
// defecto, pero puede sustituirse por una tabla por libro sin tocar el flujo
// de tareas.
type FactorTable interface {
	Factors(bookID int64) ([]Factor, error)
}

// Factor consumo de un material por unidad impresa.
type Factor struct {
	MaterialID int64
	PerUnit    decimal.Decimal
}

// Requirement necesidad total de un material para una tarea.
type Requirement struct {
	MaterialID int64
	Quantity   decimal.Decimal
}

// IDs de material de la tabla fija.
const (
	PaperMaterialID int64 = 1
	InkMaterialID   int64 = 2
)

// FixedFactorTable tabla de consumo fija del taller: cada unidad impresa
// consume 0.5 de papel (material 1) y 0.1 de tinta (material 2), sin importar
// el libro.
type FixedFactorTable struct{}

// NewFixedFactorTable construye la tabla fija.
func NewFixedFactorTable() FixedFactorTable { return FixedFactorTable{} }

// Factors devuelve los factores fijos; bookID se ignora a propósito.
func (FixedFactorTable) Factors(bookID int64) ([]Factor, error) {
	return []Factor{
		{MaterialID: PaperMaterialID, PerUnit: decimal.NewFromFloat(0.5)},
		{MaterialID: InkMaterialID, PerUnit: decimal.NewFromFloat(0.1)},
	}, nil
}

// CalculateRequirements multiplica los factores del libro por la cantidad a
// imprimir. El resultado viene ordenado por id de material para que los flujos
// que lo consumen (compras, descuentos de stock) sean deterministas.
func CalculateRequirements(table FactorTable, bookID int64, quantity int) ([]Requirement, error) {
	if quantity <= 0 {
		return nil, domain.NewValidation("quantity", "la cantidad a imprimir debe ser mayor que cero")
	}
	factors, err := table.Factors(bookID)
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(int64(quantity))
	reqs := make([]Requirement, 0, len(factors))
	for _, f := range factors {
		total := qty.Mul(f.PerUnit)
		if total.IsZero() {
			continue
		}
		reqs = append(reqs, Requirement{MaterialID: f.MaterialID, Quantity: total})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].MaterialID < reqs[j].MaterialID })
	return reqs, nil
}
