package printing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/printing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del cálculo de necesidades: tabla fija 0.5 de papel y 0.1 de tinta
// por unidad impresa, resultado determinista ordenado por material.
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateRequirements_TablaFija(t *testing.T) {
	reqs, err := printing.CalculateRequirements(printing.NewFixedFactorTable(), 5, 100)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, printing.PaperMaterialID, reqs[0].MaterialID)
	assert.True(t, decimal.RequireFromString("50").Equal(reqs[0].Quantity), "100 unidades x 0.5 = 50 de papel")
	assert.Equal(t, printing.InkMaterialID, reqs[1].MaterialID)
	assert.True(t, decimal.RequireFromString("10").Equal(reqs[1].Quantity), "100 unidades x 0.1 = 10 de tinta")
}

func TestCalculateRequirements_CantidadPequenaSinPerdida(t *testing.T) {
	// 3 x 0.1 debe ser exactamente 0.3, sin ruido binario de float.
	reqs, err := printing.CalculateRequirements(printing.NewFixedFactorTable(), 1, 3)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.True(t, decimal.RequireFromString("1.5").Equal(reqs[0].Quantity))
	assert.True(t, decimal.RequireFromString("0.3").Equal(reqs[1].Quantity))
}

func TestCalculateRequirements_CantidadInvalida(t *testing.T) {
	for _, qty := range []int{0, -5} {
		_, err := printing.CalculateRequirements(printing.NewFixedFactorTable(), 1, qty)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCalculateRequirements_TablaAlternativaOrdenada(t *testing.T) {
	table := factorTableFunc(func(bookID int64) ([]printing.Factor, error) {
		// Desordenada a propósito: el cálculo debe devolverla ordenada por material.
		return []printing.Factor{
			{MaterialID: 9, PerUnit: decimal.RequireFromString("0.2")},
			{MaterialID: 3, PerUnit: decimal.RequireFromString("1")},
		}, nil
	})

	reqs, err := printing.CalculateRequirements(table, 1, 10)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, int64(3), reqs[0].MaterialID)
	assert.Equal(t, int64(9), reqs[1].MaterialID)
}

func TestCalculateRequirements_FactorCeroSeOmite(t *testing.T) {
	table := factorTableFunc(func(bookID int64) ([]printing.Factor, error) {
		return []printing.Factor{
			{MaterialID: 1, PerUnit: decimal.Zero},
			{MaterialID: 2, PerUnit: decimal.RequireFromString("0.1")},
		}, nil
	})

	reqs, err := printing.CalculateRequirements(table, 1, 10)
	require.NoError(t, err)
	require.Len(t, reqs, 1, "un factor cero no genera necesidad ni orden de compra")
	assert.Equal(t, int64(2), reqs[0].MaterialID)
}

// ── helper ────────────────────────────────────────────────────────────────────

// factorTableFunc adapta una función a FactorTable para los tests.
type factorTableFunc func(bookID int64) ([]printing.Factor, error)

func (f factorTableFunc) Factors(bookID int64) ([]printing.Factor, error) { return f(bookID) }
