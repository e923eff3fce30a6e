package procurement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/procurement"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ranking de selección de proveedor: preferido > menor precio >
// menor id de vínculo. El orden de llegada de los candidatos no debe importar.
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectOptimal_PreferidoGanaAunqueSeaMasCaro(t *testing.T) {
	cheap := candidate(1, 10, "2.00", false)
	preferred := candidate(2, 20, "5.00", true)

	best := procurement.SelectOptimal([]*entity.MaterialSupplierView{cheap, preferred})
	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID, "el preferido gana aunque otro sea más barato")
}

func TestSelectOptimal_EntrePreferidosGanaElMasBarato(t *testing.T) {
	p1 := candidate(1, 10, "5.00", true)
	p2 := candidate(2, 20, "3.50", true)
	cheapest := candidate(3, 30, "1.00", false)

	best := procurement.SelectOptimal([]*entity.MaterialSupplierView{p1, p2, cheapest})
	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID, "entre preferidos decide el precio, no el resto")
}

func TestSelectOptimal_SinPreferidosGanaElMasBarato(t *testing.T) {
	a := candidate(1, 10, "4.00", false)
	b := candidate(2, 20, "2.75", false)

	best := procurement.SelectOptimal([]*entity.MaterialSupplierView{a, b})
	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)
}

func TestSelectOptimal_EmpateDePrecioGanaMenorID(t *testing.T) {
	first := candidate(7, 10, "3.00", false)
	second := candidate(4, 20, "3.00", false)

	// El orden de entrada no debe afectar el resultado.
	best := procurement.SelectOptimal([]*entity.MaterialSupplierView{first, second})
	require.NotNil(t, best)
	assert.Equal(t, int64(4), best.ID, "a igual precio gana el vínculo de menor id")

	best = procurement.SelectOptimal([]*entity.MaterialSupplierView{second, first})
	require.NotNil(t, best)
	assert.Equal(t, int64(4), best.ID, "el resultado es determinista ante reordenamientos")
}

func TestSelectOptimal_SinCandidatosDevuelveNil(t *testing.T) {
	assert.Nil(t, procurement.SelectOptimal(nil))
	assert.Nil(t, procurement.SelectOptimal([]*entity.MaterialSupplierView{}))
}

// ── helper ────────────────────────────────────────────────────────────────────

func candidate(linkID, supplierID int64, price string, preferred bool) *entity.MaterialSupplierView {
	return &entity.MaterialSupplierView{
		MaterialSupplier: entity.MaterialSupplier{
			ID:         linkID,
			MaterialID: 1,
			SupplierID: supplierID,
			UnitPrice:  decimal.RequireFromString(price),
			Preferred:  preferred,
		},
		SupplierStatus: entity.SupplierStatusActive,
	}
}
