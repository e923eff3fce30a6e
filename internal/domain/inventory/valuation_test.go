package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/inventory"
)

func mat(qty, safety, price string) *entity.Material {
	return &entity.Material{
		Quantity:    decimal.RequireFromString(qty),
		SafetyStock: decimal.RequireFromString(safety),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestAlertSeverity_Clasificacion(t *testing.T) {
	casos := []struct {
		nombre   string
		material *entity.Material
		esperado string
	}{
		{"existencia sana no alerta", mat("100", "20", "1"), ""},
		{"en el umbral exacto es WARNING", mat("20", "20", "1"), inventory.AlertWarning},
		{"bajo el umbral es WARNING", mat("5", "20", "1"), inventory.AlertWarning},
		{"agotado es CRITICAL", mat("0", "20", "1"), inventory.AlertCritical},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, inventory.AlertSeverity(c.material))
		})
	}
}

func TestSummarize_ValorYConteos(t *testing.T) {
	materials := []*entity.Material{
		mat("100", "20", "3.50"), // 350.00, sano
		mat("10", "20", "12.25"), // 122.50, bajo umbral
		mat("0", "5", "80"),      // 0, agotado (también cuenta como bajo umbral)
	}

	s := inventory.Summarize(materials)

	assert.Equal(t, 3, s.TotalMaterials)
	assert.True(t, s.TotalValue.Equal(decimal.RequireFromString("472.50")),
		"valor total = 350 + 122.50 + 0, redondeado a 2: obtuve %s", s.TotalValue)
	assert.Equal(t, 2, s.LowStockCount, "bajo umbral: el de 10/20 y el agotado")
	assert.Equal(t, 1, s.OutOfStock)
}

func TestSummarize_Vacio(t *testing.T) {
	s := inventory.Summarize(nil)
	assert.Equal(t, 0, s.TotalMaterials)
	assert.True(t, s.TotalValue.IsZero())
}
