package procurement

import "github.com/jhoicas/editorial-api/internal/domain/entity"

// SelectOptimal elige el mejor vínculo material-proveedor entre los candidatos:
// gana el preferido; entre preferidos (o si no hay ninguno, entre todos) gana
// el menor precio; a igual precio gana el menor id de vínculo. Los candidatos
// deben venir ya acotados a proveedores en cooperación. Devuelve nil si la
// lista está vacía (servicio de dominio, sin I/O).
func SelectOptimal(candidates []*entity.MaterialSupplierView) *entity.MaterialSupplierView {
	var best *entity.MaterialSupplierView
	for _, c := range candidates {
		if best == nil || beats(c, best) {
			best = c
		}
	}
	return best
}

// beats decide si a desplaza a b en el ranking de selección.
func beats(a, b *entity.MaterialSupplierView) bool {
	if a.Preferred != b.Preferred {
		return a.Preferred
	}
	if !a.UnitPrice.Equal(b.UnitPrice) {
		return a.UnitPrice.LessThan(b.UnitPrice)
	}
	return a.ID < b.ID
}
