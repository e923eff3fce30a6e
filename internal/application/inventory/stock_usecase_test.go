package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de stock: lotes atómicos sobre repositorios en memoria con
// un TxRunner falso que simula Commit/Rollback restaurando el estado previo
// cuando la función transaccional devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyChanges_LoteAplicaTodosLosItems(t *testing.T) {
	mats := newFakeMaterialRepo(
		seedMaterial(1, "Papel bond", "100", "20"),
		seedMaterial(2, "Tinta negra", "50", "5"),
	)
	logs := newFakeLogRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, logs), mats)

	results, err := uc.ApplyChanges(context.Background(), 7, []inventory.StockChangeInput{
		{MaterialID: 1, Delta: dec("-30"), Reference: "task:9"},
		{MaterialID: 2, Delta: dec("12.5"), Reference: "purchase:4"},
	})
	require.NoError(t, err, "un lote válido debe aplicarse completo")
	require.Len(t, results, 2)

	assert.True(t, dec("70").Equal(results[0].NewQuantity), "1: 100 - 30 = 70")
	assert.True(t, dec("62.5").Equal(results[1].NewQuantity), "2: 50 + 12.5 = 62.5")
	assert.True(t, dec("70").Equal(mats.items[1].Quantity))
	assert.True(t, dec("62.5").Equal(mats.items[2].Quantity))

	require.Len(t, logs.entries, 2, "cada variación deja exactamente un asiento")
	assert.Equal(t, entity.StockKindOut, logs.entries[0].Kind, "delta negativo sin kind se asienta como salida")
	assert.Equal(t, entity.StockKindIn, logs.entries[1].Kind, "delta positivo sin kind se asienta como entrada")
	assert.Equal(t, logs.entries[0].BatchID, logs.entries[1].BatchID, "los asientos del lote comparten batch_id")
	assert.Equal(t, int64(7), logs.entries[0].OperatorID)
	assert.Equal(t, results[0].LogID, logs.entries[0].ID)
}

func TestApplyChanges_InsuficienteRevierteElLoteEntero(t *testing.T) {
	mats := newFakeMaterialRepo(
		seedMaterial(1, "Papel bond", "100", "20"),
		seedMaterial(2, "Tinta negra", "10", "5"),
	)
	logs := newFakeLogRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, logs), mats)

	// El primer ítem alcanza, el segundo no: nada debe quedar aplicado.
	results, err := uc.ApplyChanges(context.Background(), 7, []inventory.StockChangeInput{
		{MaterialID: 1, Delta: dec("-30")},
		{MaterialID: 2, Delta: dec("-15")},
	})
	require.Error(t, err)
	assert.Nil(t, results)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient, "el error debe detallar el material insuficiente")
	assert.Equal(t, int64(2), insufficient.MaterialID)
	assert.True(t, dec("15").Equal(insufficient.Required))
	assert.True(t, dec("10").Equal(insufficient.Available))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, dec("100").Equal(mats.items[1].Quantity), "el rollback restaura el primer material")
	assert.True(t, dec("10").Equal(mats.items[2].Quantity))
	assert.Empty(t, logs.entries, "un lote revertido no deja asientos")
}

func TestApplyChanges_MaterialInexistenteRevierte(t *testing.T) {
	mats := newFakeMaterialRepo(seedMaterial(1, "Papel bond", "100", "20"))
	logs := newFakeLogRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, logs), mats)

	_, err := uc.ApplyChanges(context.Background(), 7, []inventory.StockChangeInput{
		{MaterialID: 1, Delta: dec("-30")},
		{MaterialID: 99, Delta: dec("5")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, dec("100").Equal(mats.items[1].Quantity), "nada queda aplicado si un material no existe")
	assert.Empty(t, logs.entries)
}

func TestApplyChanges_ExactamenteACeroEsValido(t *testing.T) {
	mats := newFakeMaterialRepo(seedMaterial(1, "Papel bond", "30", "20"))
	logs := newFakeLogRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, logs), mats)

	results, err := uc.ApplyChanges(context.Background(), 7, []inventory.StockChangeInput{
		{MaterialID: 1, Delta: dec("-30")},
	})
	require.NoError(t, err, "dejar la existencia exactamente en cero es legal")
	assert.True(t, results[0].NewQuantity.IsZero())
}

func TestApplyChanges_ValidacionesDeLote(t *testing.T) {
	mats := newFakeMaterialRepo(seedMaterial(1, "Papel bond", "100", "20"))
	logs := newFakeLogRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, logs), mats)

	cases := []struct {
		name    string
		changes []inventory.StockChangeInput
	}{
		{"lote vacío", nil},
		{"delta cero", []inventory.StockChangeInput{{MaterialID: 1, Delta: decimal.Zero}}},
		{"material_id faltante", []inventory.StockChangeInput{{Delta: dec("5")}}},
		{"kind desconocido", []inventory.StockChangeInput{{MaterialID: 1, Delta: dec("5"), Kind: "transfer"}}},
		{"entrada con delta negativo", []inventory.StockChangeInput{{MaterialID: 1, Delta: dec("-5"), Kind: entity.StockKindIn}}},
		{"salida con delta positivo", []inventory.StockChangeInput{{MaterialID: 1, Delta: dec("5"), Kind: entity.StockKindOut}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyChanges(context.Background(), 7, tc.changes)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "debe rechazarse antes de abrir la transacción")
		})
	}
	assert.Empty(t, logs.entries, "las validaciones no tocan el libro")
}

func TestApplyChanges_AjusteConservaKindExplicito(t *testing.T) {
	mats := newFakeMaterialRepo(seedMaterial(1, "Papel bond", "100", "20"))
	logs := newFakeLogRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, logs), mats)

	_, err := uc.ApplyChanges(context.Background(), 7, []inventory.StockChangeInput{
		{MaterialID: 1, Delta: dec("-2.75"), Kind: entity.StockKindAdjust, Note: "merma de bodega"},
	})
	require.NoError(t, err)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, entity.StockKindAdjust, logs.entries[0].Kind, "un ajuste explícito no se reescribe por signo")
	assert.Equal(t, "merma de bodega", logs.entries[0].Note)
}

func TestUpdateLevel_VariacionSuelta(t *testing.T) {
	mats := newFakeMaterialRepo(seedMaterial(1, "Papel bond", "100", "20"))
	logs := newFakeLogRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, logs), mats)

	res, err := uc.UpdateLevel(context.Background(), 3, inventory.StockChangeInput{
		MaterialID: 1, Delta: dec("25"), Reference: "purchase:8",
	})
	require.NoError(t, err)
	assert.True(t, dec("125").Equal(res.NewQuantity))
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "purchase:8", logs.entries[0].Reference)
}

func TestSetSafetyStock_RechazaNegativo(t *testing.T) {
	mats := newFakeMaterialRepo(seedMaterial(1, "Papel bond", "100", "20"))
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, newFakeLogRepo()), mats)

	_, err := uc.SetSafetyStock(context.Background(), 1, dec("-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, dec("20").Equal(mats.items[1].SafetyStock), "el umbral no debe cambiar")
}

func TestSetSafetyStock_Actualiza(t *testing.T) {
	mats := newFakeMaterialRepo(seedMaterial(1, "Papel bond", "100", "20"))
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, newFakeLogRepo()), mats)

	m, err := uc.SetSafetyStock(context.Background(), 1, dec("35"))
	require.NoError(t, err)
	assert.True(t, dec("35").Equal(m.SafetyStock))
	assert.True(t, dec("35").Equal(mats.items[1].SafetyStock))
}

func TestSetUnitPrice_MaterialInexistente(t *testing.T) {
	mats := newFakeMaterialRepo()
	uc := inventory.NewStockUseCase(newFakeTxRunner(mats, newFakeLogRepo()), mats)

	_, err := uc.SetUnitPrice(context.Background(), 42, dec("3.50"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── fakes ─────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedMaterial(id int64, name, qty, safety string) *entity.Material {
	return &entity.Material{
		ID:          id,
		Name:        name,
		Unit:        "unidad",
		Quantity:    dec(qty),
		SafetyStock: dec(safety),
		UnitPrice:   dec("1.00"),
	}
}

// fakeMaterialRepo repositorio de materiales en memoria.
type fakeMaterialRepo struct {
	items map[int64]*entity.Material
}

func newFakeMaterialRepo(seed ...*entity.Material) *fakeMaterialRepo {
	r := &fakeMaterialRepo{items: make(map[int64]*entity.Material)}
	for _, m := range seed {
		r.items[m.ID] = m
	}
	return r
}

func (r *fakeMaterialRepo) GetByID(id int64) (*entity.Material, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetForUpdate(id int64) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *fakeMaterialRepo) List(nameKw string) ([]*entity.Material, error) {
	out := make([]*entity.Material, 0, len(r.items))
	for _, m := range r.items {
		if nameKw == "" || strings.Contains(m.Name, nameKw) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMaterialRepo) Page(nameKw string, limit, offset int) ([]*entity.Material, int, error) {
	all, _ := r.List(nameKw)
	return all, len(all), nil
}

func (r *fakeMaterialRepo) ListBelowSafety() ([]*entity.Material, error) {
	out := []*entity.Material{}
	for _, m := range r.items {
		if m.BelowSafety() {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	m.ID = int64(len(r.items) + 1)
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) Update(m *entity.Material) error {
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) UpdateQuantity(id int64, qty decimal.Decimal) error {
	m, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Quantity = qty
	return nil
}

func (r *fakeMaterialRepo) SetSafetyStock(id int64, qty decimal.Decimal) error {
	m, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.SafetyStock = qty
	return nil
}

func (r *fakeMaterialRepo) SetUnitPrice(id int64, price decimal.Decimal) error {
	m, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.UnitPrice = price
	return nil
}

// fakeLogRepo libro de variaciones en memoria.
type fakeLogRepo struct {
	entries []*entity.StockLog
	nextID  int64
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{nextID: 1}
}

func (r *fakeLogRepo) Create(log *entity.StockLog) error {
	log.ID = r.nextID
	r.nextID++
	cp := *log
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLogRepo) ListByMaterial(materialID int64, limit int) ([]*entity.StockLogView, error) {
	out := []*entity.StockLogView{}
	for _, l := range r.entries {
		if l.MaterialID == materialID && len(out) < limit {
			out = append(out, &entity.StockLogView{StockLog: *l})
		}
	}
	return out, nil
}

func (r *fakeLogRepo) Search(f repository.StockLogFilter) ([]*entity.StockLogView, error) {
	out := []*entity.StockLogView{}
	for _, l := range r.entries {
		if f.MaterialID != 0 && l.MaterialID != f.MaterialID {
			continue
		}
		if f.ReferenceKw != "" && !strings.Contains(l.Reference, f.ReferenceKw) {
			continue
		}
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
		out = append(out, &entity.StockLogView{StockLog: *l})
	}
	return out, nil
}

// fakeTxRunner simula la transacción: toma una instantánea del estado y la
// restaura si la función devuelve error (Rollback), o la descarta si no (Commit).
type fakeTxRunner struct {
	mats *fakeMaterialRepo
	logs *fakeLogRepo
}

func newFakeTxRunner(mats *fakeMaterialRepo, logs *fakeLogRepo) *fakeTxRunner {
	return &fakeTxRunner{mats: mats, logs: logs}
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	logRepo repository.StockLogRepository,
) error) error {
	snapshot := make(map[int64]entity.Material, len(tx.mats.items))
	for id, m := range tx.mats.items {
		snapshot[id] = *m
	}
	logCount := len(tx.logs.entries)

	if err := fn(tx.mats, tx.logs); err != nil {
		for id := range tx.mats.items {
			m := snapshot[id]
			tx.mats.items[id] = &m
		}
		tx.logs.entries = tx.logs.entries[:logCount]
		return err
	}
	return nil
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)
var _ repository.MaterialRepository = (*fakeMaterialRepo)(nil)
var _ repository.StockLogRepository = (*fakeLogRepo)(nil)
