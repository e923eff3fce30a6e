package procurement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	appinv "github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/application/procurement"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ciclo de vida de órdenes de compra: alta con costo fijado,
// máquina de estados y recepción con ingreso de stock en una transacción.
//
// Datos base: tarea 1 pendiente, material 2 "Tinta negra" stock 50,
// vínculo #12 (material 2, proveedor 100) a 5.00.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_FijaElCostoALaCreacion(t *testing.T) {
	f := buildFixture(t)
	uc := f.purchaseUC()

	created, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		TaskID: 1, LinkID: 12, Quantity: dec("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseStatusToPurchase), created.Status)
	assert.True(t, dec("100.00").Equal(created.TotalCost), "20 x 5.00 = 100.00")
	assert.Equal(t, "Tinta negra", created.MaterialName)
	assert.Equal(t, "Papeles del Sur", created.SupplierName)

	// Subir el precio del vínculo no toca órdenes ya creadas.
	f.links.items[12].UnitPrice = dec("9.99")
	stored, err := f.purchases.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, dec("100.00").Equal(stored.TotalCost), "el costo quedó fijado al precio vigente en el alta")
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	f := buildFixture(t)
	uc := f.purchaseUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreatePurchaseRequest{TaskID: 1, LinkID: 12, Quantity: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(ctx, dto.CreatePurchaseRequest{TaskID: 99, LinkID: 12, Quantity: dec("5")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "tarea inexistente")

	_, err = uc.Create(ctx, dto.CreatePurchaseRequest{TaskID: 1, LinkID: 99, Quantity: dec("5")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "vínculo inexistente")

	f.tasks.items[1].Status = entity.TaskStatusCancelled
	_, err = uc.Create(ctx, dto.CreatePurchaseRequest{TaskID: 1, LinkID: 12, Quantity: dec("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tarea cancelada no admite compras")

	assert.Empty(t, f.purchases.items)
}

func TestUpdateStatus_MaquinaDeEstados(t *testing.T) {
	cases := []struct {
		name       string
		from       entity.PurchaseStatus
		to         string
		ok         bool
		validation bool // true cuando el rechazo es por estado desconocido
	}{
		{"pendiente a ordenada", entity.PurchaseStatusToPurchase, "ordered", true, false},
		{"pendiente a cancelada", entity.PurchaseStatusToPurchase, "cancelled", true, false},
		{"ordenada a cancelada", entity.PurchaseStatusOrdered, "cancelled", true, false},
		{"ordenada no vuelve a pendiente", entity.PurchaseStatusOrdered, "to_purchase", false, false},
		{"cancelada es terminal", entity.PurchaseStatusCancelled, "ordered", false, false},
		{"recibida es terminal", entity.PurchaseStatusReceived, "cancelled", false, false},
		{"pendiente no llega a recibida por aquí", entity.PurchaseStatusToPurchase, "received", false, false},
		{"ordenada tampoco llega a recibida", entity.PurchaseStatusOrdered, "received", false, false},
		{"estado desconocido", entity.PurchaseStatusToPurchase, "paid", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := buildFixture(t)
			purchaseID := f.seedPurchase(tc.from)

			resp, err := f.purchaseUC().UpdateStatus(context.Background(), purchaseID, tc.to)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, resp.Status)
				return
			}
			require.Error(t, err)
			if tc.validation {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			var transition *domain.StateTransitionError
			assert.ErrorAs(t, err, &transition)
			stored, _ := f.purchases.GetByID(purchaseID)
			assert.Equal(t, tc.from, stored.Status, "el estado no debe cambiar ante un rechazo")
		})
	}
}

func TestReceive_IngresaStockYMarcaRecibida(t *testing.T) {
	f := buildFixture(t)
	purchaseID := f.seedPurchase(entity.PurchaseStatusToPurchase)

	resp, err := f.purchaseUC().Receive(context.Background(), purchaseID, 7, "")
	require.NoError(t, err)

	assert.Equal(t, string(entity.PurchaseStatusReceived), resp.Purchase.Status)
	assert.True(t, dec("70").Equal(resp.NewQuantity), "50 en stock + 20 recibidos")
	assert.Positive(t, resp.LogID)
	assert.NotEmpty(t, resp.Purchase.ReceiptDate)

	assert.True(t, dec("70").Equal(f.materials.items[2].Quantity))
	stored, _ := f.purchases.GetByID(purchaseID)
	assert.Equal(t, entity.PurchaseStatusReceived, stored.Status)
	require.NotNil(t, stored.ReceiptDate)

	require.Len(t, f.logs.entries, 1, "la recepción deja exactamente un asiento")
	entry := f.logs.entries[0]
	assert.Equal(t, int64(2), entry.MaterialID)
	assert.True(t, dec("20").Equal(entry.Delta))
	assert.Equal(t, entity.StockKindIn, entry.Kind)
	assert.Equal(t, "purchase:1", entry.Reference)
	assert.Equal(t, int64(7), entry.OperatorID)
}

func TestReceive_SoloDesdePendiente(t *testing.T) {
	for _, from := range []entity.PurchaseStatus{
		entity.PurchaseStatusOrdered,
		entity.PurchaseStatusReceived,
		entity.PurchaseStatusCancelled,
	} {
		t.Run(string(from), func(t *testing.T) {
			f := buildFixture(t)
			purchaseID := f.seedPurchase(from)

			_, err := f.purchaseUC().Receive(context.Background(), purchaseID, 7, "")
			require.Error(t, err)
			var transition *domain.StateTransitionError
			assert.ErrorAs(t, err, &transition)

			assert.True(t, dec("50").Equal(f.materials.items[2].Quantity), "el stock no debe moverse")
			assert.Empty(t, f.logs.entries)
		})
	}
}

func TestReceive_FechaExplicita(t *testing.T) {
	f := buildFixture(t)
	purchaseID := f.seedPurchase(entity.PurchaseStatusToPurchase)

	resp, err := f.purchaseUC().Receive(context.Background(), purchaseID, 7, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", resp.Purchase.ReceiptDate)
}

func TestReceive_FechaMalFormada(t *testing.T) {
	f := buildFixture(t)
	purchaseID := f.seedPurchase(entity.PurchaseStatusToPurchase)

	_, err := f.purchaseUC().Receive(context.Background(), purchaseID, 7, "30/08/2026")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.logs.entries)
}

func TestPurchaseQuery_PageFiltraPorEstadoYTarea(t *testing.T) {
	f := buildFixture(t)
	f.seedPurchase(entity.PurchaseStatusToPurchase)
	f.seedPurchase(entity.PurchaseStatusOrdered)
	f.seedPurchase(entity.PurchaseStatusToPurchase)

	uc := procurement.NewPurchaseQueryUseCase(f.purchases)

	resp, err := uc.Page(context.Background(), dto.PurchasePageRequest{Status: "to_purchase"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		assert.Equal(t, "to_purchase", item.Status)
	}

	_, err = uc.Page(context.Background(), dto.PurchasePageRequest{Status: "paid"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado de filtro desconocido")

	byTask, err := uc.ListByTask(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, byTask, 3)
}

// ── banco de pruebas ──────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	tasks     *fakeTaskRepo
	materials *fakeMaterialRepo
	links     *fakeLinkRepo
	purchases *fakePurchaseRepo
	logs      *fakeLogRepo
	runner    *fakePurchaseTxRunner
	engine    *appinv.StockUseCase
	log       *logger.Logger
}

func buildFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tasks: &fakeTaskRepo{items: map[int64]*entity.PrintingTask{
			1: {ID: 1, EmployeeID: 1, BookID: 5, Quantity: 100, Status: entity.TaskStatusPending},
		}},
		materials: &fakeMaterialRepo{items: map[int64]*entity.Material{
			2: {ID: 2, Name: "Tinta negra", Unit: "kg", Quantity: dec("50"), SafetyStock: dec("5"), UnitPrice: dec("9.00")},
		}},
		links: &fakeLinkRepo{items: map[int64]*entity.MaterialSupplierView{
			12: {
				MaterialSupplier: entity.MaterialSupplier{ID: 12, MaterialID: 2, SupplierID: 100, UnitPrice: dec("5.00")},
				MaterialName:     "Tinta negra",
				SupplierName:     "Papeles del Sur",
				SupplierStatus:   entity.SupplierStatusActive,
			},
		}},
		logs: &fakeLogRepo{nextID: 1},
		log:  logger.New(logger.Config{Env: "production", Level: "error"}),
	}
	f.purchases = &fakePurchaseRepo{nextID: 1, links: f.links}
	f.runner = &fakePurchaseTxRunner{f: f}
	// Solo se usa ApplyChangesInTx, que trabaja con los repos del caller.
	f.engine = appinv.NewStockUseCase(nil, f.materials)
	return f
}

func (f *fixture) purchaseUC() *procurement.PurchaseUseCase {
	return procurement.NewPurchaseUseCase(f.runner, f.engine, f.purchases, f.links, f.tasks, f.log)
}

// seedPurchase inserta una orden de 20 unidades del vínculo 12 en el estado dado.
func (f *fixture) seedPurchase(status entity.PurchaseStatus) int64 {
	po := &entity.PurchaseOrder{
		TaskID:    1,
		LinkID:    12,
		Quantity:  dec("20"),
		TotalCost: dec("100.00"),
		Status:    status,
		CreatedAt: time.Now(),
	}
	_ = f.purchases.Create(po)
	return po.ID
}

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeTaskRepo struct {
	items map[int64]*entity.PrintingTask
}

func (r *fakeTaskRepo) GetByID(id int64) (*entity.PrintingTask, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) GetForUpdate(id int64) (*entity.PrintingTask, error) { return r.GetByID(id) }

func (r *fakeTaskRepo) GetView(id int64) (*entity.PrintingTaskView, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &entity.PrintingTaskView{PrintingTask: *t}, nil
}

func (r *fakeTaskRepo) Create(t *entity.PrintingTask) error { r.items[t.ID] = t; return nil }

func (r *fakeTaskRepo) UpdateStatus(id int64, status entity.TaskStatus, completedAt *time.Time) error {
	r.items[id].Status = status
	r.items[id].CompletedAt = completedAt
	return nil
}

func (r *fakeTaskRepo) Page(status entity.TaskStatus, limit, offset int) ([]*entity.PrintingTaskView, int, error) {
	return nil, 0, nil
}

func (r *fakeTaskRepo) ListOverdue(today time.Time) ([]*entity.PrintingTaskView, error) {
	return nil, nil
}

type fakeMaterialRepo struct {
	items map[int64]*entity.Material
}

func (r *fakeMaterialRepo) GetByID(id int64) (*entity.Material, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetForUpdate(id int64) (*entity.Material, error) { return r.GetByID(id) }

func (r *fakeMaterialRepo) List(nameKw string) ([]*entity.Material, error) { return nil, nil }

func (r *fakeMaterialRepo) Page(nameKw string, limit, offset int) ([]*entity.Material, int, error) {
	return nil, 0, nil
}

func (r *fakeMaterialRepo) ListBelowSafety() ([]*entity.Material, error) { return nil, nil }

func (r *fakeMaterialRepo) Create(m *entity.Material) error { r.items[m.ID] = m; return nil }
func (r *fakeMaterialRepo) Update(m *entity.Material) error { r.items[m.ID] = m; return nil }

func (r *fakeMaterialRepo) UpdateQuantity(id int64, qty decimal.Decimal) error {
	m, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Quantity = qty
	return nil
}

func (r *fakeMaterialRepo) SetSafetyStock(id int64, qty decimal.Decimal) error {
	r.items[id].SafetyStock = qty
	return nil
}

func (r *fakeMaterialRepo) SetUnitPrice(id int64, price decimal.Decimal) error {
	r.items[id].UnitPrice = price
	return nil
}

type fakeLinkRepo struct {
	items map[int64]*entity.MaterialSupplierView
}

func (r *fakeLinkRepo) GetByID(id int64) (*entity.MaterialSupplier, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := v.MaterialSupplier
	return &cp, nil
}

func (r *fakeLinkRepo) GetView(id int64) (*entity.MaterialSupplierView, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeLinkRepo) ListByMaterial(materialID int64) ([]*entity.MaterialSupplierView, error) {
	return nil, nil
}

func (r *fakeLinkRepo) EligibleByMaterial(materialID int64) ([]*entity.MaterialSupplierView, error) {
	return nil, nil
}

func (r *fakeLinkRepo) ListAll() ([]*entity.MaterialSupplierView, error) { return nil, nil }

func (r *fakeLinkRepo) Create(link *entity.MaterialSupplier) error {
	r.items[link.ID] = &entity.MaterialSupplierView{MaterialSupplier: *link}
	return nil
}

func (r *fakeLinkRepo) Update(link *entity.MaterialSupplier) error {
	r.items[link.ID].MaterialSupplier = *link
	return nil
}

func (r *fakeLinkRepo) Delete(id int64) error { delete(r.items, id); return nil }

type fakePurchaseRepo struct {
	items  []*entity.PurchaseOrder
	nextID int64
	links  *fakeLinkRepo
}

func (r *fakePurchaseRepo) GetByID(id int64) (*entity.PurchaseOrder, error) {
	for _, p := range r.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseRepo) GetForUpdate(id int64) (*entity.PurchaseOrder, error) { return r.GetByID(id) }

func (r *fakePurchaseRepo) GetView(id int64) (*entity.PurchaseOrderView, error) {
	p, _ := r.GetByID(id)
	if p == nil {
		return nil, nil
	}
	return r.toView(p), nil
}

func (r *fakePurchaseRepo) toView(p *entity.PurchaseOrder) *entity.PurchaseOrderView {
	view := &entity.PurchaseOrderView{PurchaseOrder: *p}
	if link := r.links.items[p.LinkID]; link != nil {
		view.MaterialID = link.MaterialID
		view.MaterialName = link.MaterialName
		view.SupplierID = link.SupplierID
		view.SupplierName = link.SupplierName
		view.LinkUnitPrice = link.UnitPrice
	}
	return view
}

func (r *fakePurchaseRepo) Create(p *entity.PurchaseOrder) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakePurchaseRepo) UpdateStatus(id int64, status entity.PurchaseStatus, receiptDate *time.Time) error {
	for _, p := range r.items {
		if p.ID == id {
			p.Status = status
			if receiptDate != nil {
				p.ReceiptDate = receiptDate
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePurchaseRepo) ListByTask(taskID int64) ([]*entity.PurchaseOrderView, error) {
	var out []*entity.PurchaseOrderView
	for _, p := range r.items {
		if p.TaskID == taskID {
			out = append(out, r.toView(p))
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) Page(status entity.PurchaseStatus, taskID int64, limit, offset int) ([]*entity.PurchaseOrderView, int, error) {
	var out []*entity.PurchaseOrderView
	for _, p := range r.items {
		if status != "" && p.Status != status {
			continue
		}
		if taskID != 0 && p.TaskID != taskID {
			continue
		}
		out = append(out, r.toView(p))
	}
	return out, len(out), nil
}

type fakeLogRepo struct {
	entries []*entity.StockLog
	nextID  int64
}

func (r *fakeLogRepo) Create(log *entity.StockLog) error {
	log.ID = r.nextID
	r.nextID++
	cp := *log
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLogRepo) ListByMaterial(materialID int64, limit int) ([]*entity.StockLogView, error) {
	return nil, nil
}

func (r *fakeLogRepo) Search(f repository.StockLogFilter) ([]*entity.StockLogView, error) {
	return nil, nil
}

// fakePurchaseTxRunner simula la transacción de recepción: instantánea de
// compras, materiales y asientos; restauración completa ante error.
type fakePurchaseTxRunner struct {
	f *fixture
}

func (tx *fakePurchaseTxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseOrderRepository,
	linkRepo repository.MaterialSupplierRepository,
	materialRepo repository.MaterialRepository,
	logRepo repository.StockLogRepository,
) error) error {
	snapPurchases := make([]*entity.PurchaseOrder, len(tx.f.purchases.items))
	for i, p := range tx.f.purchases.items {
		cp := *p
		snapPurchases[i] = &cp
	}
	snapMats := make(map[int64]entity.Material, len(tx.f.materials.items))
	for id, m := range tx.f.materials.items {
		snapMats[id] = *m
	}
	snapLogs := len(tx.f.logs.entries)

	err := fn(tx.f.purchases, tx.f.links, tx.f.materials, tx.f.logs)
	if err != nil {
		tx.f.purchases.items = snapPurchases
		tx.f.materials.items = make(map[int64]*entity.Material, len(snapMats))
		for id := range snapMats {
			m := snapMats[id]
			tx.f.materials.items[id] = &m
		}
		tx.f.logs.entries = tx.f.logs.entries[:snapLogs]
	}
	return err
}

var (
	_ procurement.PurchaseTxRunner          = (*fakePurchaseTxRunner)(nil)
	_ repository.PrintingTaskRepository     = (*fakeTaskRepo)(nil)
	_ repository.MaterialRepository         = (*fakeMaterialRepo)(nil)
	_ repository.MaterialSupplierRepository = (*fakeLinkRepo)(nil)
	_ repository.PurchaseOrderRepository    = (*fakePurchaseRepo)(nil)
	_ repository.StockLogRepository         = (*fakeLogRepo)(nil)
)
