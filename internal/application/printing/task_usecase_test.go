package printing_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	appinv "github.com/jhoicas/editorial-api/internal/application/inventory"
	appprinting "github.com/jhoicas/editorial-api/internal/application/printing"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/printing"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del flujo de tareas sobre repositorios en memoria: alta transaccional
// con generación de compras, máquina de estados y completación con descuento
// de material. El TxRunner falso restaura el estado previo cuando la función
// transaccional falla, igual que un Rollback real.
//
// Datos base del banco de pruebas:
//   empleado 1 "Ana Torres" (activo), libro 5 "Cien años de soledad"
//   material 1 "Papel bond" stock 100, material 2 "Tinta negra" stock 50
//   vínculos papel: #10 a 2.50 (no preferido), #11 a 5.00 (preferido)
//   vínculo tinta:  #12 a 8.00
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitTask_CreaTareaYOrdenesJuntas(t *testing.T) {
	f := buildFixture(t)
	uc := f.submitUC()

	resp, err := uc.SubmitTask(context.Background(), dto.SubmitTaskRequest{
		EmployeeID: 1, BookID: 5, Quantity: 100, DueDate: futureDate(30),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, string(entity.TaskStatusPending), resp.Task.Status)
	assert.Equal(t, "Ana Torres", resp.Task.EmployeeName)
	assert.Equal(t, "Cien años de soledad", resp.Task.BookTitle)
	require.Len(t, f.tasks.items, 1, "la tarea debe quedar persistida")

	// 100 ejemplares: 50 de papel y 10 de tinta, cada uno con su orden.
	require.Len(t, resp.Purchases, 2)
	byMaterial := map[int64]dto.PurchaseOrderDTO{}
	for _, p := range resp.Purchases {
		byMaterial[p.MaterialID] = p
	}

	paper := byMaterial[1]
	assert.Equal(t, int64(11), paper.LinkID, "el vínculo preferido gana aunque el otro sea más barato")
	assert.True(t, dec("50").Equal(paper.Quantity))
	assert.True(t, dec("250.00").Equal(paper.TotalCost), "50 x 5.00 = 250.00 fijado a la creación")
	assert.Equal(t, string(entity.PurchaseStatusToPurchase), paper.Status)

	ink := byMaterial[2]
	assert.Equal(t, int64(12), ink.LinkID)
	assert.True(t, dec("10").Equal(ink.Quantity))
	assert.True(t, dec("80.00").Equal(ink.TotalCost), "10 x 8.00 = 80.00")

	require.Len(t, f.purchases.items, 2, "las órdenes deben quedar persistidas con la tarea")
	assert.Equal(t, resp.Task.ID, f.purchases.items[0].TaskID)
}

func TestSubmitTask_SinProveedorRevierteTodo(t *testing.T) {
	f := buildFixture(t)
	f.links.removeByMaterial(2) // la tinta se queda sin proveedores

	_, err := f.submitUC().SubmitTask(context.Background(), dto.SubmitTaskRequest{
		EmployeeID: 1, BookID: 5, Quantity: 100, DueDate: futureDate(30),
	})
	require.Error(t, err)

	var noSupplier *domain.NoSupplierError
	require.ErrorAs(t, err, &noSupplier)
	require.Len(t, noSupplier.Materials, 1)
	assert.Equal(t, int64(2), noSupplier.Materials[0].ID)
	assert.Contains(t, err.Error(), "Tinta negra (ID:2)")

	assert.Empty(t, f.tasks.items, "la tarea no debe sobrevivir al rollback")
	assert.Empty(t, f.purchases.items, "ninguna orden debe sobrevivir al rollback")
}

func TestSubmitTask_AcumulaTodosLosMaterialesSinProveedor(t *testing.T) {
	f := buildFixture(t)
	f.links.removeByMaterial(1)
	f.links.removeByMaterial(2)

	_, err := f.submitUC().SubmitTask(context.Background(), dto.SubmitTaskRequest{
		EmployeeID: 1, BookID: 5, Quantity: 10, DueDate: futureDate(10),
	})
	require.Error(t, err)

	var noSupplier *domain.NoSupplierError
	require.ErrorAs(t, err, &noSupplier)
	assert.Len(t, noSupplier.Materials, 2, "el error debe enumerar todos los materiales, no solo el primero")
	assert.Contains(t, err.Error(), "Papel bond (ID:1)")
	assert.Contains(t, err.Error(), "Tinta negra (ID:2)")
}

func TestSubmitTask_Validaciones(t *testing.T) {
	f := buildFixture(t)
	uc := f.submitUC()

	base := dto.SubmitTaskRequest{EmployeeID: 1, BookID: 5, Quantity: 100, DueDate: futureDate(5)}

	cases := []struct {
		name   string
		mutate func(*dto.SubmitTaskRequest)
		target error
	}{
		{"cantidad cero", func(r *dto.SubmitTaskRequest) { r.Quantity = 0 }, domain.ErrInvalidInput},
		{"cantidad negativa", func(r *dto.SubmitTaskRequest) { r.Quantity = -3 }, domain.ErrInvalidInput},
		{"fecha mal formada", func(r *dto.SubmitTaskRequest) { r.DueDate = "31-12-2026" }, domain.ErrInvalidInput},
		{"fecha en el pasado", func(r *dto.SubmitTaskRequest) { r.DueDate = "2020-01-01" }, domain.ErrInvalidInput},
		{"empleado inexistente", func(r *dto.SubmitTaskRequest) { r.EmployeeID = 99 }, domain.ErrNotFound},
		{"libro inexistente", func(r *dto.SubmitTaskRequest) { r.BookID = 99 }, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := uc.SubmitTask(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
		})
	}

	assert.Empty(t, f.tasks.items, "ninguna validación fallida debe crear tareas")
}

func TestSubmitTask_EmpleadoFueraDePlantilla(t *testing.T) {
	f := buildFixture(t)
	f.employees.items[1].Status = entity.EmployeeStatusInactive

	_, err := f.submitUC().SubmitTask(context.Background(), dto.SubmitTaskRequest{
		EmployeeID: 1, BookID: 5, Quantity: 10, DueDate: futureDate(5),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompleteTask_DescuentaYCompleta(t *testing.T) {
	f := buildFixture(t)
	taskID := f.seedTask(100, entity.TaskStatusPending)

	resp, err := f.statusUC().Complete(context.Background(), taskID, 7, "")
	require.NoError(t, err)
	assert.Equal(t, string(entity.TaskStatusCompleted), resp.Status)
	assert.NotEmpty(t, resp.CompletedAt)

	// 100 ejemplares: -50 de papel (100->50) y -10 de tinta (50->40).
	assert.True(t, dec("50").Equal(f.materials.items[1].Quantity))
	assert.True(t, dec("40").Equal(f.materials.items[2].Quantity))
	assert.Equal(t, entity.TaskStatusCompleted, f.tasks.items[taskID].Status)
	require.NotNil(t, f.tasks.items[taskID].CompletedAt)

	require.Len(t, f.logs.entries, 2, "cada material descontado deja su asiento")
	sort.Slice(f.logs.entries, func(i, j int) bool {
		return f.logs.entries[i].MaterialID < f.logs.entries[j].MaterialID
	})
	paperLog, inkLog := f.logs.entries[0], f.logs.entries[1]
	assert.Equal(t, "task:1", paperLog.Reference)
	assert.Equal(t, entity.StockKindOut, paperLog.Kind)
	assert.True(t, dec("-50").Equal(paperLog.Delta))
	assert.True(t, dec("-10").Equal(inkLog.Delta))
	assert.Equal(t, paperLog.BatchID, inkLog.BatchID, "el descuento completo comparte batch")
	assert.Equal(t, int64(7), paperLog.OperatorID)
}

func TestCompleteTask_FaltanteNoMutaNada(t *testing.T) {
	f := buildFixture(t)
	// 300 ejemplares requieren 150 de papel; solo hay 100.
	taskID := f.seedTask(300, entity.TaskStatusInProgress)

	_, err := f.statusUC().Complete(context.Background(), taskID, 7, "")
	require.Error(t, err)

	var shortage *domain.ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Len(t, shortage.Items, 1, "solo el papel está corto (tinta: 30 de 50)")

	item := shortage.Items[0]
	assert.Equal(t, int64(1), item.MaterialID)
	assert.Equal(t, "Papel bond", item.MaterialName)
	assert.True(t, dec("150").Equal(item.Required))
	assert.True(t, dec("100").Equal(item.Available))
	assert.True(t, dec("50").Equal(item.Shortfall))

	assert.True(t, dec("100").Equal(f.materials.items[1].Quantity), "el stock no debe mutar ante faltantes")
	assert.True(t, dec("50").Equal(f.materials.items[2].Quantity))
	assert.Equal(t, entity.TaskStatusInProgress, f.tasks.items[taskID].Status, "el estado tampoco cambia")
	assert.Empty(t, f.logs.entries)
}

func TestCompleteTask_RechazaCanceladaYCompletada(t *testing.T) {
	f := buildFixture(t)
	cancelled := f.seedTask(10, entity.TaskStatusCancelled)
	completed := f.seedTask(10, entity.TaskStatusCompleted)

	for _, taskID := range []int64{cancelled, completed} {
		_, err := f.statusUC().Complete(context.Background(), taskID, 7, "")
		require.Error(t, err)
		var transition *domain.StateTransitionError
		assert.ErrorAs(t, err, &transition, "completar desde estado terminal debe fallar con error de transición")
	}
	assert.Empty(t, f.logs.entries)
}

func TestCompleteTask_FechaExplicita(t *testing.T) {
	f := buildFixture(t)
	taskID := f.seedTask(10, entity.TaskStatusPending)

	resp, err := f.statusUC().Complete(context.Background(), taskID, 7, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", resp.CompletedAt)
}

func TestUpdateStatus_TransicionesGenericas(t *testing.T) {
	f := buildFixture(t)
	uc := f.statusUC()
	ctx := context.Background()

	taskID := f.seedTask(10, entity.TaskStatusPending)

	// pending -> in_progress y de regreso: ambas permitidas.
	resp, err := uc.UpdateStatus(ctx, taskID, 7, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)

	resp, err = uc.UpdateStatus(ctx, taskID, 7, "pending")
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)

	// cancelar y después intentar revivirla: la guardia terminal lo impide.
	_, err = uc.UpdateStatus(ctx, taskID, 7, "cancelled")
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, taskID, 7, "in_progress")
	require.Error(t, err)
	var transition *domain.StateTransitionError
	assert.ErrorAs(t, err, &transition)

	// estado desconocido.
	_, err = uc.UpdateStatus(ctx, taskID, 7, "paused")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_CompletedEnrutaAlFlujoDeCompletar(t *testing.T) {
	f := buildFixture(t)
	taskID := f.seedTask(100, entity.TaskStatusPending)

	resp, err := f.statusUC().UpdateStatus(context.Background(), taskID, 7, "completed")
	require.NoError(t, err)
	assert.Equal(t, string(entity.TaskStatusCompleted), resp.Status)
	assert.NotEmpty(t, f.logs.entries, "llegar a completed por cambio de estado también descuenta material")
	assert.True(t, dec("50").Equal(f.materials.items[1].Quantity))
}

func TestRequirements_ComparaNecesidadContraExistencia(t *testing.T) {
	f := buildFixture(t)
	taskID := f.seedTask(300, entity.TaskStatusPending)

	resp, err := f.queryUC().Requirements(context.Background(), taskID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	paper := resp.Items[0]
	assert.Equal(t, int64(1), paper.MaterialID)
	assert.True(t, dec("150").Equal(paper.Required))
	assert.True(t, dec("100").Equal(paper.Available))
	assert.True(t, dec("50").Equal(paper.Shortfall))

	ink := resp.Items[1]
	assert.True(t, dec("30").Equal(ink.Required))
	assert.True(t, ink.Shortfall.IsZero(), "la tinta alcanza, sin faltante")

	assert.True(t, dec("180").Equal(resp.TotalRequired))
}

// ── banco de pruebas ──────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dto.DateLayout)
}

type fixture struct {
	tasks     *fakeTaskRepo
	materials *fakeMaterialRepo
	links     *fakeLinkRepo
	purchases *fakePurchaseRepo
	logs      *fakeLogRepo
	employees *fakeEmployeeRepo
	books     *fakeBookRepo
	runner    *fakeTaskTxRunner
	engine    *appinv.StockUseCase
	log       *logger.Logger
}

func buildFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		materials: &fakeMaterialRepo{items: map[int64]*entity.Material{
			1: {ID: 1, Name: "Papel bond", Unit: "kg", Quantity: dec("100"), SafetyStock: dec("20"), UnitPrice: dec("3.00")},
			2: {ID: 2, Name: "Tinta negra", Unit: "kg", Quantity: dec("50"), SafetyStock: dec("5"), UnitPrice: dec("9.00")},
		}},
		links: &fakeLinkRepo{items: map[int64]*entity.MaterialSupplierView{
			10: linkView(10, 1, 100, "Papeles del Sur", "2.50", false),
			11: linkView(11, 1, 101, "Distribuidora Norte", "5.00", true),
			12: linkView(12, 2, 100, "Papeles del Sur", "8.00", false),
		}},
		employees: &fakeEmployeeRepo{items: map[int64]*entity.Employee{
			1: {ID: 1, Name: "Ana Torres", Position: "operaria", Status: entity.EmployeeStatusActive},
		}},
		books: &fakeBookRepo{items: map[int64]*entity.Book{
			5: {ID: 5, Title: "Cien años de soledad", Author: "García Márquez"},
		}},
		logs: &fakeLogRepo{nextID: 1},
		log:  logger.New(logger.Config{Env: "production", Level: "error"}),
	}
	f.tasks = &fakeTaskRepo{items: map[int64]*entity.PrintingTask{}, nextID: 1, employees: f.employees, books: f.books}
	f.purchases = &fakePurchaseRepo{nextID: 1, links: f.links}
	f.runner = &fakeTaskTxRunner{f: f}
	// Solo se usa ApplyChangesInTx, que trabaja con los repos del caller.
	f.engine = appinv.NewStockUseCase(nil, f.materials)
	return f
}

func (f *fixture) submitUC() *appprinting.SubmitTaskUseCase {
	return appprinting.NewSubmitTaskUseCase(f.runner, printing.NewFixedFactorTable(), f.employees, f.books, f.log)
}

func (f *fixture) statusUC() *appprinting.TaskStatusUseCase {
	return appprinting.NewTaskStatusUseCase(f.runner, f.engine, printing.NewFixedFactorTable(), f.tasks, f.materials, f.log)
}

func (f *fixture) queryUC() *appprinting.TaskQueryUseCase {
	return appprinting.NewTaskQueryUseCase(f.tasks, f.purchases, f.materials, printing.NewFixedFactorTable())
}

func (f *fixture) seedTask(quantity int, status entity.TaskStatus) int64 {
	task := &entity.PrintingTask{
		EmployeeID:  1,
		BookID:      5,
		Quantity:    quantity,
		DueDate:     time.Now().AddDate(0, 0, 15),
		Status:      status,
		SubmittedAt: time.Now(),
	}
	_ = f.tasks.Create(task)
	return task.ID
}

func linkView(id, materialID, supplierID int64, supplierName, price string, preferred bool) *entity.MaterialSupplierView {
	return &entity.MaterialSupplierView{
		MaterialSupplier: entity.MaterialSupplier{
			ID: id, MaterialID: materialID, SupplierID: supplierID,
			UnitPrice: dec(price), Preferred: preferred,
		},
		SupplierName:   supplierName,
		SupplierStatus: entity.SupplierStatusActive,
	}
}

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeTaskRepo struct {
	items     map[int64]*entity.PrintingTask
	nextID    int64
	employees *fakeEmployeeRepo
	books     *fakeBookRepo
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
	view := &entity.PrintingTaskView{PrintingTask: *t}
	if e := r.employees.items[t.EmployeeID]; e != nil {
		view.EmployeeName = e.Name
	}
	if b := r.books.items[t.BookID]; b != nil {
		view.BookTitle = b.Title
	}
	return view, nil
}

func (r *fakeTaskRepo) Create(t *entity.PrintingTask) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(id int64, status entity.TaskStatus, completedAt *time.Time) error {
	t, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	t.CompletedAt = completedAt
	return nil
}

func (r *fakeTaskRepo) Page(status entity.TaskStatus, limit, offset int) ([]*entity.PrintingTaskView, int, error) {
	var out []*entity.PrintingTaskView
	for id, t := range r.items {
		if status != "" && t.Status != status {
			continue
		}
		v, _ := r.GetView(id)
		out = append(out, v)
	}
	return out, len(out), nil
}

func (r *fakeTaskRepo) ListOverdue(today time.Time) ([]*entity.PrintingTaskView, error) {
	var out []*entity.PrintingTaskView
	for id, t := range r.items {
		if t.Overdue(today) {
			v, _ := r.GetView(id)
			out = append(out, v)
		}
	}
	return out, nil
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

func (r *fakeMaterialRepo) List(nameKw string) ([]*entity.Material, error) {
	var out []*entity.Material
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
	var out []*entity.Material
	for _, m := range r.items {
		if m.BelowSafety() {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

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

func (r *fakeLinkRepo) removeByMaterial(materialID int64) {
	for id, v := range r.items {
		if v.MaterialID == materialID {
			delete(r.items, id)
		}
	}
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
	var out []*entity.MaterialSupplierView
	for _, v := range r.items {
		if v.MaterialID == materialID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLinkRepo) EligibleByMaterial(materialID int64) ([]*entity.MaterialSupplierView, error) {
	all, _ := r.ListByMaterial(materialID)
	var out []*entity.MaterialSupplierView
	for _, v := range all {
		if v.SupplierStatus == entity.SupplierStatusActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeLinkRepo) ListAll() ([]*entity.MaterialSupplierView, error) {
	var out []*entity.MaterialSupplierView
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeLinkRepo) Create(link *entity.MaterialSupplier) error {
	r.items[link.ID] = &entity.MaterialSupplierView{MaterialSupplier: *link}
	return nil
}

func (r *fakeLinkRepo) Update(link *entity.MaterialSupplier) error {
	v, ok := r.items[link.ID]
	if !ok {
		return domain.ErrNotFound
	}
	v.MaterialSupplier = *link
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
	var out []*entity.StockLogView
	for _, l := range r.entries {
		if l.MaterialID == materialID && len(out) < limit {
			out = append(out, &entity.StockLogView{StockLog: *l})
		}
	}
	return out, nil
}

func (r *fakeLogRepo) Search(f repository.StockLogFilter) ([]*entity.StockLogView, error) {
	var out []*entity.StockLogView
	for _, l := range r.entries {
		out = append(out, &entity.StockLogView{StockLog: *l})
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	items map[int64]*entity.Employee
}

func (r *fakeEmployeeRepo) GetByID(id int64) (*entity.Employee, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) Page(nameKw, status string, limit, offset int) ([]*entity.Employee, int, error) {
	var out []*entity.Employee
	for _, e := range r.items {
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error { r.items[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) Update(e *entity.Employee) error { r.items[e.ID] = e; return nil }

func (r *fakeEmployeeRepo) UpdateStatus(id int64, status string) error {
	r.items[id].Status = status
	return nil
}

func (r *fakeEmployeeRepo) Delete(id int64) error { delete(r.items, id); return nil }

type fakeBookRepo struct {
	items map[int64]*entity.Book
}

func (r *fakeBookRepo) GetByID(id int64) (*entity.Book, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) List(titleKw, author, sort string) ([]*entity.Book, error) {
	var out []*entity.Book
	for _, b := range r.items {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookRepo) Create(b *entity.Book) error               { r.items[b.ID] = b; return nil }
func (r *fakeBookRepo) CreateVersion(v *entity.BookVersion) error { return nil }

func (r *fakeBookRepo) ListVersions(bookID int64) ([]*entity.BookVersion, error) { return nil, nil }
func (r *fakeBookRepo) ListAllVersions() ([]*entity.BookVersion, error)          { return nil, nil }

// fakeTaskTxRunner simula la transacción del flujo de tareas: instantánea de
// tareas, materiales, compras y asientos; restauración completa ante error.
type fakeTaskTxRunner struct {
	f *fixture
}

func (tx *fakeTaskTxRunner) RunTask(ctx context.Context, fn func(
	taskRepo repository.PrintingTaskRepository,
	materialRepo repository.MaterialRepository,
	linkRepo repository.MaterialSupplierRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	logRepo repository.StockLogRepository,
) error) error {
	snapTasks := make(map[int64]entity.PrintingTask, len(tx.f.tasks.items))
	for id, t := range tx.f.tasks.items {
		snapTasks[id] = *t
	}
	snapMats := make(map[int64]entity.Material, len(tx.f.materials.items))
	for id, m := range tx.f.materials.items {
		snapMats[id] = *m
	}
	snapPurchases := make([]*entity.PurchaseOrder, len(tx.f.purchases.items))
	for i, p := range tx.f.purchases.items {
		cp := *p
		snapPurchases[i] = &cp
	}
	snapTaskNext, snapPurchaseNext := tx.f.tasks.nextID, tx.f.purchases.nextID
	snapLogs := len(tx.f.logs.entries)

	err := fn(tx.f.tasks, tx.f.materials, tx.f.links, tx.f.purchases, tx.f.logs)
	if err != nil {
		tx.f.tasks.items = make(map[int64]*entity.PrintingTask, len(snapTasks))
		for id := range snapTasks {
			t := snapTasks[id]
			tx.f.tasks.items[id] = &t
		}
		tx.f.materials.items = make(map[int64]*entity.Material, len(snapMats))
		for id := range snapMats {
			m := snapMats[id]
			tx.f.materials.items[id] = &m
		}
		tx.f.purchases.items = snapPurchases
		tx.f.tasks.nextID, tx.f.purchases.nextID = snapTaskNext, snapPurchaseNext
		tx.f.logs.entries = tx.f.logs.entries[:snapLogs]
	}
	return err
}

var (
	_ appprinting.TaskTxRunner              = (*fakeTaskTxRunner)(nil)
	_ repository.PrintingTaskRepository     = (*fakeTaskRepo)(nil)
	_ repository.MaterialRepository         = (*fakeMaterialRepo)(nil)
	_ repository.MaterialSupplierRepository = (*fakeLinkRepo)(nil)
	_ repository.PurchaseOrderRepository    = (*fakePurchaseRepo)(nil)
	_ repository.StockLogRepository         = (*fakeLogRepo)(nil)
	_ repository.EmployeeRepository         = (*fakeEmployeeRepo)(nil)
	_ repository.BookRepository             = (*fakeBookRepo)(nil)
)
