package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

func TestCreateSupplier_QuedaEnCooperacion(t *testing.T) {
	repo := &fakeSupplierRepo{items: map[int64]*entity.Supplier{}}
	uc := catalog.NewSupplierUseCase(repo)

	created, err := uc.Create(context.Background(), dto.SupplierRequest{
		Name: "Papeles del Sur", Contact: "Marta Ríos", Phone: "555-0101",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierStatusActive, created.Status, "un proveedor nuevo entra en cooperación")

	_, err = uc.Create(context.Background(), dto.SupplierRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateSupplierStatus_AlternaCooperacion(t *testing.T) {
	repo := &fakeSupplierRepo{items: map[int64]*entity.Supplier{
		100: {ID: 100, Name: "Papeles del Sur", Status: entity.SupplierStatusActive},
	}}
	uc := catalog.NewSupplierUseCase(repo)
	ctx := context.Background()

	updated, err := uc.UpdateStatus(ctx, 100, entity.SupplierStatusTerminated)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierStatusTerminated, updated.Status)
	assert.Equal(t, entity.SupplierStatusTerminated, repo.items[100].Status)

	updated, err = uc.UpdateStatus(ctx, 100, entity.SupplierStatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierStatusActive, updated.Status)

	_, err = uc.UpdateStatus(ctx, 100, "paused")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "solo active y terminated son válidos")

	_, err = uc.UpdateStatus(ctx, 999, entity.SupplierStatusActive)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeSupplierRepo struct {
	items  map[int64]*entity.Supplier
	nextID int64
}

func (r *fakeSupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) List(nameKw, status string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.items {
		if status != "" && s.Status != status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Page(nameKw, status string, limit, offset int) ([]*entity.Supplier, int, error) {
	all, _ := r.List(nameKw, status)
	return all, len(all), nil
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) UpdateStatus(id int64, status string) error {
	s, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

var _ repository.SupplierRepository = (*fakeSupplierRepo)(nil)
