package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

var _ repository.MaterialSupplierRepository = (*MaterialSupplierRepo)(nil)

// MaterialSupplierRepo implementación del puerto MaterialSupplierRepository sobre PostgreSQL (usable con pool o tx).
type MaterialSupplierRepo struct {
	q Querier
}

// NewMaterialSupplierRepository construye el adaptador para vínculos material-proveedor. Pasar pool o tx (Querier).
func NewMaterialSupplierRepository(q Querier) *MaterialSupplierRepo {
	return &MaterialSupplierRepo{q: q}
}

// Create persiste un vínculo material-proveedor. El par (material, proveedor) es único.
func (r *MaterialSupplierRepo) Create(link *entity.MaterialSupplier) error {
	query := `
		INSERT INTO material_suppliers (material_id, supplier_id, unit_price, preferred, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		link.MaterialID, link.SupplierID, link.UnitPrice, link.Preferred, link.CreatedAt,
	).Scan(&link.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un vínculo por ID.
func (r *MaterialSupplierRepo) GetByID(id int64) (*entity.MaterialSupplier, error) {
	query := `
		SELECT id, material_id, supplier_id, unit_price, preferred, created_at
		FROM material_suppliers WHERE id = $1`
	var link entity.MaterialSupplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&link.ID, &link.MaterialID, &link.SupplierID, &link.UnitPrice, &link.Preferred, &link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material supplier: %w", err)
	}
	return &link, nil
}

// GetView obtiene un vínculo con nombres de material y proveedor.
func (r *MaterialSupplierRepo) GetView(id int64) (*entity.MaterialSupplierView, error) {
	query := `
		SELECT ms.id, ms.material_id, ms.supplier_id, ms.unit_price, ms.preferred, ms.created_at,
		       m.name, s.name, s.status
		FROM material_suppliers ms
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE ms.id = $1`
	var v entity.MaterialSupplierView
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.MaterialID, &v.SupplierID, &v.UnitPrice, &v.Preferred, &v.CreatedAt,
		&v.MaterialName, &v.SupplierName, &v.SupplierStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material supplier view: %w", err)
	}
	return &v, nil
}

// ListByMaterial lista todos los vínculos de un material, con nombres.
func (r *MaterialSupplierRepo) ListByMaterial(materialID int64) ([]*entity.MaterialSupplierView, error) {
	query := `
		SELECT ms.id, ms.material_id, ms.supplier_id, ms.unit_price, ms.preferred, ms.created_at,
		       m.name, s.name, s.status
		FROM material_suppliers ms
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE ms.material_id = $1
		ORDER BY ms.id`
	return r.queryViews(query, materialID)
}

// EligibleByMaterial lista los vínculos de un material cuyo proveedor está en cooperación,
// ordenados por id. El ranking de selección lo hace el dominio, no el SQL.
func (r *MaterialSupplierRepo) EligibleByMaterial(materialID int64) ([]*entity.MaterialSupplierView, error) {
	query := `
		SELECT ms.id, ms.material_id, ms.supplier_id, ms.unit_price, ms.preferred, ms.created_at,
		       m.name, s.name, s.status
		FROM material_suppliers ms
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE ms.material_id = $1 AND s.status = 'active'
		ORDER BY ms.id`
	return r.queryViews(query, materialID)
}

// ListAll lista todos los vínculos con nombres, para el tablero de administración.
func (r *MaterialSupplierRepo) ListAll() ([]*entity.MaterialSupplierView, error) {
	query := `
		SELECT ms.id, ms.material_id, ms.supplier_id, ms.unit_price, ms.preferred, ms.created_at,
		       m.name, s.name, s.status
		FROM material_suppliers ms
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		ORDER BY ms.id`
	return r.queryViews(query)
}

// Update actualiza precio y marca de preferencia del vínculo.
func (r *MaterialSupplierRepo) Update(link *entity.MaterialSupplier) error {
	query := `
		UPDATE material_suppliers SET unit_price = $2, preferred = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, link.ID, link.UnitPrice, link.Preferred)
	if err != nil {
		return fmt.Errorf("update material supplier: %w", err)
	}
	return nil
}

// Delete elimina un vínculo. Si tiene compras asociadas la base lo rechaza (FK RESTRICT).
func (r *MaterialSupplierRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM material_suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidation("id", "el vínculo tiene compras asociadas y no puede eliminarse")
		}
		return fmt.Errorf("delete material supplier: %w", err)
	}
	return nil
}

func (r *MaterialSupplierRepo) queryViews(query string, args ...any) ([]*entity.MaterialSupplierView, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list material suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.MaterialSupplierView
	for rows.Next() {
		var v entity.MaterialSupplierView
		if err := rows.Scan(
			&v.ID, &v.MaterialID, &v.SupplierID, &v.UnitPrice, &v.Preferred, &v.CreatedAt,
			&v.MaterialName, &v.SupplierName, &v.SupplierStatus,
		); err != nil {
			return nil, fmt.Errorf("scan material supplier: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
