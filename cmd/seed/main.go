// seed prepara una base de datos de la editorial: aplica el esquema,
// importa catálogos y deja creado el usuario admin.
//
// Uso: go run ./cmd/seed [flags]
//
//	-schema          ruta del DDL (por defecto migrations/001_schema.sql)
//	-materials       CSV Latin-1 de materiales: name,unit,spec,safety_stock,unit_price,initial_quantity
//	-suppliers       CSV Latin-1 de proveedores: name,contact,phone
//	-onix            feed ONIX 3.0 con los libros del catálogo
//	-admin-password  contraseña para el usuario admin (se omite si ya existe)
//
// Los CSV llevan fila de encabezado. La cantidad inicial de cada material
// entra por el motor de stock con referencia "seed", así el libro de
// variaciones queda consistente desde el arranque. Pensado para una base
// vacía: reimportar un CSV duplica filas de catálogo.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/editorial-api/internal/application/auth"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/infrastructure/onix"
	"github.com/jhoicas/editorial-api/internal/infrastructure/postgres"
	"github.com/jhoicas/editorial-api/pkg/config"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

func main() {
	schemaPath := flag.String("schema", "migrations/001_schema.sql", "ruta del DDL a aplicar")
	materialsPath := flag.String("materials", "", "CSV Latin-1 de materiales")
	suppliersPath := flag.String("suppliers", "", "CSV Latin-1 de proveedores")
	onixPath := flag.String("onix", "", "feed ONIX 3.0 de libros")
	adminPassword := flag.String("admin-password", "", "contraseña del usuario admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	// 1. Esquema. El DDL es idempotente (IF NOT EXISTS); sin argumentos,
	// pgx lo envía por protocolo simple y acepta múltiples sentencias.
	ddl, err := os.ReadFile(*schemaPath)
	if err != nil {
		fail("leer esquema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(ddl)); err != nil {
		fail("aplicar esquema: %v", err)
	}
	fmt.Printf("Esquema aplicado: %s\n", *schemaPath)

	materialUC := catalog.NewMaterialUseCase(postgres.NewMaterialRepository(pool))
	supplierUC := catalog.NewSupplierUseCase(postgres.NewSupplierRepository(pool))
	stockUC := inventory.NewStockUseCase(postgres.NewTxRunner(pool), postgres.NewMaterialRepository(pool))
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Service: cfg.App.Name}).Component("seed")
	bookUC := catalog.NewBookUseCase(postgres.NewBookRepository(pool), onix.NewReader(), log)
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// 2. Usuario admin, antes que los materiales para que sus ingresos
	// iniciales queden asentados a su nombre.
	var operatorID int64
	if *adminPassword != "" {
		user, err := authUC.Register(ctx, dto.RegisterRequest{
			Username: "admin",
			Password: *adminPassword,
			Role:     "admin",
		})
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			fmt.Println("Usuario admin: ya existe, se conserva")
		case err != nil:
			fail("crear usuario admin: %v", err)
		default:
			operatorID = user.ID
			fmt.Println("Usuario admin: creado")
		}
	}

	// 3. Catálogos
	if *suppliersPath != "" {
		n, err := importSuppliers(ctx, supplierUC, *suppliersPath)
		if err != nil {
			fail("importar proveedores: %v", err)
		}
		fmt.Printf("Proveedores importados: %d\n", n)
	}

	if *materialsPath != "" {
		n, err := importMaterials(ctx, materialUC, stockUC, operatorID, *materialsPath)
		if err != nil {
			fail("importar materiales: %v", err)
		}
		fmt.Printf("Materiales importados: %d\n", n)
	}

	if *onixPath != "" {
		f, err := os.Open(*onixPath)
		if err != nil {
			fail("abrir feed ONIX: %v", err)
		}
		out, err := bookUC.ImportFeed(ctx, f)
		f.Close()
		if err != nil {
			fail("importar feed ONIX: %v", err)
		}
		fmt.Printf("Libros importados: %d\n", out.Imported)
	}

	fmt.Println("Seed completado")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// openLatin1CSV abre un CSV codificado en Latin-1 (ISO 8859-1) y descarta la
// fila de encabezado.
func openLatin1CSV(path string, fields int) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.FieldsPerRecord = fields
	if _, err := r.Read(); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	return r, f, nil
}

// importMaterials da de alta cada fila como material y, si trae cantidad
// inicial, la ingresa por el motor de stock con referencia "seed".
func importMaterials(ctx context.Context, materialUC *catalog.MaterialUseCase, stockUC *inventory.StockUseCase, operatorID int64, path string) (int, error) {
	rows, f, err := openLatin1CSV(path, 6)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	for {
		record, err := rows.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return count, fmt.Errorf("fila %d: %w", count+2, err)
		}
		safety, err := parseDecimal(record[3])
		if err != nil {
			return count, fmt.Errorf("fila %d, safety_stock: %w", count+2, err)
		}
		price, err := parseDecimal(record[4])
		if err != nil {
			return count, fmt.Errorf("fila %d, unit_price: %w", count+2, err)
		}
		initial, err := parseDecimal(record[5])
		if err != nil {
			return count, fmt.Errorf("fila %d, initial_quantity: %w", count+2, err)
		}

		m, err := materialUC.Create(ctx, dto.MaterialRequest{
			Name:        strings.TrimSpace(record[0]),
			Unit:        strings.TrimSpace(record[1]),
			Spec:        strings.TrimSpace(record[2]),
			SafetyStock: safety,
			UnitPrice:   price,
		})
		if err != nil {
			return count, fmt.Errorf("fila %d (%s): %w", count+2, record[0], err)
		}
		if initial.IsPositive() {
			_, err := stockUC.UpdateLevel(ctx, operatorID, inventory.StockChangeInput{
				MaterialID: m.ID,
				Delta:      initial,
				Kind:       "in",
				Reference:  "seed",
			})
			if err != nil {
				return count, fmt.Errorf("fila %d (%s), cantidad inicial: %w", count+2, record[0], err)
			}
		}
		count++
	}
}

// importSuppliers da de alta cada fila como proveedor activo.
func importSuppliers(ctx context.Context, supplierUC *catalog.SupplierUseCase, path string) (int, error) {
	rows, f, err := openLatin1CSV(path, 3)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	for {
		record, err := rows.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return count, fmt.Errorf("fila %d: %w", count+2, err)
		}
		_, err = supplierUC.Create(ctx, dto.SupplierRequest{
			Name:    strings.TrimSpace(record[0]),
			Contact: strings.TrimSpace(record[1]),
			Phone:   strings.TrimSpace(record[2]),
		})
		if err != nil {
			return count, fmt.Errorf("fila %d (%s): %w", count+2, record[0], err)
		}
		count++
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
