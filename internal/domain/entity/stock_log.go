package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de variación de stock. Informativos para auditoría: no restringen el signo
// del delta, aunque por convención in lleva delta positivo y out negativo.
const (
	StockKindIn     = "in"     // entrada (recepción de compra, devolución)
	StockKindOut    = "out"    // salida (consumo de tarea)
	StockKindAdjust = "adjust" // ajuste manual
)

// StockLog asiento inmutable del libro de variaciones de stock. Cada mutación de
// existencia de un material genera exactamente un asiento con el mismo delta.
// Nunca se actualiza ni se elimina.
type StockLog struct {
	ID         int64
	MaterialID int64
	Delta      decimal.Decimal // con signo: positivo entrada, negativo salida
	Kind       string          // in | out | adjust
	Reference  string          // correlación de negocio: "task:{id}", "purchase:{id}", libre
	OperatorID int64
	Note       string
	BatchID    string          // uuid del lote que escribió el asiento (vacío en asientos sueltos antiguos)
	CreatedAt  time.Time
}

// StockLogView asiento enriquecido con nombres para consultas.
type StockLogView struct {
	StockLog
	MaterialName string
	OperatorName string
}
