package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementDebit  = "debit"  // salida: consumo contra una orden de trabajo u otra razón
	MovementCredit = "credit" // entrada: reposición o devolución
)

// Razones estándar de movimiento (Reason es texto libre; estas son las usadas
// por el propio motor).
const (
	ReasonWorkOrderUse    = "work_order_use"
	ReasonWorkOrderReturn = "work_order_return"
	ReasonWorkOrderVoid   = "work_order_void"
	ReasonManualRestock   = "manual_restock"
)

// StockMovement es el registro inmutable de un cambio de stock: append-only,
// nunca se modifica ni se borra. StockBefore/StockAfter deben reconciliar con
// la cantidad del repuesto en ese punto del orden; reproducir el log desde el
// stock inicial reconstruye el stock actual exacto.
type StockMovement struct {
	ID          string
	PartID      string
	Kind        string // debit | credit
	Quantity    int    // siempre > 0; Kind da el signo
	StockBefore int
	StockAfter  int
	Reason      string
	WorkOrderID string // referencia de auditoría, vacía si no aplica
	CreatedAt   time.Time
	CreatedBy   string // UserID del actor
}
