package dto

// Formatos de fecha usados en requests y responses.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Result envoltura uniforme de respuesta de las operaciones públicas:
// bandera de éxito, mensaje legible y datos opcionales. Ningún caso de uso
// expone errores crudos más allá de esta frontera.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK construye un Result exitoso.
func OK(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail construye un Result fallido.
func Fail(message string, data any) Result {
	return Result{Success: false, Message: message, Data: data}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// DefaultPage aplica valores por defecto si Page/PageSize son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset convierte página/tamaño en desplazamiento SQL.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
