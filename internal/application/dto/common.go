package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset calcula el offset SQL a partir de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginacion metadatos de página en respuestas.
type Paginacion struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPaginacion arma los metadatos a partir del total y la página pedida.
func NewPaginacion(total int, p PageRequest) Paginacion {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return Paginacion{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
