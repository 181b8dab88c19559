package dto

type EnviarDocumentoRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
}

type EnvioResponse struct {
	Encolado     bool   `json:"encolado"`
	Destinatario string `json:"destinatario"`
}

// Documentos that can be delivered by email.
const (
	DocumentoFactura     = "factura"
	DocumentoOrdenCompra = "orden_compra"
)

// EnvioJobPayload is queued on jobs:envios and consumed by the delivery worker.
type EnvioJobPayload struct {
	Documento    string `json:"documento"`
	ID           string `json:"id"`
	Destinatario string `json:"destinatario"`
}
