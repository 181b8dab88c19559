package handler

import (
	"net/http"

	"github.com/juanmzaragoza/billing-dad-project/internal/apierror"
	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/gin-gonic/gin"
)

type FacturasHandler struct {
	svc    service.FacturaService
	envios service.EnvioService
}

func NewFacturasHandler(svc service.FacturaService, envios service.EnvioService) *FacturasHandler {
	return &FacturasHandler{svc: svc, envios: envios}
}

func (h *FacturasHandler) Crear(c *gin.Context) {
	var req dto.CrearFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al crear la factura")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Validar is a dry run: it always answers 200 with the field errors found.
func (h *FacturasHandler) Validar(c *gin.Context) {
	var req dto.CrearFacturaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.svc.Validar(c.Request.Context(), req))
}

func (h *FacturasHandler) Listar(c *gin.Context) {
	var filter dto.FacturaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Error al listar facturas")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error al obtener la factura")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al actualizar la factura")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err, "Error al eliminar la factura")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FacturasHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.envios.PDFFactura(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error al generar el PDF")
		return
	}
	writePDF(c, doc)
}

func (h *FacturasHandler) Enviar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.EnviarDocumentoRequest
	if !bindOptional(c, &req) {
		return
	}
	resp, err := h.envios.EnviarFactura(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al encolar el envío")
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

func writePDF(c *gin.Context, doc *service.DocumentoRenderizado) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.Archivo+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}

// bindOptional accepts an empty body as the zero request.
func bindOptional(c *gin.Context, req interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindAndValidate(c, req)
}
