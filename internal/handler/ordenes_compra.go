package handler

import (
	"net/http"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdenesCompraHandler struct {
	svc    service.OrdenCompraService
	envios service.EnvioService
}

func NewOrdenesCompraHandler(svc service.OrdenCompraService, envios service.EnvioService) *OrdenesCompraHandler {
	return &OrdenesCompraHandler{svc: svc, envios: envios}
}

func (h *OrdenesCompraHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error al crear la orden de compra")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdenesCompraHandler) Listar(c *gin.Context) {
	var filter dto.OrdenCompraFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Error al listar órdenes de compra")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesCompraHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error al obtener la orden de compra")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesCompraHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarOrdenCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al actualizar la orden de compra")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesCompraHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err, "Error al eliminar la orden de compra")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrdenesCompraHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.envios.PDFOrdenCompra(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error al generar el PDF")
		return
	}
	writePDF(c, doc)
}

func (h *OrdenesCompraHandler) Enviar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.EnviarDocumentoRequest
	if !bindOptional(c, &req) {
		return
	}
	resp, err := h.envios.EnviarOrdenCompra(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Error al encolar el envío")
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
