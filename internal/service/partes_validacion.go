package service

import (
	"strings"

	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
)

const (
	msgCUITFormato     = "El CUIT debe contener solo números (entre 7 y 11 dígitos)"
	msgCondicionValida = "Condición frente al IVA inválida"
)

// validarFiscalParte checks the optional fiscal fields of a party record.
func validarFiscalParte(c *campos, cuit, condicion *string) {
	if cuit != nil && strings.TrimSpace(*cuit) != "" && !fiscal.CUITValido(strings.TrimSpace(*cuit)) {
		c.add("cuit", msgCUITFormato)
	}
	if condicion != nil && strings.TrimSpace(*condicion) != "" && !fiscal.CondicionValida(strings.TrimSpace(*condicion)) {
		c.add("condicion_iva", msgCondicionValida)
	}
}

// opcional trims an optional text field; blank becomes nil.
func opcional(s *string) *string {
	if s == nil {
		return nil
	}
	return nilIfEmpty(*s)
}
