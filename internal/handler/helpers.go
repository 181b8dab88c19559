package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/juanmzaragoza/billing-dad-project/internal/apierror"
	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// gt=0 and gte=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their JSON name, matching the service-level errors.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister("cuit", func(fl validator.FieldLevel) bool {
		return fiscal.CUITValido(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister("condicion_iva", func(fl validator.FieldLevel) bool {
		return fiscal.CondicionValida(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister("alicuota", func(fl validator.FieldLevel) bool {
		return fiscal.AlicuotaValida(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

var mensajesTag = map[string]string{
	"required":      "Campo requerido",
	"min":           "Valor demasiado corto",
	"max":           "Valor demasiado largo",
	"gt":            "Debe ser mayor a 0",
	"gte":           "No puede ser negativo",
	"oneof":         "Valor no permitido",
	"uuid":          "Identificador inválido",
	"email":         "Email inválido",
	"datetime":      "Fecha inválida (formato AAAA-MM-DD)",
	"cuit":          "El CUIT debe contener solo números (entre 7 y 11 dígitos)",
	"condicion_iva": "Condición frente al IVA inválida",
	"alicuota":      "Alícuota inválida (0, 10.5 o 21)",
}

// campoJSON strips the root struct name: "CrearFacturaRequest.items[0].cantidad"
// becomes "items[0].cantidad".
func campoJSON(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// validateStruct writes a 422 and returns false when req fails its tags.
func validateStruct(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(c, err, "Error de validación")
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := mensajesTag[fe.Tag()]
		if !ok {
			msg = fe.Tag()
		}
		fields[campoJSON(fe)] = msg
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if binding or validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos"))
		return false
	}
	return validateStruct(c, filter)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors to HTTP responses. Unexpected errors are
// attached to the context for ErrorHandler to log and answered with msg.
func respondError(c *gin.Context, err error, msg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(verr.Campos))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrEnviosDeshabilitados):
		c.JSON(http.StatusServiceUnavailable, apierror.New("El envío de documentos no está disponible"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New(msg))
	}
}
