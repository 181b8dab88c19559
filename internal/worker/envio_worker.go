package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/infra"
	"github.com/juanmzaragoza/billing-dad-project/internal/logger"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Renderer produces the PDF of a stored document.
type Renderer interface {
	RenderizarDocumento(ctx context.Context, documento string, id uuid.UUID) (pdf []byte, archivo, titulo string, err error)
}

// Sender delivers a single email with one PDF attachment.
type Sender interface {
	EnviarDocumento(to, subject, body, filename string, pdf []byte) error
}

// EnvioWorker renders a document and emails it. SMTP calls go through the
// circuit breaker; an open breaker fails the attempt so the pool retries later.
type EnvioWorker struct {
	renderer Renderer
	sender   Sender
	breaker  *infra.CircuitBreaker
	empresa  string
	log      zerolog.Logger
}

func NewEnvioWorker(renderer Renderer, sender Sender, breaker *infra.CircuitBreaker, empresa string) *EnvioWorker {
	return &EnvioWorker{
		renderer: renderer,
		sender:   sender,
		breaker:  breaker,
		empresa:  empresa,
		log:      logger.WithComponent("envio_worker"),
	}
}

// Process is a Handler for JobEnvio.
func (w *EnvioWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p dto.EnvioJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("%w: payload inválido: %v", ErrPermanente, err)
	}
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return fmt.Errorf("%w: id inválido %q", ErrPermanente, p.ID)
	}
	if p.Destinatario == "" {
		return fmt.Errorf("%w: destinatario vacío", ErrPermanente)
	}

	pdf, archivo, titulo, err := w.renderer.RenderizarDocumento(ctx, p.Documento, id)
	if err != nil {
		if errors.Is(err, service.ErrNoEncontrado) {
			return fmt.Errorf("%w: %v", ErrPermanente, err)
		}
		return fmt.Errorf("renderizar %s %s: %w", p.Documento, p.ID, err)
	}

	subject := titulo
	if w.empresa != "" {
		subject = titulo + " - " + w.empresa
	}
	body := fmt.Sprintf("Adjuntamos %s.\n\nSaludos,\n%s", titulo, w.empresa)

	err = w.breaker.Execute(func() error {
		return w.sender.EnviarDocumento(p.Destinatario, subject, body, archivo, pdf)
	})
	if err != nil {
		return fmt.Errorf("enviar a %s: %w", p.Destinatario, err)
	}
	w.log.Info().Str("documento", p.Documento).Str("id", p.ID).Str("to", p.Destinatario).Msg("documento enviado")
	return nil
}
