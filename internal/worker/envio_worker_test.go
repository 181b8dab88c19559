package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/juanmzaragoza/billing-dad-project/internal/clock"
	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/infra"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	err error
}

func (r stubRenderer) RenderizarDocumento(_ context.Context, documento string, id uuid.UUID) ([]byte, string, string, error) {
	if r.err != nil {
		return nil, "", "", r.err
	}
	return []byte("%PDF-1.3"), documento + "-" + id.String() + ".pdf", "Factura A 0001-00000001", nil
}

type envioEnviado struct {
	to, subject, filename string
}

type stubSender struct {
	sent []envioEnviado
	err  error
}

func (s *stubSender) EnviarDocumento(to, subject, _, filename string, _ []byte) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, envioEnviado{to, subject, filename})
	return nil
}

func payload(t *testing.T, p dto.EnvioJobPayload) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	return raw
}

func newBreaker(clk clock.Clock) *infra.CircuitBreaker {
	return infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute, Clock: clk})
}

func TestEnvioWorker_Envia(t *testing.T) {
	sender := &stubSender{}
	w := NewEnvioWorker(stubRenderer{}, sender, newBreaker(clock.Real{}), "Mi Empresa")
	id := uuid.New()

	err := w.Process(context.Background(), payload(t, dto.EnvioJobPayload{
		Documento: dto.DocumentoFactura, ID: id.String(), Destinatario: "cliente@example.com",
	}))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "cliente@example.com", sender.sent[0].to)
	assert.Equal(t, "Factura A 0001-00000001 - Mi Empresa", sender.sent[0].subject)
	assert.Equal(t, "factura-"+id.String()+".pdf", sender.sent[0].filename)
}

func TestEnvioWorker_FallosPermanentes(t *testing.T) {
	w := NewEnvioWorker(stubRenderer{}, &stubSender{}, newBreaker(clock.Real{}), "")
	ctx := context.Background()

	err := w.Process(ctx, json.RawMessage(`[]`))
	assert.ErrorIs(t, err, ErrPermanente)

	err = w.Process(ctx, payload(t, dto.EnvioJobPayload{Documento: dto.DocumentoFactura, ID: "x", Destinatario: "a@b.com"}))
	assert.ErrorIs(t, err, ErrPermanente)

	err = w.Process(ctx, payload(t, dto.EnvioJobPayload{Documento: dto.DocumentoFactura, ID: uuid.NewString()}))
	assert.ErrorIs(t, err, ErrPermanente)

	missing := NewEnvioWorker(stubRenderer{err: &service.NotFoundError{Msg: "Factura no encontrada"}}, &stubSender{}, newBreaker(clock.Real{}), "")
	err = missing.Process(ctx, payload(t, dto.EnvioJobPayload{Documento: dto.DocumentoFactura, ID: uuid.NewString(), Destinatario: "a@b.com"}))
	assert.ErrorIs(t, err, ErrPermanente)
}

func TestEnvioWorker_ErrorDeRenderReintentable(t *testing.T) {
	w := NewEnvioWorker(stubRenderer{err: errors.New("db timeout")}, &stubSender{}, newBreaker(clock.Real{}), "")
	err := w.Process(context.Background(), payload(t, dto.EnvioJobPayload{
		Documento: dto.DocumentoFactura, ID: uuid.NewString(), Destinatario: "a@b.com",
	}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPermanente)
}

func TestEnvioWorker_BreakerAbierto(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	sender := &stubSender{err: errors.New("connection refused")}
	breaker := newBreaker(clk)
	w := NewEnvioWorker(stubRenderer{}, sender, breaker, "")
	p := payload(t, dto.EnvioJobPayload{Documento: dto.DocumentoFactura, ID: uuid.NewString(), Destinatario: "a@b.com"})
	ctx := context.Background()

	require.Error(t, w.Process(ctx, p))
	require.Error(t, w.Process(ctx, p))
	assert.Equal(t, infra.CBOpen, breaker.State())

	sender.err = nil
	err := w.Process(ctx, p)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.NotErrorIs(t, err, ErrPermanente)
	assert.Empty(t, sender.sent)

	clk.Advance(time.Minute)
	require.NoError(t, w.Process(ctx, p))
	assert.Equal(t, infra.CBClosed, breaker.State())
	assert.Len(t, sender.sent, 1)
}
