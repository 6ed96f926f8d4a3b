package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-servicios/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Orchestrator ejecuta las operaciones del panel contra el Backend y mantiene
// los espejos de la Session. Cada confirmación pasa por run, que garantiza que
// la PendingOperation vuelve a reposo en todos los caminos.
type Orchestrator struct {
	backend  Backend
	log      zerolog.Logger
	recorder Recorder
	timeout  time.Duration
}

// Option configura el Orchestrator.
type Option func(*Orchestrator)

// WithRecorder registra métricas de las operaciones.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithTimeout limita la duración de cada confirmación (las llamadas al backend).
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewOrchestrator crea el orquestador.
func NewOrchestrator(backend Backend, log zerolog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:  backend,
		log:      log,
		recorder: nopRecorder{},
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run es la frontera de una confirmación. Marca la operación como cargando,
// ejecuta fn sin posibilidad de cancelación por el llamador (solo el timeout
// acota la E/S), convierte pánicos en FaultUnexpected, notifica el fallo y
// devuelve la operación a reposo.
func (o *Orchestrator) run(ctx context.Context, s *Session, kind OperationKind, n Notifier, fn func(ctx context.Context, op PendingOperation) error) (err error) {
	start := time.Now()
	op, err := s.BeginOperation(kind)
	if err != nil {
		// La operación en curso sigue su curso; no se resetea.
		return o.reject(kind, n, err)
	}

	defer func() {
		if r := recover(); r != nil {
			o.log.Error().Str("op", string(kind)).Int64("target_id", op.TargetID).
				Interface("panic", r).Msg("admin: pánico durante la operación")
			err = &Fault{Kind: FaultUnexpected, Op: kind, Err: fmt.Errorf("panic: %v", r)}
			n.ShowError(MsgUnexpected)
		} else if err != nil {
			err = o.fail(kind, op.TargetID, n, err)
		}
		s.ResetPending(kind)
		o.recorder.ObserveOperation(string(kind), outcome(err), time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.timeout)
	defer cancel()
	return fn(ctx, op)
}

// reject rechaza una confirmación antes de empezarla.
func (o *Orchestrator) reject(kind OperationKind, n Notifier, err error) error {
	f := &Fault{Kind: FaultValidation, Op: kind, Err: err}
	if errors.Is(err, domain.ErrNotFound) {
		f.Kind = FaultNotFound
	}
	o.log.Debug().Str("op", string(kind)).Err(err).Msg("admin: operación rechazada")
	n.ShowError(err.Error())
	o.recorder.ObserveOperation(string(kind), outcome(f), 0)
	return f
}

// fail clasifica el error de fn y lo notifica.
func (o *Orchestrator) fail(kind OperationKind, target int64, n Notifier, err error) error {
	var f *Fault
	if !errors.As(err, &f) {
		f = &Fault{Kind: FaultBackend, Op: kind, Err: err}
	}
	switch f.Kind {
	case FaultUnexpected:
		o.log.Error().Str("op", string(kind)).Int64("target_id", target).Err(f.Err).Msg("admin: error inesperado")
		n.ShowError(MsgUnexpected)
	default:
		o.log.Warn().Str("op", string(kind)).Str("kind", string(f.Kind)).Int64("target_id", target).Err(f.Err).Msg("admin: operación fallida")
		n.ShowError(f.Err.Error())
	}
	return f
}

func requireTarget(op PendingOperation) error {
	if op.TargetID == 0 {
		return &Fault{Kind: FaultValidation, Op: op.Kind, Err: fmt.Errorf("%w: no hay ninguna operación solicitada", domain.ErrInvalidInput)}
	}
	return nil
}

// ── Recarga ───────────────────────────────────────────────────────────────────

// Refresh vuelve a traer del backend los cuatro espejos y los reemplaza enteros.
// Como recarga completa cierra todas las secciones; refreshKeepingExpansion las
// conserva. Si alguna lectura falla no se reemplaza ninguno.
func (o *Orchestrator) Refresh(ctx context.Context, s *Session) error {
	categorias, err := o.backend.ListCategorias(ctx)
	if err != nil {
		return fmt.Errorf("listar categorías: %w", err)
	}
	servicios, err := o.backend.ListServicios(ctx)
	if err != nil {
		return fmt.Errorf("listar servicios: %w", err)
	}
	items, err := o.backend.ListItemsWithDetails(ctx)
	if err != nil {
		return fmt.Errorf("listar ítems: %w", err)
	}
	caracteristicas, err := o.backend.ListCaracteristicas(ctx)
	if err != nil {
		return fmt.Errorf("listar características: %w", err)
	}
	s.ReplaceCategorias(categorias)
	s.ReplaceServicios(servicios)
	s.ReplaceItems(items)
	s.ReplaceCaracteristicas(caracteristicas)
	s.CollapseAll()
	return nil
}

// refreshKeepingExpansion recarga sin colapsar las secciones abiertas. Un fallo
// de recarga tras una mutación confirmada se trata como inesperado.
func (o *Orchestrator) refreshKeepingExpansion(ctx context.Context, s *Session, kind OperationKind) error {
	err := PreserveAcross(s.ExpansionSnapshot, s.RestoreExpansion, func() error {
		return o.Refresh(ctx, s)
	})
	if err != nil {
		return &Fault{Kind: FaultUnexpected, Op: kind, Err: err}
	}
	return nil
}

// Load hace la carga inicial de la sesión una sola vez.
func (o *Orchestrator) Load(ctx context.Context, s *Session) error {
	if !s.NeedsInitialLoad() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	if err := o.Refresh(ctx, s); err != nil {
		o.log.Error().Err(err).Str("session", s.ID()).Msg("admin: carga inicial fallida")
		return err
	}
	s.MarkLoaded()
	return nil
}

// Cancel descarta la operación solicitada del tipo indicado sin efectos laterales.
// Devuelve false si la operación ya está en marcha.
func (o *Orchestrator) Cancel(s *Session, kind OperationKind) bool {
	return s.CancelPending(kind)
}
