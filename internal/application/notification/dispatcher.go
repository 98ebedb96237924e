// Package notification ejecuta los avisos fuera del ciclo de la petición HTTP.
// Un envío lento o fallido nunca afecta la respuesta al cliente.
package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/CashCount-api/pkg/logger"
)

// ErrStopped se devuelve al encolar después de Stop.
var ErrStopped = errors.New("notification: dispatcher detenido")

// ErrQueueFull se devuelve cuando la cola está llena y el trabajo se descarta.
var ErrQueueFull = errors.New("notification: cola llena")

// Job unidad de trabajo asíncrona.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Options configuración del pool.
type Options struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// Dispatcher cola acotada + pool de workers. Enqueue nunca bloquea.
type Dispatcher struct {
	log     *logger.Logger
	queue   chan Job
	workers int
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	started atomic.Bool
	wg      sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc

	processed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// NewDispatcher construye el dispatcher; llamar Start para lanzar los workers.
func NewDispatcher(log *logger.Logger, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		log:     log.Component("notify"),
		queue:   make(chan Job, opts.QueueSize),
		workers: opts.Workers,
		timeout: opts.JobTimeout,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Start lanza los workers. Llamadas repetidas no tienen efecto.
func (d *Dispatcher) Start() {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}
	d.log.Info().Int("workers", d.workers).Int("queue", cap(d.queue)).Msg("dispatcher iniciado")
}

// Enqueue agrega un trabajo sin bloquear. Si la cola está llena el trabajo se descarta y se registra.
func (d *Dispatcher) Enqueue(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrStopped
	}
	select {
	case d.queue <- job:
		return nil
	default:
		d.dropped.Add(1)
		d.log.Warn().Str("job", job.Name).Msg("cola de notificaciones llena, aviso descartado")
		return ErrQueueFull
	}
}

// Stop deja de aceptar trabajos y espera a que se drene la cola.
// Si ctx vence antes, cancela los trabajos en curso y devuelve ctx.Err().
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	if !d.started.Load() {
		// sin workers: nada que drenar
		d.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.log.Info().
			Int64("processed", d.processed.Load()).
			Int64("failed", d.failed.Load()).
			Int64("dropped", d.dropped.Load()).
			Msg("dispatcher detenido")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return fmt.Errorf("notification: drenado incompleto: %w", ctx.Err())
	}
}

// Stats contadores para diagnóstico y tests.
type Stats struct {
	Processed int64
	Failed    int64
	Dropped   int64
}

// Stats devuelve los contadores acumulados.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Processed: d.processed.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}

func (d *Dispatcher) work(n int) {
	defer d.wg.Done()
	for job := range d.queue {
		d.run(n, job)
	}
}

func (d *Dispatcher) run(n int, job Job) {
	ctx, cancel := context.WithTimeout(d.baseCtx, d.timeout)
	defer cancel()

	err := d.safeRun(ctx, job)
	d.processed.Add(1)
	if err != nil {
		d.failed.Add(1)
		d.log.Error().Err(err).Str("job", job.Name).Int("worker", n).Msg("aviso fallido")
		return
	}
	d.log.Debug().Str("job", job.Name).Int("worker", n).Msg("aviso enviado")
}

func (d *Dispatcher) safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if job.Run == nil {
		return nil
	}
	return job.Run(ctx)
}
