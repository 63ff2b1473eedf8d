package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

const (
	defaultSubmitTimeout  = 3 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 100 * time.Millisecond
	backoffMultiplier     = 2
)

// Service orchestrates the orders use cases. SubmitOrder is deliberately
// fail-safe: every failure path degrades to "no order produced" and the
// reason is only visible in logs, never to the caller.
type Service struct {
	catalog ports.BookCatalog
	repo    ports.Repository
	events  ports.EventPublisher
	logger  *slog.Logger

	submitTimeout  time.Duration
	maxRetries     uint64
	initialBackoff time.Duration
}

type Option func(*Service)

// WithEventPublisher enables best-effort order-accepted announcements.
func WithEventPublisher(events ports.EventPublisher) Option {
	return func(s *Service) {
		s.events = events
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSubmitTimeout overrides the per-attempt deadline on lookup + persist.
func WithSubmitTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.submitTimeout = d
		}
	}
}

// WithRetryPolicy overrides the retry cap and the initial backoff delay.
func WithRetryPolicy(maxRetries uint64, initialBackoff time.Duration) Option {
	return func(s *Service) {
		s.maxRetries = maxRetries
		if initialBackoff > 0 {
			s.initialBackoff = initialBackoff
		}
	}
}

// NewService wires the orders service with its two collaborator ports.
func NewService(catalog ports.BookCatalog, repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		catalog:        catalog,
		repo:           repo,
		logger:         slog.Default(),
		submitTimeout:  defaultSubmitTimeout,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitOrder runs the submission pipeline: catalog lookup, order construction,
// persistence. A clean absent lookup yields a rejected order; a not-found
// transport failure or an expired attempt deadline short-circuits to nil
// without retrying; any other failure is retried with exponential backoff up
// to the retry cap. No error ever reaches the caller: the only degraded
// outcome is a nil order.
func (s *Service) SubmitOrder(ctx context.Context, isbn string, quantity int) *domain.Order {
	var placed *domain.Order
	attempt := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
		defer cancel()
		order, err := s.placeOrder(attemptCtx, isbn, quantity)
		switch {
		case err == nil:
			placed = order
			return nil
		case errors.Is(err, ports.ErrBookNotFound):
			// Protocol-level not-found: fall back immediately, no retry.
			return backoff.Permanent(err)
		case attemptCtx.Err() != nil:
			// Attempt deadline or caller cancellation: the in-flight call was
			// already cancelled through the context; never retried.
			return backoff.Permanent(err)
		default:
			return err
		}
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order submission degraded, no order produced",
			slog.String("isbn", isbn), slog.Int("quantity", quantity), slog.String("error", err.Error()))
		return nil
	}
	s.publishAccepted(ctx, placed)
	return placed
}

// placeOrder is one pass of pipeline steps 1-3: lookup, build, persist.
func (s *Service) placeOrder(ctx context.Context, isbn string, quantity int) (*domain.Order, error) {
	book, err := s.catalog.LookupByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	var order *domain.Order
	if book != nil {
		order = domain.BuildAcceptedOrder(*book, quantity)
	} else {
		order = domain.BuildRejectedOrder(isbn, quantity)
	}
	return s.repo.Save(ctx, order)
}

// GetAllOrders is a pass-through to the store listing; whatever order the
// store yields is preserved.
func (s *Service) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) publishAccepted(ctx context.Context, order *domain.Order) {
	if s.events == nil || order == nil || order.Status != domain.StatusAccepted {
		return
	}
	if err := s.events.OrderAccepted(ctx, order); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish order accepted event",
			slog.Int64("order.id", order.ID), slog.String("error", err.Error()))
	}
}

func (s *Service) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialBackoff
	b.Multiplier = backoffMultiplier
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return b
}

var _ ports.Service = (*Service)(nil)
