package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/bookhaven/order-service/internal/domains/orders/domain"
	ordersports "github.com/bookhaven/order-service/internal/domains/orders/ports"
)

const tracerName = "github.com/bookhaven/order-service/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.Default(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) SubmitOrder(ctx context.Context, isbn string, quantity int) *ordersdomain.Order {
	ctx, span := s.tracer.Start(ctx, "OrderService.SubmitOrder",
		trace.WithAttributes(attribute.String("order.isbn", isbn), attribute.Int("order.quantity", quantity)))
	defer span.End()

	s.logInfo(ctx, "submitting order", slog.String("isbn", isbn), slog.Int("quantity", quantity))
	order := s.inner.SubmitOrder(ctx, isbn, quantity)
	if order == nil {
		// The pipeline degraded; the reason was already logged where it happened.
		span.SetStatus(codes.Error, "no order produced")
		s.metrics.recordDegraded(ctx)
		s.logInfo(ctx, "order submission produced no order", slog.String("isbn", isbn))
		return nil
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID), attribute.String("order.status", string(order.Status)))
	s.metrics.recordSubmitted(ctx, order.Status)
	s.logInfo(ctx, "order submitted",
		slog.Int64("order.id", order.ID), slog.String("status", string(order.Status)))
	return order
}

func (s *Service) GetAllOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetAllOrders")
	defer span.End()

	result, err := s.inner.GetAllOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersSubmitted metric.Int64Counter
	ordersDegraded  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersSubmitted, _ := m.Int64Counter("orders.service.submitted",
		metric.WithDescription("Number of orders persisted by status"))
	ordersDegraded, _ := m.Int64Counter("orders.service.degraded",
		metric.WithDescription("Number of submissions that produced no order"))
	return serviceMetrics{ordersSubmitted: ordersSubmitted, ordersDegraded: ordersDegraded}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, status ordersdomain.Status) {
	if m.ordersSubmitted != nil {
		m.ordersSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDegraded(ctx context.Context) {
	if m.ordersDegraded != nil {
		m.ordersDegraded.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
