package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DealershipService implements the storefront and back-office operations.
type DealershipService struct {
	vehicles  VehicleRepo
	bookings  BookingRepo
	financing FinancingRepo
	settings  SettingsRepo
	plans     PlanProvider
	idem      IdempotencyStore
	views     ViewCounter
	clock     Clock
	idgen     IDGen
	log       *zap.Logger
}

type Option func(*DealershipService)

func WithClock(c Clock) Option { return func(s *DealershipService) { s.clock = c } }
func WithIDGen(g IDGen) Option { return func(s *DealershipService) { s.idgen = g } }

// WithViewCounter buffers page views instead of writing each one to the store.
func WithViewCounter(v ViewCounter) Option { return func(s *DealershipService) { s.views = v } }
func WithLogger(l *zap.Logger) Option { return func(s *DealershipService) { s.log = l } }

func NewDealershipService(
	vehicles VehicleRepo,
	bookings BookingRepo,
	financing FinancingRepo,
	settings SettingsRepo,
	plans PlanProvider,
	idem IdempotencyStore,
	opts ...Option,
) *DealershipService {
	s := &DealershipService{
		vehicles:  vehicles,
		bookings:  bookings,
		financing: financing,
		settings:  settings,
		plans:     plans,
		idem:      idem,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	if s.idem == nil {
		s.idem = NoopIdempotency{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// reserve claims an idempotency key within scope. An empty key is always accepted.
func (s *DealershipService) reserve(ctx context.Context, scope string, key *string) error {
	if key == nil || *key == "" {
		return nil
	}
	ok, err := s.idem.TryReserve(ctx, scope+":"+*key)
	if err != nil {
		return fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}
