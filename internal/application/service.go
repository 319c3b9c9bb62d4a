package application

import (
	"context"
	"fmt"
	"io"
	"os"

	"fxrates-etl/internal/domain"
	"fxrates-etl/internal/infrastructure/logx"

	"go.uber.org/zap"
)

// Lines printed for the scheduler. They never carry error detail; that goes to the log.
const (
	SuccessMessage = "FX ETL completed successfully"
	FailureMessage = "FX ETL failed — check logs"
)

// Result is what one Run did. Err is nil on success.
type Result struct {
	RunID     string
	Date      string
	Base      string
	Attempted int
	Err       error
}

func (r Result) Succeeded() bool { return r.Err == nil }

// ETLService runs the fetch-and-store pipeline once per Run call.
type ETLService struct {
	store    RateStore
	fetcher  RateFetcher
	recorder RunRecorder
	log      *zap.Logger
	out      io.Writer
	clock    Clock
	idgen    IDGen
}

type Option func(*ETLService)

func WithClock(c Clock) Option { return func(s *ETLService) { s.clock = c } }
func WithIDGen(g IDGen) Option { return func(s *ETLService) { s.idgen = g } }
func WithLogger(l *zap.Logger) Option { return func(s *ETLService) { s.log = l } }
func WithOutput(w io.Writer) Option { return func(s *ETLService) { s.out = w } }
func WithRecorder(r RunRecorder) Option { return func(s *ETLService) { s.recorder = r } }

func NewETLService(store RateStore, fetcher RateFetcher, opts ...Option) *ETLService {
	s := &ETLService{
		store:   store,
		fetcher: fetcher,
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
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.recorder == nil {
		s.recorder = NoopRecorder{}
	}
	return s
}

// Run executes one pipeline pass. Failures are logged and reported through the
// returned Result and the failure line; Run itself never fails.
func (s *ETLService) Run(ctx context.Context) Result {
	started := s.clock.Now()
	res := Result{
		RunID: s.idgen.NewID(),
		Date:  started.Format(domain.DateLayout),
	}
	log := s.log.With(zap.String("run_id", res.RunID))
	ctx = logx.WithContext(ctx, log)
	log.Info("etl.started", zap.String("date", res.Date))

	defer func() {
		log.Info("etl.finished")
		s.record(ctx, log, res)
	}()

	if err := s.run(ctx, log, &res); err != nil {
		res.Err = err
		log.Error("etl.failed",
			zap.Error(err),
			zap.Strings("cause_chain", CauseChain(err)),
			zap.Stack("stack"),
		)
		fmt.Fprintln(s.out, FailureMessage)
		return res
	}
	fmt.Fprintln(s.out, SuccessMessage)
	return res
}

func (s *ETLService) run(ctx context.Context, log *zap.Logger, res *Result) error {
	if err := s.store.Init(ctx); err != nil {
		return err
	}
	snap, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	res.Base = snap.Source

	n, err := NewRatePersister(s.store, log).Save(ctx, res.Base, snap.Quotes, res.Date)
	if err != nil {
		return err
	}
	res.Attempted = n
	log.Info("etl.saved",
		zap.Int("count", n),
		zap.String("date", res.Date),
		zap.String("base", res.Base),
	)
	return nil
}

func (s *ETLService) record(ctx context.Context, log *zap.Logger, res Result) {
	report := RunReport{
		RunID:      res.RunID,
		Status:     RunStatusSucceeded,
		Date:       res.Date,
		Base:       res.Base,
		Attempted:  res.Attempted,
		Err:        res.Err,
		FinishedAt: s.clock.Now(),
	}
	if res.Err != nil {
		report.Status = RunStatusFailed
	}
	if err := s.recorder.Record(ctx, report); err != nil {
		log.Warn("etl.record_failed", zap.Error(err))
	}
}
