package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
)

// RunSummary counts what happened to the rows of one input stream.
type RunSummary struct {
	Rows      int
	Accepted  int
	Rejected  int
	Malformed int
}

// ProcessUseCase folds an event source through an EventApplier, one event at
// a time and in arrival order.
type ProcessUseCase struct {
	applier EventApplier
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewProcessUseCase(applier EventApplier, metrics *metrics.Metrics, logger zerolog.Logger) *ProcessUseCase {
	return &ProcessUseCase{
		applier: applier,
		metrics: metrics,
		logger:  logger,
	}
}

// Run drains source. Malformed rows and rejected events are logged and
// skipped; any other error stops the run and is returned.
func (uc *ProcessUseCase) Run(ctx context.Context, source EventSource) (RunSummary, error) {
	var summary RunSummary

	for {
		event, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			if !errors.Is(err, domain.ErrMalformedRecord) {
				return summary, err
			}

			summary.Rows++
			summary.Malformed++
			if uc.metrics != nil {
				uc.metrics.MalformedRows.Inc()
			}
			uc.logger.Warn().Err(err).Str("reason", domain.ReasonMalformedRecord).Msg("discarding row")
			continue
		}

		summary.Rows++

		if err := uc.applier.Apply(ctx, event); err != nil {
			if !domain.IsRejection(err) {
				return summary, err
			}

			summary.Rejected++
			reason := domain.Reason(err)
			if uc.metrics != nil {
				uc.metrics.Events.WithLabelValues(string(event.Type), metrics.OutcomeRejected).Inc()
				uc.metrics.Rejections.WithLabelValues(reason).Inc()
			}
			uc.logger.Warn().
				Err(err).
				Str("reason", reason).
				Str("type", string(event.Type)).
				Uint16("client", uint16(event.Client)).
				Uint32("tx", uint32(event.Tx)).
				Msg("rejecting event")
			continue
		}

		summary.Accepted++
		if uc.metrics != nil {
			uc.metrics.Events.WithLabelValues(string(event.Type), metrics.OutcomeAccepted).Inc()
		}
		uc.logger.Debug().
			Str("type", string(event.Type)).
			Uint16("client", uint16(event.Client)).
			Uint32("tx", uint32(event.Tx)).
			Msg("applied event")
	}
}
