package flow

import (
	"slices"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/motion"
)

// FeatureSheet drives the "What's New" sheet: a static list of feature rows
// and one continue action. An empty list is valid; the sheet still shows its
// header and button.
type FeatureSheet struct {
	opts options

	features []domain.FeatureRow
	finished bool
	pending  *motion.Pending
}

// NewFeatureSheet creates a sheet for features.
func NewFeatureSheet(features []domain.FeatureRow, opts ...Option) *FeatureSheet {
	return &FeatureSheet{
		opts:     newOptions(domain.FlowWhatsNew, opts),
		features: slices.Clone(features),
	}
}

// Features returns a copy of the rows.
func (s *FeatureSheet) Features() []domain.FeatureRow { return slices.Clone(s.features) }

// ButtonLabel returns the continue button title.
func (s *FeatureSheet) ButtonLabel() string { return LabelContinue }

// ReduceMotion reports whether transitions are instant.
func (s *FeatureSheet) ReduceMotion() bool { return s.opts.reduceMotion }

// Finished reports whether Continue was called.
func (s *FeatureSheet) Finished() bool { return s.finished }

// Pending returns the completion handle once Continue ran, nil before.
func (s *FeatureSheet) Pending() *motion.Pending { return s.pending }

// RowDelay returns the entrance delay of the row at index.
func (s *FeatureSheet) RowDelay(index int) time.Duration {
	return s.opts.sequencer.Delay(index, s.opts.reduceMotion)
}

// ButtonDelay returns the entrance delay of the continue button. It is fixed
// by the animation config, not derived from the number of rows.
func (s *FeatureSheet) ButtonDelay() time.Duration {
	return s.ButtonTransition().Delay
}

// ButtonTransition returns the spring entrance of the continue button.
func (s *FeatureSheet) ButtonTransition() motion.Spec {
	return s.opts.sequencer.Button(s.opts.reduceMotion)
}

// Continue completes the sheet. The completion callback runs once, after the
// exit animation; later calls return domain.ErrFlowFinished.
func (s *FeatureSheet) Continue() error {
	if s.finished {
		return domain.ErrFlowFinished
	}
	s.finished = true

	s.opts.logger.Debug("feature sheet continued", "features", len(s.features))
	if s.opts.hooks.OnFinish != nil {
		s.opts.hooks.OnFinish(s.opts.ctx, &domain.FinishEvent{
			EventBase: s.opts.base(domain.EventFinish),
		})
	}

	s.pending = s.opts.sequencer.Exit(s.opts.reduceMotion, s.opts.onFinish)
	return nil
}
