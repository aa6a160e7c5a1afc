// Package store persists estimates and feedback through gdata. Without a gdata manager
// it keeps everything in memory.
package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	storeObject     = "rc"
	estimatesProp   = "estimates"
	feedbacksProp   = "feedbacks"
	maxFeedbackRate = 5
)

// Estimate is one saved calculation.
type Estimate struct {
	ID         string    `yaml:"id"`
	Wood       string    `yaml:"wood"`
	Complexity float64   `yaml:"complexity"`
	Size       float64   `yaml:"size"`
	Tool       string    `yaml:"tool"`
	Hours      int       `yaml:"hrs"`
	Minutes    int       `yaml:"mins"`
	Created    time.Time `yaml:"created"`
}

// Feedback is one rating left in the feedback panel.
type Feedback struct {
	ID      string    `yaml:"id"`
	Name    string    `yaml:"name"`
	Message string    `yaml:"message"`
	Rating  int       `yaml:"rating"`
	Created time.Time `yaml:"created"`
}

// IsMaximum reports whether the rating is the top score.
func (f Feedback) IsMaximum() bool { return f.Rating >= maxFeedbackRate }

// Store holds both collections in insertion order and writes each one through on
// every mutation.
type Store struct {
	manager   *gdata.Manager
	logger    *zap.Logger
	now       func() time.Time
	estimates []Estimate
	feedbacks []Feedback
}

// Open loads whatever was saved under manager. manager may be nil. Unreadable data is
// logged and replaced by an empty collection.
func Open(manager *gdata.Manager, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{manager: manager, logger: logger, now: time.Now}
	if err := s.load(estimatesProp, &s.estimates); err != nil {
		logger.Warn("discarding saved estimates", zap.Error(err))
		s.estimates = nil
	}
	if err := s.load(feedbacksProp, &s.feedbacks); err != nil {
		logger.Warn("discarding saved feedback", zap.Error(err))
		s.feedbacks = nil
	}
	logger.Debug("store opened",
		zap.Bool("persistent", manager != nil),
		zap.Int("estimates", len(s.estimates)),
		zap.Int("feedbacks", len(s.feedbacks)))
	return s
}

func (s *Store) load(prop string, dst any) error {
	if s.manager == nil || !s.manager.ObjectPropExists(storeObject, prop) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(storeObject, prop)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", prop, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", prop, err)
	}
	return nil
}

func (s *Store) save(prop string, v any) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", prop, err)
	}
	if err := s.manager.SaveObjectProp(storeObject, prop, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", prop, err)
	}
	return nil
}

// Persistent reports whether writes reach disk.
func (s *Store) Persistent() bool { return s.manager != nil }

// Estimates returns the saved estimates, newest first.
func (s *Store) Estimates() []Estimate {
	out := slices.Clone(s.estimates)
	slices.Reverse(out)
	return out
}

// LastEstimate returns the most recently added estimate.
func (s *Store) LastEstimate() (Estimate, bool) {
	if len(s.estimates) == 0 {
		return Estimate{}, false
	}
	return s.estimates[len(s.estimates)-1], true
}

// AllEstimates returns the estimates in the order they were added.
func (s *Store) AllEstimates() []Estimate { return slices.Clone(s.estimates) }

// AddEstimate stamps e with an ID and creation time when missing and saves it.
func (s *Store) AddEstimate(e Estimate) (Estimate, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Created.IsZero() {
		e.Created = s.now().UTC()
	}
	s.estimates = append(s.estimates, e)
	return e, s.save(estimatesProp, s.estimates)
}

// DeleteEstimate removes the estimate with id. Unknown ids are ignored.
func (s *Store) DeleteEstimate(id string) error {
	s.estimates = slices.DeleteFunc(s.estimates, func(e Estimate) bool { return e.ID == id })
	return s.save(estimatesProp, s.estimates)
}

// ClearEstimates drops every estimate.
func (s *Store) ClearEstimates() error {
	s.estimates = nil
	return s.save(estimatesProp, []Estimate{})
}

// Feedbacks returns the saved feedback, newest first.
func (s *Store) Feedbacks() []Feedback {
	out := slices.Clone(s.feedbacks)
	slices.Reverse(out)
	return out
}

// AllFeedbacks returns the feedback in the order it was added.
func (s *Store) AllFeedbacks() []Feedback { return slices.Clone(s.feedbacks) }

// AddFeedback stamps f with an ID and creation time when missing and saves it.
func (s *Store) AddFeedback(f Feedback) (Feedback, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Created.IsZero() {
		f.Created = s.now().UTC()
	}
	s.feedbacks = append(s.feedbacks, f)
	return f, s.save(feedbacksProp, s.feedbacks)
}

// DeleteFeedback removes the feedback with id. Unknown ids are ignored.
func (s *Store) DeleteFeedback(id string) error {
	s.feedbacks = slices.DeleteFunc(s.feedbacks, func(f Feedback) bool { return f.ID == id })
	return s.save(feedbacksProp, s.feedbacks)
}

// ClearFeedbacks drops every feedback entry.
func (s *Store) ClearFeedbacks() error {
	s.feedbacks = nil
	return s.save(feedbacksProp, []Feedback{})
}

// Flush writes both collections again. Called on shutdown.
func (s *Store) Flush() error {
	if err := s.save(estimatesProp, s.AllEstimates()); err != nil {
		return err
	}
	return s.save(feedbacksProp, s.AllFeedbacks())
}
