package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"medipred/internal/cache"
	"medipred/internal/model"
	"medipred/internal/repository"
	"medipred/internal/risk"
	"medipred/pkg/pagination"
)

// PredictionService scores questionnaires and manages a user's prediction
// history. Every record operation is scoped to the authenticated owner.
type PredictionService struct {
	repo        repository.PredictionRepo
	history     cache.HistoryCache
	scorers     *risk.Registry
	latency     Latency
	broadcaster Broadcaster
	logger      zerolog.Logger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	repo repository.PredictionRepo,
	history cache.HistoryCache,
	scorers *risk.Registry,
	latency Latency,
	logger zerolog.Logger,
) *PredictionService {
	if history == nil {
		history = cache.NewNoopHistoryCache()
	}
	if latency == nil {
		latency = NewLatency(0)
	}
	return &PredictionService{
		repo:    repo,
		history: history,
		scorers: scorers,
		latency: latency,
		logger:  logger,
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *PredictionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Preview scores a questionnaire without persisting it. Invalid input fails
// immediately; a valid one is held for the configured latency.
func (s *PredictionService) Preview(ctx context.Context, condition model.ConditionType, form model.Form) (*model.PredictionResult, error) {
	result, err := s.scorers.Evaluate(condition, form)
	if err != nil {
		return nil, err
	}
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Assess scores a questionnaire and stores the outcome for ownerID. If the
// write fails the returned *StoreError carries the result.
func (s *PredictionService) Assess(ctx context.Context, ownerID string, condition model.ConditionType, form model.Form) (*model.PredictionRecord, error) {
	result, err := s.Preview(ctx, condition, form)
	if err != nil {
		return nil, err
	}

	record := &model.PredictionRecord{
		UserID:         ownerID,
		PredictionType: condition,
		Result:         *result,
		FormData:       form,
	}
	if err := s.create(ctx, record); err != nil {
		return nil, &StoreError{Op: "create", Err: err, Result: result}
	}
	return record, nil
}

// Save stores a result computed elsewhere, e.g. by a client that scored the
// questionnaire itself.
func (s *PredictionService) Save(ctx context.Context, ownerID string, condition model.ConditionType, form model.Form, result *model.PredictionResult) (*model.PredictionRecord, error) {
	verr := risk.NewValidationError(condition)
	if _, err := s.scorers.Get(condition); err != nil {
		verr.Fields = append(verr.Fields, risk.FieldError{Field: "predictionType", Reason: "is not supported"})
	}
	if len(form) == 0 {
		verr.Fields = append(verr.Fields, risk.FieldError{Field: "formData", Reason: "is required"})
	}
	if result == nil {
		verr.Fields = append(verr.Fields, risk.FieldError{Field: "result", Reason: "is required"})
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	record := &model.PredictionRecord{
		UserID:         ownerID,
		PredictionType: condition,
		Result:         *result,
		FormData:       form,
	}
	if err := s.create(ctx, record); err != nil {
		return nil, &StoreError{Op: "create", Err: err, Result: result}
	}
	return record, nil
}

func (s *PredictionService) create(ctx context.Context, record *model.PredictionRecord) error {
	if _, err := s.repo.Create(ctx, record); err != nil {
		return err
	}
	s.invalidate(ctx, record.UserID)
	s.broadcast(record.UserID, EventPredictionCreated, record)

	s.logger.Info().
		Str("prediction_id", record.ID).
		Str("user_id", record.UserID).
		Str("condition", string(record.PredictionType)).
		Float64("probability", record.Result.Probability).
		Bool("elevated", record.Result.IsElevatedRisk()).
		Msg("prediction stored")
	return nil
}

// List returns one page of ownerID's predictions, newest first
func (s *PredictionService) List(ctx context.Context, ownerID string, page pagination.Params) ([]*model.PredictionRecord, int64, error) {
	cached, err := s.history.GetPage(ctx, ownerID, page)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", ownerID).Msg("history cache read failed")
	}
	if cached != nil {
		return cached.Records, cached.Total, nil
	}

	gen, genErr := s.history.Generation(ctx, ownerID)
	records, total, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, 0, storeErr("list", err)
	}

	if genErr != nil {
		s.logger.Warn().Err(genErr).Str("user_id", ownerID).Msg("history cache read failed")
	} else if err := s.history.SetPage(ctx, ownerID, gen, page, &cache.HistoryPage{Records: records, Total: total}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", ownerID).Msg("history cache write failed")
	}
	return records, total, nil
}

// Get returns a single prediction owned by ownerID
func (s *PredictionService) Get(ctx context.Context, ownerID, id string) (*model.PredictionRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get", err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if record.UserID != ownerID {
		return nil, ErrUnauthorized
	}
	return record, nil
}

// Delete removes one of ownerID's predictions
func (s *PredictionService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storeErr("delete", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.invalidate(ctx, ownerID)
	s.broadcast(ownerID, EventPredictionDeleted, map[string]string{"id": id})
	return nil
}

// DeleteAll removes every prediction owned by ownerID and reports how many
// were removed.
func (s *PredictionService) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	n, err := s.repo.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		return 0, storeErr("delete all", err)
	}

	s.invalidate(ctx, ownerID)
	s.broadcast(ownerID, EventPredictionsCleared, map[string]int64{"count": n})
	return n, nil
}

// Summary returns per-condition totals for ownerID
func (s *PredictionService) Summary(ctx context.Context, ownerID string) ([]model.ConditionSummary, error) {
	cached, err := s.history.GetSummary(ctx, ownerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", ownerID).Msg("history cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	gen, genErr := s.history.Generation(ctx, ownerID)
	summary, err := s.repo.SummaryByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeErr("summary", err)
	}

	if genErr != nil {
		s.logger.Warn().Err(genErr).Str("user_id", ownerID).Msg("history cache read failed")
	} else if err := s.history.SetSummary(ctx, ownerID, gen, summary); err != nil {
		s.logger.Warn().Err(err).Str("user_id", ownerID).Msg("history cache write failed")
	}
	return summary, nil
}

func (s *PredictionService) invalidate(ctx context.Context, ownerID string) {
	// Detached from request cancellation
	if err := s.history.Invalidate(context.WithoutCancel(ctx), ownerID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", ownerID).Msg("history cache invalidation failed")
	}
}

func (s *PredictionService) broadcast(ownerID, event string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(ownerID, event, payload)
	}
}

// IsStoreError reports whether err is or wraps a *StoreError
func IsStoreError(err error) bool {
	var serr *StoreError
	return errors.As(err, &serr)
}
