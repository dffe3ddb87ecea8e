package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"medipred/internal/model"
	"medipred/internal/service"
	"medipred/internal/transport/rest/middleware"
	"medipred/pkg/pagination"
)

// PredictionService is the subset of service.PredictionService the REST
// layer uses
type PredictionService interface {
	Preview(ctx context.Context, condition model.ConditionType, form model.Form) (*model.PredictionResult, error)
	Assess(ctx context.Context, ownerID string, condition model.ConditionType, form model.Form) (*model.PredictionRecord, error)
	Save(ctx context.Context, ownerID string, condition model.ConditionType, form model.Form, result *model.PredictionResult) (*model.PredictionRecord, error)
	List(ctx context.Context, ownerID string, page pagination.Params) ([]*model.PredictionRecord, int64, error)
	Get(ctx context.Context, ownerID, id string) (*model.PredictionRecord, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteAll(ctx context.Context, ownerID string) (int64, error)
	Summary(ctx context.Context, ownerID string) ([]model.ConditionSummary, error)
}

// PredictionHandler handles assessment and prediction history endpoints
type PredictionHandler struct {
	predictionSvc PredictionService
	logger        zerolog.Logger
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionSvc PredictionService, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{predictionSvc: predictionSvc, logger: logger}
}

// AssessmentResponse is returned by POST /v1/assessments/{condition}
type AssessmentResponse struct {
	*model.PredictionRecord
	Persisted bool `json:"persisted"`
}

// UnsavedAssessmentResponse is returned when scoring succeeded but the
// record could not be stored
type UnsavedAssessmentResponse struct {
	Error     string                  `json:"error"`
	Result    *model.PredictionResult `json:"result"`
	Persisted bool                    `json:"persisted"`
}

// SavePredictionRequest is the body of POST /v1/predictions
type SavePredictionRequest struct {
	PredictionType model.ConditionType     `json:"predictionType"`
	FormData       model.Form              `json:"formData"`
	Result         *model.PredictionResult `json:"result"`
}

func decodeForm(r *http.Request) (model.Form, error) {
	var form model.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		return nil, err
	}
	if form == nil {
		return nil, errors.New("questionnaire must be a JSON object")
	}
	return form, nil
}

// Assess handles POST /v1/assessments/{condition}
// @Summary Score and store a questionnaire
// @Tags assessments
// @Param condition path string true "heart | diabetes | parkinsons | mental-health"
// @Success 201 {object} AssessmentResponse
// @Router /assessments/{condition} [post]
func (h *PredictionHandler) Assess(w http.ResponseWriter, r *http.Request) {
	condition := model.ConditionType(mux.Vars(r)["condition"])
	form, err := decodeForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.predictionSvc.Assess(r.Context(), middleware.GetUserID(r.Context()), condition, form)
	if err != nil {
		var serr *service.StoreError
		if errors.As(err, &serr) && serr.Result != nil {
			h.logger.Error().Err(err).Str("request_id", middleware.GetRequestID(r.Context())).Msg("assessment not persisted")
			writeJSON(w, http.StatusInternalServerError, UnsavedAssessmentResponse{
				Error:     "assessment scored but could not be saved",
				Result:    serr.Result,
				Persisted: false,
			})
			return
		}
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, AssessmentResponse{PredictionRecord: record, Persisted: true})
}

// Preview handles POST /v1/assessments/{condition}/preview
// @Summary Score a questionnaire without storing it
// @Tags assessments
// @Success 200 {object} model.PredictionResult
// @Router /assessments/{condition}/preview [post]
func (h *PredictionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	condition := model.ConditionType(mux.Vars(r)["condition"])
	form, err := decodeForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.predictionSvc.Preview(r.Context(), condition, form)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Save handles POST /v1/predictions
// @Summary Store a client-computed prediction
// @Tags predictions
// @Success 201 {object} model.PredictionRecord
// @Router /predictions [post]
func (h *PredictionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SavePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.predictionSvc.Save(r.Context(), middleware.GetUserID(r.Context()), req.PredictionType, req.FormData, req.Result)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// List handles GET /v1/predictions
// @Summary List the caller's predictions, newest first
// @Tags predictions
// @Param limit query int false "page size (max 100)"
// @Param offset query int false "records to skip"
// @Success 200 {object} pagination.Response
// @Router /predictions [get]
func (h *PredictionHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	records, total, err := h.predictionSvc.List(r.Context(), middleware.GetUserID(r.Context()), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pagination.NewResponse(records, total, page))
}

// Summary handles GET /v1/predictions/summary
// @Summary Per-condition totals for the caller
// @Tags predictions
// @Success 200 {array} model.ConditionSummary
// @Router /predictions/summary [get]
func (h *PredictionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.predictionSvc.Summary(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if summary == nil {
		summary = []model.ConditionSummary{}
	}
	writeJSON(w, http.StatusOK, summary)
}

// Get handles GET /v1/predictions/{id}
// @Summary Fetch one prediction
// @Tags predictions
// @Success 200 {object} model.PredictionRecord
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /predictions/{id} [get]
func (h *PredictionHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.predictionSvc.Get(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /v1/predictions/{id}
// @Summary Delete one prediction
// @Tags predictions
// @Router /predictions/{id} [delete]
func (h *PredictionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.predictionSvc.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "prediction removed", "id": id})
}

// DeleteAll handles DELETE /v1/predictions
// @Summary Delete all of the caller's predictions
// @Tags predictions
// @Router /predictions [delete]
func (h *PredictionHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.predictionSvc.DeleteAll(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "all predictions deleted", "deleted": n})
}

func (h *PredictionHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		// Client went away; nothing to write to.
		return
	}
	if service.IsStoreError(err) {
		h.logger.Error().Err(err).Str("request_id", middleware.GetRequestID(r.Context())).Msg("prediction store failure")
	}
	writeServiceError(w, err)
}
