package controllers

import (
	"context"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/dto/requests"
	"mentorin-service/internal/pkg/dto/responses"
	"mentorin-service/internal/pkg/exceptions"
	"mentorin-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log              *zap.Logger
	AdmissionUsecase contracts.SlotAdmissionUsecase
	QueryUsecase     contracts.AvailabilityQueryUsecase
}

func NewAvailabilityController(
	logger *zap.Logger,
	admissionUsecase contracts.SlotAdmissionUsecase,
	queryUsecase contracts.AvailabilityQueryUsecase,
) *AvailabilityController {
	return &AvailabilityController{
		Log:              logger,
		AdmissionUsecase: admissionUsecase,
		QueryUsecase:     queryUsecase,
	}
}

func (ctrl *AvailabilityController) CreateWeeklySlot(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "CreateWeeklySlot")
	if !ok {
		return
	}

	request := new(requests.CreateWeeklySlot)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("AvailabilityController.CreateWeeklySlot error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AvailabilityController.CreateWeeklySlot validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slot, err := ctrl.AdmissionUsecase.AddWeeklySlot(ctx, mentorID, request)
	if err != nil {
		ctrl.respondUsecaseError(w, requestID, "CreateWeeklySlot", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.WeeklySlotCreatedSuccess, slot)
}

func (ctrl *AvailabilityController) UpdateWeeklySlot(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "UpdateWeeklySlot")
	if !ok {
		return
	}
	slotID := chi.URLParam(r, constvars.URLParamSlotID)

	request := new(requests.UpdateSlotTimes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.AdmissionUsecase.UpdateWeeklySlot(ctx, slotID, mentorID, request); err != nil {
		ctrl.respondUsecaseError(w, requestID, "UpdateWeeklySlot", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WeeklySlotUpdatedSuccess, nil)
}

func (ctrl *AvailabilityController) DeleteWeeklySlot(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "DeleteWeeklySlot")
	if !ok {
		return
	}
	slotID := chi.URLParam(r, constvars.URLParamSlotID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.AdmissionUsecase.DeleteWeeklySlot(ctx, slotID, mentorID); err != nil {
		ctrl.respondUsecaseError(w, requestID, "DeleteWeeklySlot", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WeeklySlotDeletedSuccess, nil)
}

func (ctrl *AvailabilityController) ToggleWeeklySlot(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "ToggleWeeklySlot")
	if !ok {
		return
	}
	slotID := chi.URLParam(r, constvars.URLParamSlotID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.AdmissionUsecase.ToggleWeeklySlot(ctx, slotID, mentorID); err != nil {
		ctrl.respondUsecaseError(w, requestID, "ToggleWeeklySlot", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WeeklySlotToggledSuccess, nil)
}

func (ctrl *AvailabilityController) ToggleWeekday(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "ToggleWeekday")
	if !ok {
		return
	}

	dayOfWeek, err := strconv.Atoi(chi.URLParam(r, constvars.URLParamDayOfWeek))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidWeekday(-1))
		return
	}

	request := new(requests.ToggleWeekday)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Activating a weekday that has no slots would advertise an empty day, so
	// that combination is rejected here rather than in the admission service.
	if *request.Active {
		rules, err := ctrl.QueryUsecase.ListMentorRules(ctx, mentorID)
		if err != nil {
			ctrl.respondUsecaseError(w, requestID, "ToggleWeekday", err)
			return
		}
		hasSlots := false
		for _, slot := range rules.Weekly {
			if slot.DayOfWeek == dayOfWeek {
				hasSlots = true
				break
			}
		}
		if !hasSlots {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrVacuousWeekdayToggle(dayOfWeek))
			return
		}
	}

	if err := ctrl.AdmissionUsecase.ToggleWeekday(ctx, mentorID, dayOfWeek, *request.Active); err != nil {
		ctrl.respondUsecaseError(w, requestID, "ToggleWeekday", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WeekdayToggledSuccess, nil)
}

func (ctrl *AvailabilityController) CreateDateOverrideSlot(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "CreateDateOverrideSlot")
	if !ok {
		return
	}

	request := new(requests.CreateDateOverrideSlot)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slot, err := ctrl.AdmissionUsecase.AddDateOverrideSlot(ctx, mentorID, request)
	if err != nil {
		ctrl.respondUsecaseError(w, requestID, "CreateDateOverrideSlot", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DateOverrideCreatedSuccess, slot)
}

func (ctrl *AvailabilityController) UpdateDateOverrideSlot(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "UpdateDateOverrideSlot")
	if !ok {
		return
	}
	slotID := chi.URLParam(r, constvars.URLParamSlotID)

	request := new(requests.UpdateSlotTimes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.AdmissionUsecase.UpdateDateOverrideSlot(ctx, slotID, mentorID, request); err != nil {
		ctrl.respondUsecaseError(w, requestID, "UpdateDateOverrideSlot", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DateOverrideUpdatedSuccess, nil)
}

func (ctrl *AvailabilityController) DeleteDateOverrideSlot(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "DeleteDateOverrideSlot")
	if !ok {
		return
	}
	slotID := chi.URLParam(r, constvars.URLParamSlotID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.AdmissionUsecase.DeleteDateOverrideSlot(ctx, slotID, mentorID); err != nil {
		ctrl.respondUsecaseError(w, requestID, "DeleteDateOverrideSlot", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DateOverrideDeletedSuccess, nil)
}

func (ctrl *AvailabilityController) ListMentorRules(w http.ResponseWriter, r *http.Request) {
	requestID, mentorID, ok := ctrl.requestScope(w, r, "ListMentorRules")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rules, err := ctrl.QueryUsecase.ListMentorRules(ctx, mentorID)
	if err != nil {
		ctrl.respondUsecaseError(w, requestID, "ListMentorRules", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MentorRulesGetSuccess, rules)
}

// FindBookableStartTimes is the learner-facing read: the mentor is named by
// query parameter, not by the authenticated session.
func (ctrl *AvailabilityController) FindBookableStartTimes(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AvailabilityController.FindBookableStartTimes requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	mentorID := r.URL.Query().Get(constvars.QueryParamMentorID)
	if mentorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(nil))
		return
	}

	date, err := time.Parse(constvars.CalendarDateLayout, r.URL.Query().Get(constvars.QueryParamDate))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseDate(err))
		return
	}

	durationHours := constvars.DefaultSlotDurationHours
	if raw := r.URL.Query().Get(constvars.QueryParamDurationHours); raw != "" {
		durationHours, err = strconv.Atoi(raw)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidDuration(0))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	startTimes, err := ctrl.QueryUsecase.FindBookableStartTimes(ctx, mentorID, date, durationHours)
	if err != nil {
		ctrl.respondUsecaseError(w, requestID, "FindBookableStartTimes", err)
		return
	}

	response := &responses.BookableStartTimes{
		Date:          date.Format(constvars.CalendarDateLayout),
		DurationHours: durationHours,
		StartTimes:    startTimes,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookableTimesGetSuccess, response)
}

// requestScope pulls the request id and the authenticated mentor id out of
// the request context, writing the error response itself when either is
// missing.
func (ctrl *AvailabilityController) requestScope(w http.ResponseWriter, r *http.Request, operation string) (requestID, mentorID string, ok bool) {
	requestID, found := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !found || requestID == "" {
		ctrl.Log.Error("AvailabilityController." + operation + " requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", "", false
	}
	mentorID, found = r.Context().Value(constvars.CONTEXT_MENTOR_ID_KEY).(string)
	if !found || mentorID == "" {
		ctrl.Log.Error("AvailabilityController."+operation+" mentorID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingMentorID(nil))
		return "", "", false
	}
	return requestID, mentorID, true
}

func (ctrl *AvailabilityController) respondUsecaseError(w http.ResponseWriter, requestID, operation string, err error) {
	ctrl.Log.Error("AvailabilityController."+operation+" error from usecase",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
