package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/steriltrack/equipment-system/internal/api/metrics"
	"github.com/steriltrack/equipment-system/internal/core/domain"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// EquipmentHandler handles HTTP requests for the equipment lifecycle.
type EquipmentHandler struct {
	service   ports.EquipmentService
	checklist ports.ChecklistService
}

func NewEquipmentHandler(service ports.EquipmentService, checklist ports.ChecklistService) *EquipmentHandler {
	return &EquipmentHandler{service: service, checklist: checklist}
}

// List handles GET /v1/equipments.
//
// @Summary      List all equipment
// @Tags         equipments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Equipment
// @Router       /v1/equipments [get]
func (h *EquipmentHandler) List(c echo.Context) error {
	if status := c.QueryParam("status"); status != "" {
		s := domain.EquipmentStatus(status)
		if !s.IsValid() {
			return domain.ErrInvalidStatus
		}
		items, err := h.service.ListByStatus(c.Request().Context(), s)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, items)
	}

	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListFinished handles GET /v1/equipments/finished — units ready for return.
//
// @Summary      List equipment with status FINISHED
// @Tags         equipments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Equipment
// @Router       /v1/equipments/finished [get]
func (h *EquipmentHandler) ListFinished(c echo.Context) error {
	items, err := h.service.ListByStatus(c.Request().Context(), domain.StatusFinished)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /v1/equipments.
//
// @Summary      Register a received equipment unit
// @Tags         equipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEquipmentRequest  true  "Equipment details"
// @Success      201   {object}  domain.Equipment
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/equipments [post]
func (h *EquipmentHandler) Create(c echo.Context) error {
	var req createEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	e, err := h.service.Create(c.Request().Context(), ports.CreateEquipmentInput{
		Name:        req.Name,
		ClientID:    req.ClientID,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.EquipmentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, e)
}

// NextSequence handles GET /v1/equipments/next-sequence — the upcoming id and
// code, so the code can be displayed before the unit is registered.
//
// @Summary      Peek the next equipment id and code
// @Tags         equipments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  nextSequenceResponse
// @Router       /v1/equipments/next-sequence [get]
func (h *EquipmentHandler) NextSequence(c echo.Context) error {
	next, err := h.service.NextSequenceValue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nextSequenceResponse{
		NextID: next,
		Code:   domain.EquipmentCode(next),
	})
}

// UpdateStatus handles POST /v1/equipments/:id/status.
//
// @Summary      Transition equipment status
// @Tags         equipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Equipment id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Equipment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/equipments/{id}/status [post]
func (h *EquipmentHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid equipment id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := h.service.TransitionStatus(c.Request().Context(), id, domain.EquipmentStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, e)
}

// Return handles POST /v1/equipments/return.
//
// @Summary      Register an equipment return
// @Tags         equipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      returnEquipmentRequest  true  "Return details"
// @Success      200   {object}  domain.Equipment
// @Failure      404   {object}  map[string]string
// @Router       /v1/equipments/return [post]
func (h *EquipmentHandler) Return(c echo.Context) error {
	var req returnEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	e, err := h.service.MarkReturned(c.Request().Context(), ports.ReturnEquipmentInput{
		EquipmentID: req.EquipmentID,
		ReturnedBy:  req.ReturnedBy,
		Comments:    req.Comments,
	})
	if err != nil {
		return err
	}

	metrics.ReturnsTotal.Inc()
	return c.JSON(http.StatusOK, e)
}

// History handles GET /v1/equipments/:id/history — the status audit trail.
//
// @Summary      List the status change history of an equipment unit
// @Tags         equipments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Equipment id"
// @Success      200  {array}   domain.StatusChange
// @Failure      404  {object}  map[string]string
// @Router       /v1/equipments/{id}/history [get]
func (h *EquipmentHandler) History(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid equipment id")
	}

	changes, err := h.service.History(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, changes)
}

// ListSteps handles GET /v1/equipments/:id/cleaning-steps.
//
// @Summary      List the cleaning checklist of an equipment unit
// @Tags         cleaning-steps
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Equipment id"
// @Success      200  {array}  domain.CleaningStep
// @Router       /v1/equipments/{id}/cleaning-steps [get]
func (h *EquipmentHandler) ListSteps(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid equipment id")
	}

	steps, err := h.checklist.ListSteps(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, steps)
}

// UpdateStep handles PUT /v1/cleaning-steps/:id — the synchronous completion
// path. A completion may advance the equipment status as a side effect.
//
// @Summary      Mark a cleaning step complete or incomplete
// @Tags         cleaning-steps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Step id"
// @Param        body  body      updateStepRequest  true  "Completion flag"
// @Success      200   {object}  domain.CleaningStep
// @Failure      404   {object}  map[string]string
// @Router       /v1/cleaning-steps/{id} [put]
func (h *EquipmentHandler) UpdateStep(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid step id")
	}

	var req updateStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	step, err := h.checklist.SetStepCompletion(c.Request().Context(), id, *req.Completed)
	if err != nil {
		return err
	}

	if step.Completed {
		metrics.StepsCompletedTotal.WithLabelValues(step.Step).Inc()
	}
	return c.JSON(http.StatusOK, step)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
