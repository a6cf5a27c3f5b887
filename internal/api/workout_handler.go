package api

import (
	"errors"
	"net/http"

	"hooplogs/workout-service/internal/catalog"
	"hooplogs/workout-service/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler exposes the workout plan engine over HTTP.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	catalog        *catalog.Catalog
}

func NewWorkoutHandler(workoutService service.WorkoutService, cat *catalog.Catalog) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		catalog:        cat,
	}
}

// GetWorkout returns the full workout state: active plan, progress and
// derived metrics. Loads (and, first time, migrates) the user's session.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	state, err := h.workoutService.Load(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout state")
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetCategories lists the drill catalog for track selection.
func (h *WorkoutHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

// GetHistory lists completed days, ascending by date.
func (h *WorkoutHandler) GetHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	items, err := h.workoutService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

type selectFocusRequest struct {
	FocusKey string `json:"focusKey" binding:"required"`
}

// SelectFocus starts a new 30-day plan, or answers 409 with a pending
// confirmation when the change would erase recorded progress.
func (h *WorkoutHandler) SelectFocus(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	var req selectFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.workoutService.SelectFocus(c.Request.Context(), userID, req.FocusKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFocus) {
			abortWithError(c, http.StatusBadRequest, "Unknown focus category")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to select focus")
		return
	}
	if result.ConfirmationRequired {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmFocusChange completes a pending destructive focus change.
func (h *WorkoutHandler) ConfirmFocusChange(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	state, err := h.workoutService.ConfirmFocusChange(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingFocusChange) {
			abortWithError(c, http.StatusConflict, "No focus change pending confirmation")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to confirm focus change")
		return
	}
	c.JSON(http.StatusOK, state)
}

// CancelFocusChange discards a pending focus change.
func (h *WorkoutHandler) CancelFocusChange(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err := h.workoutService.CancelFocusChange(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to cancel focus change")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

type toggleDrillRequest struct {
	// Date defaults to today when omitted.
	Date  string `json:"date"`
	Index *int   `json:"index" binding:"required"`
}

// ToggleDrill flips one drill's completion flag. Stale requests (unknown
// date, bad index, completed day) are absorbed; the response always carries
// the current state.
func (h *WorkoutHandler) ToggleDrill(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	var req toggleDrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	state, err := h.workoutService.ToggleDrill(c.Request.Context(), userID, req.Date, *req.Index)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to toggle drill")
		return
	}
	c.JSON(http.StatusOK, state)
}

// MarkDayComplete records today as done ("Complete Day" shortcut).
func (h *WorkoutHandler) MarkDayComplete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	state, err := h.workoutService.MarkDayComplete(c.Request.Context(), userID, "")
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusConflict, "No active plan")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to mark day complete")
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResetPlan clears the active plan and all recorded progress.
func (h *WorkoutHandler) ResetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	state, err := h.workoutService.ResetPlan(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to reset plan")
		return
	}
	c.JSON(http.StatusOK, state)
}
