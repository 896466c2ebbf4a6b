package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	dbreminders "github.com/mrlokans/claritybreak/internal/database/reminders"
	"github.com/mrlokans/claritybreak/internal/entities"
	"github.com/mrlokans/claritybreak/internal/reminders"
)

type RemindersController struct {
	store       ReminderStore
	rescheduler Rescheduler
}

func NewRemindersController(store ReminderStore, rescheduler Rescheduler) *RemindersController {
	return &RemindersController{store: store, rescheduler: rescheduler}
}

type ReminderResponse struct {
	entities.Reminder
	Description string     `json:"description,omitempty"`
	NextRun     *time.Time `json:"next_run,omitempty"`
}

type CreateReminderRequest struct {
	Title    string                `json:"title" binding:"required"`
	Message  string                `json:"message"`
	Kind     entities.ReminderKind `json:"kind"`
	Schedule string                `json:"schedule"`
	FireAt   *time.Time            `json:"fire_at"`
	Enabled  *bool                 `json:"enabled"`
}

func (rc *RemindersController) toResponse(r entities.Reminder) ReminderResponse {
	resp := ReminderResponse{Reminder: r}
	if r.Kind == entities.ReminderKindRecurring {
		resp.Description = reminders.DescribeSchedule(r.Schedule)
	}
	if rc.rescheduler != nil {
		resp.NextRun = rc.rescheduler.NextRunTime(r.ID)
	}
	return resp
}

// reschedule re-arms timers after a write. The write already succeeded, so
// a failure here is only logged.
func (rc *RemindersController) reschedule(c *gin.Context) {
	if rc.rescheduler == nil {
		return
	}
	if _, err := rc.rescheduler.Reschedule(c.Request.Context()); err != nil {
		log.Printf("Reminder scheduler: reschedule after update failed: %v", err)
	}
}

// List returns all reminders
// GET /api/reminders
func (rc *RemindersController) List(c *gin.Context) {
	list, err := rc.store.List()
	if err != nil {
		respondInternalError(c, err, "list reminders")
		return
	}

	out := make([]ReminderResponse, 0, len(list))
	for _, r := range list {
		out = append(out, rc.toResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

// Create adds a reminder and arms it
// POST /api/reminders
func (rc *RemindersController) Create(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	reminder := &entities.Reminder{
		Title:    req.Title,
		Message:  req.Message,
		Kind:     req.Kind,
		Schedule: req.Schedule,
		FireAt:   req.FireAt,
		Enabled:  req.Enabled == nil || *req.Enabled,
	}
	if reminder.Kind == "" {
		reminder.Kind = entities.ReminderKindRecurring
	}
	if err := reminders.Validate(reminder); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_reminder"})
		return
	}

	if err := rc.store.Create(reminder); err != nil {
		respondInternalError(c, err, "create reminder")
		return
	}
	rc.reschedule(c)

	respondCreated(c, rc.toResponse(*reminder))
}

// SetEnabled enables or disables a reminder
// PATCH /api/reminders/:id
func (rc *RemindersController) SetEnabled(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "enabled is required")
		return
	}

	if err := rc.store.SetEnabled(id, *req.Enabled); err != nil {
		if errors.Is(err, dbreminders.ErrNotFound) {
			respondNotFound(c, "reminder")
			return
		}
		respondInternalError(c, err, "update reminder")
		return
	}
	rc.reschedule(c)

	reminder, err := rc.store.Get(id)
	if err != nil {
		respondInternalError(c, err, "get reminder")
		return
	}
	c.JSON(http.StatusOK, rc.toResponse(*reminder))
}

// Delete removes a reminder and disarms it
// DELETE /api/reminders/:id
func (rc *RemindersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := rc.store.Delete(id); err != nil {
		if errors.Is(err, dbreminders.ErrNotFound) {
			respondNotFound(c, "reminder")
			return
		}
		respondInternalError(c, err, "delete reminder")
		return
	}
	rc.reschedule(c)

	respondSuccess(c, "reminder deleted", nil)
}
