package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/models"
	"github.com/noah-isme/campus-ops-api/internal/service"
	"github.com/noah-isme/campus-ops-api/pkg/config"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
	"github.com/noah-isme/campus-ops-api/pkg/response"
)

type leaveService interface {
	Submit(ctx context.Context, req dto.SubmitLeaveRequest, actor *models.JWTClaims) (*models.LeaveRecord, error)
	MyRequests(ctx context.Context, actor *models.JWTClaims) ([]models.LeaveRecord, error)
	Decide(ctx context.Context, id string, req dto.DecideLeaveRequest, actor *models.JWTClaims) (*models.LeaveRecord, error)
	Reapply(ctx context.Context, originalID string, req dto.ReapplyLeaveRequest, actor *models.JWTClaims) (*models.LeaveRecord, error)
}

type approverQueue interface {
	Queue(ctx context.Context, approver models.ApproverIdentity, scope models.ClassScope) ([]models.LeaveRecord, error)
}

type snapshotSource interface {
	ListByRequester(ctx context.Context, userID string) ([]models.LeaveRecord, error)
}

// LeaveHandler wires the leave-request lifecycle to HTTP endpoints.
type LeaveHandler struct {
	service  leaveService
	queue    approverQueue
	source   snapshotSource
	leaveCfg config.LeaveConfig
	metrics  *service.MetricsService
	logger   *zap.Logger
}

// LeaveHandlerParams groups constructor dependencies.
type LeaveHandlerParams struct {
	Service  leaveService
	Queue    approverQueue
	Source   snapshotSource
	LeaveCfg config.LeaveConfig
	Metrics  *service.MetricsService
	Logger   *zap.Logger
}

// NewLeaveHandler constructs the handler.
func NewLeaveHandler(params LeaveHandlerParams) *LeaveHandler {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveHandler{
		service:  params.Service,
		queue:    params.Queue,
		source:   params.Source,
		leaveCfg: params.LeaveCfg,
		metrics:  params.Metrics,
		logger:   logger,
	}
}

// Submit godoc
// @Summary Submit a leave request
// @Tags Leaves
// @Accept json
// @Produce json
// @Param request body dto.SubmitLeaveRequest true "Leave request"
// @Success 201 {object} response.Envelope
// @Router /leaves [post]
func (h *LeaveHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave payload"))
		return
	}
	record, err := h.service.Submit(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// MyRequests godoc
// @Summary List the caller's leave requests
// @Tags Leaves
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /leaves/my [get]
func (h *LeaveHandler) MyRequests(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	records, err := h.service.MyRequests(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Stream godoc
// @Summary Stream the caller's leave requests as server-sent events
// @Description Re-fetches the caller's requests on a fixed cadence and pushes each snapshot.
// @Tags Leaves
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /leaves/my/stream [get]
func (h *LeaveHandler) Stream(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	scheduler := service.NewRefreshScheduler(service.RefreshSchedulerParams{
		Source:   h.source,
		Interval: h.leaveCfg.RefreshInterval,
		Timeout:  h.leaveCfg.FetchTimeout,
		Metrics:  h.metrics,
		Logger:   h.logger,
	})

	snapshots := make(chan dto.LeaveSnapshot, 1)
	scheduler.Start(c.Request.Context(), claims.UserID, func(snap dto.LeaveSnapshot) {
		select {
		case snapshots <- snap:
		case <-c.Request.Context().Done():
		}
	})
	defer scheduler.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snap := <-snapshots:
			if snap.Err != nil {
				c.SSEvent("error", gin.H{"message": snap.Err.Error(), "fetched_at": snap.FetchedAt})
				return true
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Decide godoc
// @Summary Approve, reject, or return a pending leave request
// @Tags Leaves
// @Accept json
// @Produce json
// @Param id path string true "Leave request ID"
// @Param request body dto.DecideLeaveRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Router /leaves/{id}/decision [post]
func (h *LeaveHandler) Decide(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload"))
		return
	}
	record, err := h.service.Decide(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Reapply godoc
// @Summary Resubmit a rejected or returned leave request
// @Description Creates a fresh request chained to the original; the original record is never modified.
// @Tags Leaves
// @Accept json
// @Produce json
// @Param id path string true "Original leave request ID"
// @Param request body dto.ReapplyLeaveRequest true "Updated request"
// @Success 201 {object} response.Envelope
// @Router /leaves/{id}/reapply [post]
func (h *LeaveHandler) Reapply(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.ReapplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reapply payload"))
		return
	}
	record, err := h.service.Reapply(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Queue godoc
// @Summary Reconciled pending queue for the approver
// @Tags Leaves
// @Produce json
// @Param year query string false "Academic year"
// @Param semester query string false "Semester"
// @Param division query string false "Division"
// @Param subject query string false "Subject"
// @Param month query int false "Calendar month (1-12), defaults to current"
// @Param yearLabel query int false "Calendar year, defaults to current"
// @Param department query string false "Department filter"
// @Success 200 {object} response.Envelope
// @Router /leaves/queue [get]
func (h *LeaveHandler) Queue(c *gin.Context) {
	claims := claimsFromContext(c)
	approver, ok := approverFromClaims(claims)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "caller has no approval role"))
		return
	}
	var req dto.ApproverQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid queue filters"))
		return
	}
	records, err := h.queue.Queue(c.Request.Context(), approver, scopeFromRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
