package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// ApprovalHandler serves the public client approval session. No JWT: the
// link token in the URL is the only credential.
type ApprovalHandler struct {
	service ports.ApprovalService
}

func NewApprovalHandler(service ports.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

// Resolve handles GET /approve/:link_id.
//
// @Summary      Load the invoice behind an approval link
// @Tags         approval
// @Produce      json
// @Param        link_id  path      string  true  "Approval link id ({invoiceId}_{token})"
// @Success      200      {object}  approvalSnapshotResponse
// @Failure      404      {object}  errorResponse
// @Router       /approve/{link_id} [get]
func (h *ApprovalHandler) Resolve(c echo.Context) error {
	snap, err := h.service.Resolve(c.Request().Context(), c.Param("link_id"))
	if err != nil {
		return err
	}

	breakdown := make([]taskBreakdownResponse, 0, len(snap.Breakdown))
	for _, item := range snap.Breakdown {
		breakdown = append(breakdown, taskBreakdownResponse{
			TaskID:   item.TaskID,
			TaskName: item.TaskName,
			Rate:     item.Rate,
			Hours:    item.Hours,
			Amount:   item.Amount,
		})
	}

	return c.JSON(http.StatusOK, approvalSnapshotResponse{
		Invoice:    snap.Invoice,
		Freelancer: snap.Profile,
		Breakdown:  breakdown,
	})
}

// Decide handles POST /approve/:link_id/decision.
//
// An invoice that was already decided comes back with 409 and the recorded
// terminal state, so the client page can render the existing outcome.
//
// @Summary      Approve or reject the invoice behind an approval link
// @Tags         approval
// @Accept       json
// @Produce      json
// @Param        link_id  path      string                   true  "Approval link id"
// @Param        body     body      approvalDecisionRequest  true  "Decision"
// @Success      200      {object}  domain.Invoice
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  map[string]interface{}
// @Failure      422      {object}  errorResponse
// @Router       /approve/{link_id}/decision [post]
func (h *ApprovalHandler) Decide(c echo.Context) error {
	var req approvalDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var in ports.DecisionInput
	switch req.Decision {
	case "approve":
		in.Approve = &ports.ApproveDecision{Signature: req.Signature, Comments: req.Comments}
	case "reject":
		in.Reject = &ports.RejectDecision{Reason: req.Reason}
	}

	inv, err := h.service.Decide(c.Request().Context(), c.Param("link_id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyDecided) && inv != nil {
			return c.JSON(http.StatusConflict, map[string]interface{}{
				"error":   "invoice already decided",
				"invoice": inv,
			})
		}
		return err
	}
	return c.JSON(http.StatusOK, inv)
}
