package http

import (
	"net/http"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// DispatchOrder handles POST /api/v1/orders/{orderId}/dispatch. An explicit
// seller location in the body overrides the stored one.
func (s *Server) DispatchOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.DispatchOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	cmd, err := commands.NewAssignBestCourierCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if body.SellerLocation != nil {
		loc, locErr := kernel.NewLocation(body.SellerLocation.Latitude, body.SellerLocation.Longitude)
		if locErr != nil {
			return badRequest(ctx, locErr.Error())
		}
		if cmd, err = cmd.WithSellerLocation(loc); err != nil {
			return badRequest(ctx, err.Error())
		}
	}

	winner, err := s.h.AssignBestCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, MsgAssignmentFailed)
	}
	if winner == nil {
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: MsgNoCourierAvailable,
		})
	}

	return ctx.JSON(http.StatusOK, servers.DispatchResult{
		OrderId:     orderId,
		CourierId:   winner.ID().Bytes(),
		CourierName: winner.Name(),
	})
}

// GetDispatchCandidates handles GET /api/v1/orders/{orderId}/candidates.
func (s *Server) GetDispatchCandidates(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	query, err := queries.NewGetDispatchCandidatesQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.h.GetDispatchCandidates.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to rank couriers")
	}

	response := servers.Candidates{
		OrderId:    orderId,
		Status:     view.Status,
		Origin:     toLocation(view.Origin),
		Candidates: make([]servers.Candidate, len(view.Candidates)),
	}
	for i, c := range view.Candidates {
		response.Candidates[i] = servers.Candidate{
			CourierId:         c.CourierID.Bytes(),
			Name:              c.Name,
			DistanceKm:        c.DistanceKm,
			CurrentDeliveries: c.CurrentDeliveries,
			TotalDeliveries:   c.TotalDeliveries,
			Rating:            c.Rating,
			Score: servers.ScoreBreakdown{
				Distance:    c.Score.Distance,
				Performance: c.Score.Performance,
				Workload:    c.Score.Workload,
				Experience:  c.Score.Experience,
				Total:       c.Score.Total,
			},
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignCourier handles PUT /api/v1/orders/{orderId}/courier, the operator
// override.
func (s *Server) AssignCourier(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.AssignCourierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, orderErr := toKernelID(orderId)
	courierID, courierErr := toKernelID(body.CourierId)
	if orderErr != nil || courierErr != nil {
		return badRequest(ctx, "Invalid order or courier id")
	}
	cmd, err := commands.NewAssignCourierManuallyCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.h.AssignCourierManually.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to assign courier")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveAssignment handles DELETE /api/v1/orders/{orderId}/courier.
func (s *Server) RemoveAssignment(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	cmd, err := commands.NewRemoveAssignmentCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	removed, err := s.h.RemoveAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, "Failed to remove assignment")
	}
	return ctx.JSON(http.StatusOK, servers.AssignmentRemoval{Removed: removed})
}
