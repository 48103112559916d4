package http

import (
	"net/http"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sellerID, sellerErr := toKernelID(body.SellerId)
	customerID, customerErr := toKernelID(body.CustomerId)
	if sellerErr != nil || customerErr != nil {
		return badRequest(ctx, "Invalid seller or customer id")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), sellerID, customerID,
		body.DeliveryAddress, body.TotalAmount, body.CourierFee,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.OrderID().Bytes()})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.h.GetActiveOrders.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = servers.Order{
			Id:              o.ID.Bytes(),
			SellerId:        o.SellerID.Bytes(),
			CustomerId:      o.CustomerID.Bytes(),
			Status:          o.Status,
			DeliveryAddress: o.DeliveryAddress,
			TotalAmount:     o.TotalAmount,
			CourierFee:      o.CourierFee,
			CreatedAt:       o.CreatedAt,
			AssignedAt:      o.AssignedAt,
		}
		if o.CourierID != nil {
			courierID := o.CourierID.Bytes()
			response[i].CourierId = &courierID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceOrder handles POST /api/v1/orders/{orderId}/advance.
func (s *Server) AdvanceOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.AdvanceOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	cmd, err := commands.NewAdvanceOrderCommand(id, commands.OrderStep(body.Step))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.h.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to advance order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	cmd, err := commands.NewDeliverOrderCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to deliver order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.CancelOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernelID(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	reason := ""
	if body.Reason != nil {
		reason = *body.Reason
	}
	cmd, err := commands.NewCancelOrderCommand(id, reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to cancel order")
	}
	return ctx.NoContent(http.StatusNoContent)
}
