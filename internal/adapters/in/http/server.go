package http

import (
	"net/http"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	CreateCourier          commands.CreateCourierCommandHandler
	SetCourierAvailability commands.SetCourierAvailabilityCommandHandler
	UpdateCourierLocation  commands.UpdateCourierLocationCommandHandler

	CreateOrder  commands.CreateOrderCommandHandler
	AdvanceOrder commands.AdvanceOrderCommandHandler
	DeliverOrder commands.DeliverOrderCommandHandler
	CancelOrder  commands.CancelOrderCommandHandler

	AssignBestCourier     commands.AssignBestCourierCommandHandler
	AssignCourierManually commands.AssignCourierManuallyCommandHandler
	RemoveAssignment      commands.RemoveAssignmentCommandHandler

	GetAllCouriers        queries.GetAllCouriersQueryHandler
	GetCourierEarnings    queries.GetCourierEarningsQueryHandler
	GetActiveOrders       queries.GetActiveOrdersQueryHandler
	GetDispatchCandidates queries.GetDispatchCandidatesQueryHandler
}

// Server implements servers.ServerInterface for the operator console, the
// seller panel and the courier app.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

var _ servers.ServerInterface = (*Server)(nil)

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.h.GetAllCouriers.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve couriers")
	}

	response := make([]servers.Courier, len(couriers))
	for i, c := range couriers {
		response[i] = servers.Courier{
			Id:                c.ID.Bytes(),
			Name:              c.Name,
			IsOnline:          c.IsOnline,
			Status:            c.Status,
			CurrentDeliveries: c.CurrentDeliveries,
			TotalDeliveries:   c.TotalDeliveries,
			Rating:            c.Rating,
			Location:          toLocation(c.Location),
		}
		if c.Phone != "" {
			phone := c.Phone
			response[i].Phone = &phone
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body servers.CreateCourierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	phone := ""
	if body.Phone != nil {
		phone = *body.Phone
	}
	cmd, err := commands.NewCreateCourierCommand(body.Name, phone)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err = s.h.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to create courier")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.CourierID().Bytes()})
}

// SetCourierAvailability handles POST /api/v1/couriers/{courierId}/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context, courierId servers.CourierId) error {
	var body servers.SetCourierAvailabilityJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernelID(courierId)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	cmd, err := commands.NewSetCourierAvailabilityCommand(id, commands.AvailabilityAction(body.Action))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.h.SetCourierAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to change availability")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCourierLocation handles PUT /api/v1/couriers/{courierId}/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context, courierId servers.CourierId) error {
	var body servers.UpdateCourierLocationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernelID(courierId)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	cmd, err := commands.NewUpdateCourierLocationCommand(id, body.Latitude, body.Longitude)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.h.UpdateCourierLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Failed to update location")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCourierEarnings handles GET /api/v1/couriers/{courierId}/earnings.
func (s *Server) GetCourierEarnings(ctx echo.Context, courierId servers.CourierId) error {
	id, err := toKernelID(courierId)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	query, err := queries.NewGetCourierEarningsQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.h.GetCourierEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Failed to retrieve earnings")
	}

	response := servers.Earnings{
		CourierId: view.CourierID.Bytes(),
		Total:     view.Total,
		Earnings:  make([]servers.Earning, len(view.Earnings)),
	}
	for i, e := range view.Earnings {
		response.Earnings[i] = servers.Earning{
			Id:        e.ID.Bytes(),
			OrderId:   e.OrderID.Bytes(),
			Amount:    e.Amount,
			FeeType:   e.FeeType,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toLocation(l *kernel.Location) *servers.Location {
	if l == nil {
		return nil
	}
	return &servers.Location{Latitude: l.Latitude(), Longitude: l.Longitude()}
}
