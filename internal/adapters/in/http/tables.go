package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListTableAllocations handles GET /api/v1/tables/allocations.
func (s *Server) ListTableAllocations(ctx echo.Context) error {
	allocations, err := s.handlers.ListTableAllocations.Handle(
		ctx.Request().Context(),
		queries.NewListTableAllocationsQuery(),
	)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve table allocations")
	}

	response := make([]servers.TableAllocation, len(allocations))
	for i, a := range allocations {
		response[i] = toTableAllocation(a)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AllocateTables handles PUT /api/v1/tables/allocations - assigns tables to a waiter.
func (s *Server) AllocateTables(ctx echo.Context) error {
	var body servers.AllocateTables
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	tables := make([]kernel.TableNumber, len(body.Tables))
	for i, t := range body.Tables {
		tables[i] = kernel.TableNumber(t)
	}
	cmd, err := commands.NewAllocateTablesCommand(body.WaiterId, tables)
	if err != nil {
		return badRequest(ctx, "Invalid allocation: "+err.Error())
	}

	if _, err = s.handlers.AllocateTables.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to allocate tables")
	}

	return ctx.NoContent(http.StatusNoContent)
}
