package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/application/workorder"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// WorkOrderHandler maneja el ciclo de vida de órdenes de trabajo, consumos de
// repuestos y confirmaciones. Las mutaciones versionadas se reintentan ante
// conflicto de concurrencia antes de devolver 409.
type WorkOrderHandler struct {
	uc        *workorder.UseCase
	usageUC   *workorder.UsageUseCase
	confirmUC *workorder.ConfirmationUseCase
	ledger    *inventory.LedgerUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(
	uc *workorder.UseCase,
	usageUC *workorder.UsageUseCase,
	confirmUC *workorder.ConfirmationUseCase,
	ledger *inventory.LedgerUseCase,
) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc, usageUC: usageUC, confirmUC: confirmUC, ledger: ledger}
}

// Create godoc
// @Summary      Crear orden de trabajo (estado reported)
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workorders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Create(c.Context(), workorder.CreateInput{
		MachineID:        in.MachineID,
		Type:             in.Type,
		Priority:         in.Priority,
		Description:      in.Description,
		EstimatedMinutes: in.EstimatedMinutes,
		ActorID:          GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWorkOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         workorders
// @Security     Bearer
// @Produce      json
// @Param        status         query  string  false  "Filtro por estado"
// @Param        technician_id  query  string  false  "Filtro por técnico"
// @Param        machine_id     query  string  false  "Filtro por máquina"
// @Param        limit          query  int     false  "Límite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.WorkOrderResponse
// @Router       /api/workorders [get]
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	orders, err := h.uc.List(c.Context(), repository.WorkOrderFilter{
		Status:       c.Query("status"),
		TechnicianID: c.Query("technician_id"),
		MachineID:    c.Query("machine_id"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToWorkOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden con sus consumos
// @Tags         workorders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	snap, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponseWithUsages(snap.Order, snap.Usages))
}

// Assign godoc
// @Summary      Asignar técnico con snapshot de tarifa
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AssignTechnicianRequest  true  "Técnico y tarifa opcional"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/assign [post]
func (h *WorkOrderHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var order *entity.WorkOrder
	err := workorder.RetryOnConflict(func() error {
		var err error
		order, err = h.uc.AssignTechnician(c.Context(), c.Params("id"), in.TechnicianID, in.HourlyRate, GetUserID(c))
		return err
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponse(order))
}

// Transition godoc
// @Summary      Transicionar estado de la orden
// @Description  Transiciones válidas: reported→assigned→in_progress→completed; cualquier estado no terminal→cancelled. Cancelar con void=true acredita de vuelta todos los consumos.
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.TransitionRequest  true  "Estado destino"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/status [post]
func (h *WorkOrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var order *entity.WorkOrder
	err := workorder.RetryOnConflict(func() error {
		var err error
		order, err = h.uc.TransitionStatus(c.Context(), c.Params("id"), workorder.TransitionInput{
			Target:        in.Target,
			Resolution:    in.Resolution,
			ActualMinutes: in.ActualMinutes,
			Void:          in.Void,
			ActorID:       GetUserID(c),
		})
		return err
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponse(order))
}

// AttachPart godoc
// @Summary      Adjuntar repuesto a la orden
// @Description  Debita stock y congela el precio unitario vigente del catálogo.
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AttachPartRequest  true  "Repuesto y cantidad"
// @Success      201   {object}  dto.PartUsageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/parts [post]
func (h *WorkOrderHandler) AttachPart(c *fiber.Ctx) error {
	var in dto.AttachPartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var usage *entity.PartUsage
	err := workorder.RetryOnConflict(func() error {
		var err error
		usage, err = h.usageUC.AttachPart(c.Context(), c.Params("id"), in.PartID, in.Quantity, GetUserID(c))
		return err
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPartUsageResponse(usage))
}

// DetachPart godoc
// @Summary      Quitar un consumo y acreditar el stock
// @Tags         workorders
// @Security     Bearer
// @Param        id       path  string  true  "ID de la orden"
// @Param        usageId  path  string  true  "ID del consumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/parts/{usageId} [delete]
func (h *WorkOrderHandler) DetachPart(c *fiber.Ctx) error {
	err := workorder.RetryOnConflict(func() error {
		return h.usageUC.DetachPart(c.Context(), c.Params("id"), c.Params("usageId"), GetUserID(c))
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeQuantity godoc
// @Summary      Ajustar cantidad de un consumo
// @Description  El precio unitario congelado del consumo no cambia.
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID de la orden"
// @Param        usageId  path  string  true  "ID del consumo"
// @Param        body     body  dto.ChangeQuantityRequest  true  "Nueva cantidad"
// @Success      200      {object}  dto.PartUsageResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/parts/{usageId} [put]
func (h *WorkOrderHandler) ChangeQuantity(c *fiber.Ctx) error {
	var in dto.ChangeQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var usage *entity.PartUsage
	err := workorder.RetryOnConflict(func() error {
		var err error
		usage, err = h.usageUC.ChangeQuantity(c.Context(), c.Params("id"), c.Params("usageId"), in.Quantity, GetUserID(c))
		return err
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToPartUsageResponse(usage))
}

// ConfirmTechnician godoc
// @Summary      Confirmación del técnico (orden completada)
// @Tags         workorders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/confirm-technician [post]
func (h *WorkOrderHandler) ConfirmTechnician(c *fiber.Ctx) error {
	var order *entity.WorkOrder
	err := workorder.RetryOnConflict(func() error {
		var err error
		order, err = h.confirmUC.ConfirmTechnician(c.Context(), c.Params("id"), GetUserID(c))
		return err
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponse(order))
}

// ConfirmClient godoc
// @Summary      Conformidad del cliente (orden completada)
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ConfirmClientRequest  true  "Firma del cliente"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/confirm-client [post]
func (h *WorkOrderHandler) ConfirmClient(c *fiber.Ctx) error {
	var in dto.ConfirmClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var order *entity.WorkOrder
	err := workorder.RetryOnConflict(func() error {
		var err error
		order, err = h.confirmUC.ConfirmClient(c.Context(), c.Params("id"), in.SignatureRef, in.SignerName, GetUserID(c))
		return err
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponse(order))
}

// Movements godoc
// @Summary      Movimientos de stock generados por la orden
// @Tags         workorders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/workorders/{id}/movements [get]
func (h *WorkOrderHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.ledger.ListWorkOrderMovements(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.ToStockMovementResponse(m))
	}
	return c.JSON(out)
}
