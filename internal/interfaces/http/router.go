package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenimiento-api/internal/application/auth"
	"github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/application/usecase"
	"github.com/jhoicas/Mantenimiento-api/internal/application/workorder"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PartUC      *usecase.PartUseCase
	MachineUC   *usecase.MachineUseCase
	LedgerUC    *inventory.LedgerUseCase
	WorkOrderUC *workorder.UseCase
	UsageUC     *workorder.UsageUseCase
	ConfirmUC   *workorder.ConfirmationUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Máquinas (protegido)
	machines := protected.Group("/machines")
	machineHandler := NewMachineHandler(deps.MachineUC)
	machines.Post("/", machineHandler.Create)
	machines.Get("/", machineHandler.List)
	machines.Get("/:id", machineHandler.GetByID)

	// Repuestos y ledger de stock (protegido; borrar solo admin/supervisor)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC, deps.LedgerUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/low-stock", partHandler.LowStock)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), partHandler.Delete)
	parts.Get("/:id/stock", partHandler.Stock)
	parts.Post("/:id/restock", partHandler.Restock)
	parts.Get("/:id/movements", partHandler.Movements)

	// Órdenes de trabajo (protegido; asignar solo admin/supervisor)
	orders := protected.Group("/workorders")
	orderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.UsageUC, deps.ConfirmUC, deps.LedgerUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/assign", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), orderHandler.Assign)
	orders.Post("/:id/status", orderHandler.Transition)
	orders.Post("/:id/parts", orderHandler.AttachPart)
	orders.Put("/:id/parts/:usageId", orderHandler.ChangeQuantity)
	orders.Delete("/:id/parts/:usageId", orderHandler.DetachPart)
	orders.Post("/:id/confirm-technician", orderHandler.ConfirmTechnician)
	orders.Post("/:id/confirm-client", orderHandler.ConfirmClient)
	orders.Get("/:id/movements", orderHandler.Movements)
}
