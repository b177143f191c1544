package workorder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
	dworkorder "github.com/jhoicas/Mantenimiento-api/internal/domain/workorder"
)

// UseCase cubre el ciclo de vida de la orden de trabajo: creación, asignación
// de técnico con snapshot de tarifa y transiciones de estado. Toda mutación
// pasa por el check de versión optimista del repositorio; ante
// ErrConcurrentModification el caller reintenta (ver RetryOnConflict).
type UseCase struct {
	txRunner    TxRunner
	woRepo      repository.WorkOrderRepository
	usageRepo   repository.PartUsageRepository
	machineRepo repository.MachineRepository
	userRepo    repository.UserRepository
}

// NewUseCase construye el caso de uso de ciclo de vida.
func NewUseCase(
	txRunner TxRunner,
	woRepo repository.WorkOrderRepository,
	usageRepo repository.PartUsageRepository,
	machineRepo repository.MachineRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		woRepo:      woRepo,
		usageRepo:   usageRepo,
		machineRepo: machineRepo,
		userRepo:    userRepo,
	}
}

// CreateInput entrada para crear una orden.
type CreateInput struct {
	MachineID        string
	Type             string
	Priority         string
	Description      string
	EstimatedMinutes int
	ActorID          string
}

// Create registra una orden nueva en estado reported.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.WorkOrder, error) {
	if input.MachineID == "" || input.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidType(input.Type) || !entity.ValidPriority(input.Priority) {
		return nil, domain.ErrInvalidInput
	}
	machine, err := uc.machineRepo.GetByID(input.MachineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	order := &entity.WorkOrder{
		ID:               uuid.New().String(),
		Status:           entity.StatusReported,
		Type:             input.Type,
		Priority:         input.Priority,
		MachineID:        input.MachineID,
		Description:      input.Description,
		EstimatedMinutes: input.EstimatedMinutes,
		HourlyRate:       decimal.Zero,
		PartsCost:        decimal.Zero,
		LaborCost:        decimal.Zero,
		TotalCost:        decimal.Zero,
		Version:          1,
		DateReported:     now,
		CreatedBy:        input.ActorID,
		UpdatedAt:        now,
	}
	if err := uc.woRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AssignTechnician asigna técnico y toma el snapshot de tarifa horaria en la
// misma operación atómica que la transición reported -> assigned. Si rate es
// nil se usa la tarifa por defecto del técnico. El snapshot es inmutable una
// vez iniciada la orden; reasignar antes de in_progress re-snapshotea.
func (uc *UseCase) AssignTechnician(ctx context.Context, workOrderID, technicianID string, rate *decimal.Decimal, actorID string) (*entity.WorkOrder, error) {
	if technicianID == "" {
		return nil, domain.ErrTechnicianRequired
	}
	order, err := uc.woRepo.GetByID(workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	tech, err := uc.userRepo.GetByID(technicianID)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	if order.Status == entity.StatusAssigned {
		// Reasignación antes de iniciar: técnico y tarifa se vuelven a tomar.
		order.TechnicianID = technicianID
		order.HourlyRate = snapshotRate(rate, tech)
		order.UpdatedAt = now
		if err := uc.woRepo.UpdateVersioned(order); err != nil {
			return nil, err
		}
		return order, nil
	}

	order.TechnicianID = technicianID
	order.HourlyRate = snapshotRate(rate, tech)
	if err := dworkorder.Transition(order, entity.StatusAssigned, now); err != nil {
		return nil, err
	}
	if err := uc.woRepo.UpdateVersioned(order); err != nil {
		return nil, err
	}
	return order, nil
}

func snapshotRate(rate *decimal.Decimal, tech *entity.User) decimal.Decimal {
	if rate != nil && rate.GreaterThan(decimal.Zero) {
		return *rate
	}
	return tech.HourlyRate
}

// TransitionInput entrada para una transición de estado.
type TransitionInput struct {
	Target        string
	Resolution    string
	ActualMinutes int
	// Void solo aplica al cancelar: acredita de vuelta todos los consumos
	// vivos. Sin Void, cancelar deja el stock consumido tal como está.
	Void    bool
	ActorID string
}

// TransitionStatus aplica una transición validada por la máquina de estados.
// in_progress -> completed recalcula costos en la misma operación; una
// transición inválida falla tipada y deja la orden intacta.
func (uc *UseCase) TransitionStatus(ctx context.Context, workOrderID string, input TransitionInput) (*entity.WorkOrder, error) {
	if input.Target == entity.StatusCancelled && input.Void {
		return uc.cancelVoid(ctx, workOrderID, input.ActorID)
	}

	order, err := uc.woRepo.GetByID(workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if input.Resolution != "" {
		order.Resolution = input.Resolution
	}
	if input.ActualMinutes > 0 {
		order.ActualMinutes = input.ActualMinutes
	}
	if err := dworkorder.Transition(order, input.Target, time.Now()); err != nil {
		return nil, err
	}
	if order.Status == entity.StatusCompleted {
		usages, err := uc.usageRepo.ListByWorkOrder(order.ID)
		if err != nil {
			return nil, err
		}
		dworkorder.Recompute(order, usages)
	}
	if err := uc.woRepo.UpdateVersioned(order); err != nil {
		return nil, err
	}
	return order, nil
}

// cancelVoid cancela la orden y devuelve todos los consumos al stock en una
// sola transacción: créditos de ledger primero, luego la orden versionada.
func (uc *UseCase) cancelVoid(ctx context.Context, workOrderID, actorID string) (*entity.WorkOrder, error) {
	var result *entity.WorkOrder
	err := uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		usageRepo repository.PartUsageRepository,
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error {
		order, err := woRepo.GetByID(workOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := dworkorder.Transition(order, entity.StatusCancelled, now); err != nil {
			return err
		}
		if err := removeAllUsages(usageRepo, partRepo, movRepo, order, entity.ReasonWorkOrderVoid, actorID, now); err != nil {
			return err
		}
		dworkorder.Recompute(order, nil)
		if err := woRepo.UpdateVersioned(order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Snapshot orden + consumos para lectura.
type Snapshot struct {
	Order  *entity.WorkOrder
	Usages []*entity.PartUsage
}

// Get devuelve la orden con sus consumos vivos.
func (uc *UseCase) Get(ctx context.Context, workOrderID string) (*Snapshot, error) {
	order, err := uc.woRepo.GetByID(workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	usages, err := uc.usageRepo.ListByWorkOrder(workOrderID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Order: order, Usages: usages}, nil
}

// List lista órdenes según filtro.
func (uc *UseCase) List(ctx context.Context, filter repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	if filter.Status != "" && !dworkorder.ValidStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.woRepo.List(filter)
}
