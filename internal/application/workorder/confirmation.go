package workorder

import (
	"context"
	"time"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// ConfirmationUseCase registra las firmas de cierre de una orden completada.
// Cada confirmación es idempotente-una-vez: la segunda llamada falla con
// ErrAlreadyConfirmed en lugar de pisar el timestamp (integridad de
// auditoría). La emisión de factura (colaborador externo) se habilita con la
// confirmación del técnico; la del cliente es informativa.
type ConfirmationUseCase struct {
	woRepo repository.WorkOrderRepository
}

// NewConfirmationUseCase construye el caso de uso de confirmaciones.
func NewConfirmationUseCase(woRepo repository.WorkOrderRepository) *ConfirmationUseCase {
	return &ConfirmationUseCase{woRepo: woRepo}
}

// ConfirmTechnician registra la firma del técnico sobre una orden completada.
func (uc *ConfirmationUseCase) ConfirmTechnician(ctx context.Context, workOrderID, actorID string) (*entity.WorkOrder, error) {
	order, err := uc.loadCompleted(workOrderID)
	if err != nil {
		return nil, err
	}
	if order.TechConfirmed {
		return nil, domain.ErrAlreadyConfirmed
	}
	now := time.Now()
	order.TechConfirmed = true
	order.TechConfirmedAt = &now
	order.UpdatedAt = now
	if err := uc.woRepo.UpdateVersioned(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmClient registra la conformidad del cliente con su artefacto de firma.
func (uc *ConfirmationUseCase) ConfirmClient(ctx context.Context, workOrderID, signatureRef, signerName, actorID string) (*entity.WorkOrder, error) {
	if signerName == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.loadCompleted(workOrderID)
	if err != nil {
		return nil, err
	}
	if order.ClientConfirmed {
		return nil, domain.ErrAlreadyConfirmed
	}
	now := time.Now()
	order.ClientConfirmed = true
	order.ClientConfirmedAt = &now
	order.SignatureRef = signatureRef
	order.SignerName = signerName
	order.UpdatedAt = now
	if err := uc.woRepo.UpdateVersioned(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *ConfirmationUseCase) loadCompleted(workOrderID string) (*entity.WorkOrder, error) {
	order, err := uc.woRepo.GetByID(workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.StatusCompleted {
		return nil, domain.ErrWorkOrderNotCompleted
	}
	return order, nil
}
