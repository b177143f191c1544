package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// PartUseCase casos de uso de catálogo de repuestos. El stock se maneja vía
// ledger; aquí solo datos de catálogo (nombre, precio vigente, umbral).
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create crea un repuesto. El stock inicial se registra tal cual; los cambios
// posteriores solo entran por el ledger.
func (uc *PartUseCase) Create(in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.Name == "" || in.Reference == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) || in.InitialStock < 0 || in.AlertThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByReference(in.Reference)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part := &entity.Part{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Reference:      in.Reference,
		UnitPrice:      in.UnitPrice,
		Stock:          in.InitialStock,
		AlertThreshold: in.AlertThreshold,
		SupplierRef:    in.SupplierRef,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return dto.ToPartResponse(part), nil
}

// GetByID obtiene un repuesto.
func (uc *PartUseCase) GetByID(id string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToPartResponse(part), nil
}

// List lista el catálogo paginado.
func (uc *PartUseCase) List(limit, offset int) ([]*dto.PartResponse, error) {
	parts, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.ToPartResponse(p))
	}
	return out, nil
}

// ListBelowThreshold lista los repuestos en o bajo el umbral de alerta.
func (uc *PartUseCase) ListBelowThreshold() ([]*dto.PartResponse, error) {
	parts, err := uc.repo.ListBelowThreshold()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.ToPartResponse(p))
	}
	return out, nil
}

// Update edita datos de catálogo. Cambiar UnitPrice no altera consumos
// históricos: su precio quedó congelado en cada PartUsage.
func (uc *PartUseCase) Update(id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if in.UnitPrice.LessThan(decimal.Zero) || in.AlertThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		part.Name = in.Name
	}
	part.UnitPrice = in.UnitPrice
	part.AlertThreshold = in.AlertThreshold
	part.SupplierRef = in.SupplierRef
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	return dto.ToPartResponse(part), nil
}

// Delete elimina un repuesto solo si ningún consumo lo referencia.
func (uc *PartUseCase) Delete(id string) error {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.repo.HasUsages(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrPartInUse
	}
	return uc.repo.Delete(id)
}
