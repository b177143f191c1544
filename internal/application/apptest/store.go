// Package apptest provee dobles en memoria de los puertos de persistencia
// para los tests de casos de uso: repositorios respaldados por mapas y un
// TxRunner que emula la semántica transaccional de PostgreSQL (serialización
// por mutex, snapshot al inicio y restauración completa si el callback falla).
package apptest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// Store estado en memoria compartido por todos los repositorios fake.
// Las entidades se guardan por valor: cada lectura devuelve una copia, igual
// que un scan de fila en la base real.
type Store struct {
	mu       sync.Mutex
	parts    map[string]entity.Part
	moves    []entity.StockMovement
	orders   map[string]entity.WorkOrder
	usages   map[string]entity.PartUsage
	machines map[string]entity.Machine
	users    map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		parts:    make(map[string]entity.Part),
		orders:   make(map[string]entity.WorkOrder),
		usages:   make(map[string]entity.PartUsage),
		machines: make(map[string]entity.Machine),
		users:    make(map[string]entity.User),
	}
}

// SeedPart carga un repuesto directo al store.
func (s *Store) SeedPart(p entity.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[p.ID] = p
}

// SeedOrder carga una orden directa al store.
func (s *Store) SeedOrder(w entity.WorkOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[w.ID] = w
}

// SeedMachine carga una máquina directa al store.
func (s *Store) SeedMachine(m entity.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines[m.ID] = m
}

// SeedUser carga un usuario directo al store.
func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Movements devuelve una copia de todos los movimientos registrados.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockMovement, len(s.moves))
	copy(out, s.moves)
	return out
}

// PartStock devuelve el stock actual del repuesto.
func (s *Store) PartStock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parts[id].Stock
}

// Order devuelve una copia de la orden.
func (s *Store) Order(id string) entity.WorkOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

// Usages devuelve los consumos vivos de una orden, ordenados por creación.
func (s *Store) Usages(workOrderID string) []entity.PartUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.PartUsage
	for _, u := range s.usages {
		if u.WorkOrderID == workOrderID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) snapshot() *Store {
	clone := &Store{
		parts:    make(map[string]entity.Part, len(s.parts)),
		moves:    make([]entity.StockMovement, len(s.moves)),
		orders:   make(map[string]entity.WorkOrder, len(s.orders)),
		usages:   make(map[string]entity.PartUsage, len(s.usages)),
		machines: make(map[string]entity.Machine, len(s.machines)),
		users:    make(map[string]entity.User, len(s.users)),
	}
	for k, v := range s.parts {
		clone.parts[k] = v
	}
	copy(clone.moves, s.moves)
	for k, v := range s.orders {
		clone.orders[k] = v
	}
	for k, v := range s.usages {
		clone.usages[k] = v
	}
	for k, v := range s.machines {
		clone.machines[k] = v
	}
	for k, v := range s.users {
		clone.users[k] = v
	}
	return clone
}

func (s *Store) restore(snap *Store) {
	s.parts = snap.parts
	s.moves = snap.moves
	s.orders = snap.orders
	s.usages = snap.usages
	s.machines = snap.machines
	s.users = snap.users
}

// ── repositorios ─────────────────────────────────────────────────────────────

// Los repos atados a una transacción (noLock) no toman el mutex: lo sostiene
// el TxRunner durante todo el callback, igual que una conexión con la tx
// abierta sostiene sus locks de fila.

// PartRepo fake de repository.PartRepository.
type PartRepo struct {
	s      *Store
	noLock bool
}

// NewPartRepo construye el fake con locking propio (uso fuera de tx).
func NewPartRepo(s *Store) *PartRepo { return &PartRepo{s: s} }

func (r *PartRepo) lock() func() {
	if r.noLock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *PartRepo) Create(part *entity.Part) error {
	defer r.lock()()
	if _, ok := r.s.parts[part.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.parts[part.ID] = *part
	return nil
}

func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	defer r.lock()()
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PartRepo) GetByReference(reference string) (*entity.Part, error) {
	defer r.lock()()
	for _, p := range r.s.parts {
		if p.Reference == reference {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	defer r.lock()()
	var out []*entity.Part
	for _, p := range r.s.parts {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *PartRepo) ListBelowThreshold() ([]*entity.Part, error) {
	defer r.lock()()
	var out []*entity.Part
	for _, p := range r.s.parts {
		if p.BelowThreshold() {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PartRepo) Update(part *entity.Part) error {
	defer r.lock()()
	current, ok := r.s.parts[part.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *part
	updated.Stock = current.Stock // Update nunca toca stock
	r.s.parts[part.ID] = updated
	return nil
}

func (r *PartRepo) UpdateStock(id string, stock int) error {
	defer r.lock()()
	p, ok := r.s.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	r.s.parts[id] = p
	return nil
}

func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	// El lock de fila real lo emula el mutex del TxRunner.
	return r.GetByID(id)
}

func (r *PartRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.s.parts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.parts, id)
	return nil
}

func (r *PartRepo) HasUsages(id string) (bool, error) {
	defer r.lock()()
	for _, u := range r.s.usages {
		if u.PartID == id {
			return true, nil
		}
	}
	return false, nil
}

// MovementRepo fake de repository.StockMovementRepository (append-only).
type MovementRepo struct {
	s      *Store
	noLock bool
}

// NewMovementRepo construye el fake.
func NewMovementRepo(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) lock() func() {
	if r.noLock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *MovementRepo) Append(movement *entity.StockMovement) error {
	defer r.lock()()
	r.s.moves = append(r.s.moves, *movement)
	return nil
}

func (r *MovementRepo) ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for i := range r.s.moves {
		m := r.s.moves[i]
		if m.PartID != partID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		out = append(out, &m)
	}
	return page(out, limit, offset), nil
}

func (r *MovementRepo) ListByWorkOrder(workOrderID string) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for i := range r.s.moves {
		m := r.s.moves[i]
		if m.WorkOrderID == workOrderID {
			out = append(out, &m)
		}
	}
	return out, nil
}

// WorkOrderRepo fake de repository.WorkOrderRepository con el mismo contrato
// de versión optimista que el repositorio PostgreSQL.
type WorkOrderRepo struct {
	s      *Store
	noLock bool
}

// NewWorkOrderRepo construye el fake.
func NewWorkOrderRepo(s *Store) *WorkOrderRepo { return &WorkOrderRepo{s: s} }

func (r *WorkOrderRepo) lock() func() {
	if r.noLock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *WorkOrderRepo) Create(order *entity.WorkOrder) error {
	defer r.lock()()
	r.s.orders[order.ID] = *order
	return nil
}

func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	defer r.lock()()
	w, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WorkOrderRepo) List(filter repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	defer r.lock()()
	var out []*entity.WorkOrder
	for _, w := range r.s.orders {
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		if filter.TechnicianID != "" && w.TechnicianID != filter.TechnicianID {
			continue
		}
		if filter.MachineID != "" && w.MachineID != filter.MachineID {
			continue
		}
		cp := w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *WorkOrderRepo) UpdateVersioned(order *entity.WorkOrder) error {
	defer r.lock()()
	current, ok := r.s.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != order.Version {
		return domain.ErrConcurrentModification
	}
	order.Version++
	r.s.orders[order.ID] = *order
	return nil
}

// UsageRepo fake de repository.PartUsageRepository.
type UsageRepo struct {
	s      *Store
	noLock bool
}

// NewUsageRepo construye el fake.
func NewUsageRepo(s *Store) *UsageRepo { return &UsageRepo{s: s} }

func (r *UsageRepo) lock() func() {
	if r.noLock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *UsageRepo) Create(usage *entity.PartUsage) error {
	defer r.lock()()
	r.s.usages[usage.ID] = *usage
	return nil
}

func (r *UsageRepo) GetByID(id string) (*entity.PartUsage, error) {
	defer r.lock()()
	u, ok := r.s.usages[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UsageRepo) ListByWorkOrder(workOrderID string) ([]*entity.PartUsage, error) {
	defer r.lock()()
	var out []*entity.PartUsage
	for _, u := range r.s.usages {
		if u.WorkOrderID == workOrderID {
			cp := u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UsageRepo) UpdateQuantity(id string, quantity int) error {
	defer r.lock()()
	u, ok := r.s.usages[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Quantity = quantity
	r.s.usages[id] = u
	return nil
}

func (r *UsageRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.s.usages, id)
	return nil
}

// MachineRepo fake de repository.MachineRepository.
type MachineRepo struct {
	s *Store
}

// NewMachineRepo construye el fake.
func NewMachineRepo(s *Store) *MachineRepo { return &MachineRepo{s: s} }

func (r *MachineRepo) Create(machine *entity.Machine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.machines[machine.ID] = *machine
	return nil
}

func (r *MachineRepo) GetByID(id string) (*entity.Machine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.machines[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MachineRepo) List(limit, offset int) ([]*entity.Machine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Machine
	for _, m := range r.s.machines {
		cp := m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

// UserRepo fake de repository.UserRepository.
type UserRepo struct {
	s *Store
}

// NewUserRepo construye el fake.
func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		cp := u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// TxRunner emula las transacciones: el mutex del store se sostiene durante
// todo el callback (serialización equivalente al lock de fila) y si el
// callback falla el estado completo se restaura al snapshot de entrada.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner fake.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run transacción del ledger.
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(&PartRepo{s: r.s, noLock: true}, &MovementRepo{s: r.s, noLock: true})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// RunWorkOrder transacción combinada orden + ledger.
func (r *TxRunner) RunWorkOrder(ctx context.Context, fn func(
	woRepo repository.WorkOrderRepository,
	usageRepo repository.PartUsageRepository,
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(
		&WorkOrderRepo{s: r.s, noLock: true},
		&UsageRepo{s: r.s, noLock: true},
		&PartRepo{s: r.s, noLock: true},
		&MovementRepo{s: r.s, noLock: true},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
