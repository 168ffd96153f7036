package catalog

import (
	"fmt"
	"sync"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// Catalog индексированный справочник ресурсов (филиалы, сотрудники, залы, услуги)
// Загружается из seed-файла при старте; lookups по id выполняются за O(1)
//
// Мутации ограничены удалением сотрудника (см. DeleteStaff) - события,
// ссылающиеся на удаленного сотрудника, остаются в хранилище, а имя
// резолвится в placeholder (domain.RemovedStaffLabel)
type Catalog struct {
	mu sync.RWMutex

	branches map[string]*domain.Branch
	staff    map[string]*domain.StaffMember
	rooms    map[string]*domain.Room
	services map[string]*domain.Service

	// Порядок из seed-файла - стабильный порядок для списков
	branchOrder  []string
	staffOrder   []string
	roomOrder    []string
	serviceOrder []string
}

// New строит каталог из seed-данных
// Дубликат id любого ресурса - ошибка загрузки, а не тихая перезапись
func New(seed *Seed) (*Catalog, error) {
	c := &Catalog{
		branches: make(map[string]*domain.Branch, len(seed.Branches)),
		staff:    make(map[string]*domain.StaffMember, len(seed.Staff)),
		rooms:    make(map[string]*domain.Room, len(seed.Rooms)),
		services: make(map[string]*domain.Service, len(seed.Services)),
	}

	for i := range seed.Branches {
		b := seed.Branches[i].toDomain()
		if _, exists := c.branches[b.ID]; exists {
			return nil, fmt.Errorf("%w: branch %q", ErrDuplicateID, b.ID)
		}
		c.branches[b.ID] = b
		c.branchOrder = append(c.branchOrder, b.ID)
	}

	for i := range seed.Staff {
		s := seed.Staff[i].toDomain()
		if _, exists := c.staff[s.ID]; exists {
			return nil, fmt.Errorf("%w: staff %q", ErrDuplicateID, s.ID)
		}
		if _, ok := c.branches[s.BranchID]; !ok {
			return nil, fmt.Errorf("%w: staff %q -> branch %q", ErrUnknownBranch, s.ID, s.BranchID)
		}
		c.staff[s.ID] = s
		c.staffOrder = append(c.staffOrder, s.ID)
	}

	for i := range seed.Rooms {
		r := seed.Rooms[i].toDomain()
		if _, exists := c.rooms[r.ID]; exists {
			return nil, fmt.Errorf("%w: room %q", ErrDuplicateID, r.ID)
		}
		if _, ok := c.branches[r.BranchID]; !ok {
			return nil, fmt.Errorf("%w: room %q -> branch %q", ErrUnknownBranch, r.ID, r.BranchID)
		}
		c.rooms[r.ID] = r
		c.roomOrder = append(c.roomOrder, r.ID)
	}

	for i := range seed.Services {
		s := seed.Services[i].toDomain()
		if _, exists := c.services[s.ID]; exists {
			return nil, fmt.Errorf("%w: service %q", ErrDuplicateID, s.ID)
		}
		c.services[s.ID] = s
		c.serviceOrder = append(c.serviceOrder, s.ID)
	}

	return c, nil
}

// BranchByID возвращает филиал по id
func (c *Catalog) BranchByID(id string) (*domain.Branch, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.branches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBranchNotFound, id)
	}
	cp := *b
	return &cp, nil
}

// StaffByID возвращает сотрудника по id
func (c *Catalog) StaffByID(id string) (*domain.StaffMember, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.staff[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStaffNotFound, id)
	}
	cp := *s
	return &cp, nil
}

// RoomByID возвращает зал по id
func (c *Catalog) RoomByID(id string) (*domain.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, id)
	}
	cp := *r
	return &cp, nil
}

// ServiceByID возвращает услугу по id
func (c *Catalog) ServiceByID(id string) (*domain.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.services[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, id)
	}
	cp := *s
	return &cp, nil
}

// HasStaff возвращает true, если сотрудник существует
func (c *Catalog) HasStaff(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.staff[id]
	return ok
}

// HasRoom возвращает true, если зал существует
func (c *Catalog) HasRoom(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rooms[id]
	return ok
}

// StaffName возвращает имя сотрудника или placeholder, если сотрудник удален
func (c *Catalog) StaffName(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.staff[id]; ok {
		return s.Name
	}
	return domain.RemovedStaffLabel
}

// ListBranches возвращает все филиалы в порядке seed-файла
func (c *Catalog) ListBranches() []*domain.Branch {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Branch, 0, len(c.branchOrder))
	for _, id := range c.branchOrder {
		if b, ok := c.branches[id]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

// ListStaff возвращает всех сотрудников в порядке seed-файла
func (c *Catalog) ListStaff() []*domain.StaffMember {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.StaffMember, 0, len(c.staffOrder))
	for _, id := range c.staffOrder {
		if s, ok := c.staff[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out
}

// ListRooms возвращает все залы в порядке seed-файла
func (c *Catalog) ListRooms() []*domain.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Room, 0, len(c.roomOrder))
	for _, id := range c.roomOrder {
		if r, ok := c.rooms[id]; ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

// StaffByBranches возвращает сотрудников, привязанных хотя бы к одному из филиалов
// Порядок - порядок seed-файла
func (c *Catalog) StaffByBranches(branchIDs []string) []*domain.StaffMember {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.StaffMember, 0)
	for _, id := range c.staffOrder {
		s, ok := c.staff[id]
		if !ok {
			continue
		}
		for _, branchID := range branchIDs {
			if s.AssignedTo(branchID) {
				cp := *s
				out = append(out, &cp)
				break
			}
		}
	}
	return out
}

// RoomsByBranches возвращает залы указанных филиалов в порядке seed-файла
func (c *Catalog) RoomsByBranches(branchIDs []string) []*domain.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Room, 0)
	for _, id := range c.roomOrder {
		r, ok := c.rooms[id]
		if !ok {
			continue
		}
		for _, branchID := range branchIDs {
			if r.BranchID == branchID {
				cp := *r
				out = append(out, &cp)
				break
			}
		}
	}
	return out
}

// DeleteStaff удаляет сотрудника из каталога
// События, ссылающиеся на него, НЕ удаляются - их имена резолвятся
// в placeholder через StaffName
func (c *Catalog) DeleteStaff(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.staff[id]; !ok {
		return fmt.Errorf("%w: %q", ErrStaffNotFound, id)
	}
	delete(c.staff, id)
	return nil
}
