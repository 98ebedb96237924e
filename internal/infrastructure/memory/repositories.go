package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.MembershipRepository = (*MembershipRepo)(nil)
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.ContainerRepository  = (*ContainerRepo)(nil)
	_ repository.CountRepository      = (*CountRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ a access }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.users[user.ID]; ok {
			return fmt.Errorf("insert user %s: %w", user.ID, domain.ErrConflict)
		}
		if emailTaken(s, user.Email, "") {
			return fmt.Errorf("insert user email: %w", domain.ErrConflict)
		}
		s.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.users[user.ID]; !ok {
			return fmt.Errorf("update user %s: %w", user.ID, domain.ErrNotFound)
		}
		if emailTaken(s, user.Email, user.ID) {
			return fmt.Errorf("update user email: %w", domain.ErrConflict)
		}
		s.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetProfile(_ context.Context, id string) (*entity.UserProfile, error) {
	var out *entity.UserProfile
	err := r.a.read(func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = s.profile(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) ListByCompany(_ context.Context, companyCode string) ([]*entity.UserProfile, error) {
	var out []*entity.UserProfile
	err := r.a.read(func(s *state) error {
		for id, m := range s.memberships {
			if m.CompanyCode == companyCode {
				out = append(out, s.profile(s.users[id]))
			}
		}
		return nil
	})
	sortProfiles(out)
	return out, err
}

// MembershipRepo una membresía por usuario; Put reemplaza la anterior.
type MembershipRepo struct{ a access }

func (r *MembershipRepo) Get(_ context.Context, userID string) (entity.Membership, error) {
	out := entity.Membership{UserID: userID}
	err := r.a.read(func(s *state) error {
		if m, ok := s.memberships[userID]; ok {
			out = m
		}
		return nil
	})
	return out, err
}

func (r *MembershipRepo) Put(_ context.Context, m entity.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Role == entity.RoleNone {
		return fmt.Errorf("put membership: rol %s no persistible", m.Role)
	}
	return r.a.write(func(s *state) error {
		if _, ok := s.users[m.UserID]; !ok {
			return fmt.Errorf("put membership user %s: %w", m.UserID, domain.ErrNotFound)
		}
		if _, ok := s.companies[m.CompanyCode]; !ok {
			return fmt.Errorf("put membership company %s: %w", m.CompanyCode, domain.ErrNotFound)
		}
		s.memberships[m.UserID] = m
		return nil
	})
}

func (r *MembershipRepo) ListEmailReceivers(_ context.Context, companyCode string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.a.read(func(s *state) error {
		for id, m := range s.memberships {
			if m.IsAdmin() && m.EmailReceiver && m.CompanyCode == companyCode {
				u := s.users[id]
				if u.Email != "" {
					out = append(out, &u)
				}
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ a access }

func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.companies[company.Code]; ok {
			return fmt.Errorf("insert company %s: %w", company.Code, domain.ErrConflict)
		}
		s.companies[company.Code] = struct{}{}
		return nil
	})
}

func (r *CompanyRepo) GetByCode(_ context.Context, code string) (*entity.Company, error) {
	var out *entity.Company
	err := r.a.read(func(s *state) error {
		if _, ok := s.companies[code]; ok {
			out = &entity.Company{Code: code}
		}
		return nil
	})
	return out, err
}

// ContainerRepo contenedores en memoria con IDs secuenciales.
type ContainerRepo struct{ a access }

func (r *ContainerRepo) Create(_ context.Context, c *entity.Container) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.companies[c.CompanyCode]; !ok {
			return fmt.Errorf("insert container company %s: %w", c.CompanyCode, domain.ErrNotFound)
		}
		s.nextID++
		c.ID = s.nextID
		s.containers[c.ID] = *c
		return nil
	})
}

func (r *ContainerRepo) GetByID(_ context.Context, id int64) (*entity.Container, error) {
	var out *entity.Container
	err := r.a.read(func(s *state) error {
		if c, ok := s.containers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ContainerRepo) ListByCompany(_ context.Context, companyCode string) ([]*entity.Container, error) {
	var out []*entity.Container
	err := r.a.read(func(s *state) error {
		for _, c := range s.containers {
			if c.CompanyCode == companyCode {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *ContainerRepo) Update(_ context.Context, c *entity.Container) error {
	return r.a.write(func(s *state) error {
		prev, ok := s.containers[c.ID]
		if !ok {
			return fmt.Errorf("update container %d: %w", c.ID, domain.ErrNotFound)
		}
		upd := *c
		upd.CompanyCode = prev.CompanyCode
		s.containers[c.ID] = upd
		return nil
	})
}

// CountRepo flujo de conteos solo-inserción.
type CountRepo struct{ a access }

func (r *CountRepo) Create(_ context.Context, c *entity.Count) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.containers[c.ContainerID]; !ok {
			return fmt.Errorf("insert count container %d: %w", c.ContainerID, domain.ErrNotFound)
		}
		if _, ok := s.users[c.UserID]; !ok {
			return fmt.Errorf("insert count user %s: %w", c.UserID, domain.ErrNotFound)
		}
		s.nextCountID++
		c.ID = s.nextCountID
		stored := *c
		stored.FirstName, stored.LastName = "", ""
		s.counts = append(s.counts, stored)
		return nil
	})
}

func (r *CountRepo) ListByContainer(_ context.Context, containerID int64, w entity.CountWindow) ([]*entity.Count, error) {
	var out []*entity.Count
	err := r.a.read(func(s *state) error {
		for _, c := range s.counts {
			if c.ContainerID != containerID || !w.Contains(c.Timestamp) {
				continue
			}
			c := c
			if u, ok := s.users[c.UserID]; ok {
				c.FirstName, c.LastName = u.FirstName, u.LastName
			}
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}
