// Package users contiene el alta, la consulta y la administración de usuarios y perfiles.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

const minPasswordLen = 8

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
	cost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia. now puede ser nil.
func NewUserUseCase(repo repository.UserRepository, now func() time.Time) *UserUseCase {
	if now == nil {
		now = time.Now
	}
	return &UserUseCase{repo: repo, now: now, cost: bcrypt.DefaultCost}
}

// Create registra un usuario con el password hasheado con bcrypt.
// Devuelve ErrDuplicate si el username o el email ya existen.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" {
		return nil, domain.Invalid("username", "requerido")
	}
	if email == "" {
		return nil, domain.Invalid("email", "requerido")
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.Invalid("role", "rol desconocido")
	}
	if in.Password != in.PasswordConfirm {
		return nil, domain.Invalid("password_confirm", "las contraseñas no coinciden")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Invalid("password", "debe tener al menos 8 caracteres")
	}

	exists, err := uc.repo.ExistsUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.Invalid("password", "demasiado larga")
		}
		return nil, err
	}
	now := uc.now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El índice único de la BD cubre la carrera entre la verificación y el insert.
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}

// Get obtiene un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromUser(u)
	return &out, nil
}

// List lista usuarios, opcionalmente por rol.
func (uc *UserUseCase) List(ctx context.Context, in dto.UserListRequest) (*dto.UserListResponse, error) {
	in.DefaultPage()
	if in.Role != "" && !entity.ValidRole(in.Role) {
		return nil, domain.Invalid("role", "rol desconocido")
	}
	list, total, err := uc.repo.List(ctx, in.Role, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.FromUser(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// IsActive indica si el usuario existe y sigue activo.
func (uc *UserUseCase) IsActive(ctx context.Context, id string) (bool, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u != nil && u.IsActive, nil
}

// Update edita un usuario desde administración. Un admin no puede quitarse el rol ni
// desactivarse a sí mismo; desactivar a otro admin sigue las reglas de Deactivate.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	actor, target, err := uc.pair(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.Invalid("role", "rol desconocido")
		}
		if actor.ID == target.ID && *in.Role != target.Role {
			return nil, domain.Invalid("role", "no puedes cambiar tu propio rol")
		}
		target.Role = *in.Role
	}
	if in.IsActive != nil && !*in.IsActive && target.IsActive {
		if err := canDeactivate(actor, target); err != nil {
			return nil, err
		}
	}
	if in.IsActive != nil {
		target.IsActive = *in.IsActive
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, domain.Invalid("email", "requerido")
		}
		taken, err := uc.repo.EmailTaken(ctx, email, target.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicate
		}
		target.Email = email
	}
	applyProfile(target, in.FirstName, in.LastName, in.PhoneNumber, in.Address)
	target.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, target); err != nil {
		return nil, err
	}
	out := dto.FromUser(target)
	return &out, nil
}

// Deactivate desactiva la cuenta; el usuario queda fuera en su próxima petición.
// Nadie se desactiva a sí mismo y solo un superusuario desactiva a otro admin.
func (uc *UserUseCase) Deactivate(ctx context.Context, actorID, id string) error {
	actor, target, err := uc.pair(ctx, actorID, id)
	if err != nil {
		return err
	}
	if err := canDeactivate(actor, target); err != nil {
		return err
	}
	if !target.IsActive {
		return nil
	}
	target.IsActive = false
	target.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, target)
}

func canDeactivate(actor, target *entity.User) error {
	if actor.ID == target.ID {
		return domain.Invalid("id", "no puedes desactivar tu propia cuenta")
	}
	if target.Role == entity.RoleAdmin && !actor.IsSuperuser {
		return fmt.Errorf("%w: solo un superusuario puede desactivar a otro administrador", domain.ErrForbidden)
	}
	return nil
}

// Profile datos del usuario autenticado.
func (uc *UserUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return uc.Get(ctx, userID)
}

// UpdateProfile edita nombre, teléfono y dirección del usuario autenticado.
// Email, rol y estado solo cambian desde administración.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	applyProfile(u, in.FirstName, in.LastName, in.PhoneNumber, in.Address)
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}

func applyProfile(u *entity.User, firstName, lastName, phone, address *string) {
	if firstName != nil {
		u.FirstName = strings.TrimSpace(*firstName)
	}
	if lastName != nil {
		u.LastName = strings.TrimSpace(*lastName)
	}
	if phone != nil {
		u.Phone = strings.TrimSpace(*phone)
	}
	if address != nil {
		u.Address = strings.TrimSpace(*address)
	}
}

// pair carga actor y destino. Un actor inexistente es ErrUnauthorized.
func (uc *UserUseCase) pair(ctx context.Context, actorID, id string) (actor, target *entity.User, err error) {
	actor, err = uc.repo.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	target, err = uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, domain.ErrNotFound
	}
	return actor, target, nil
}
