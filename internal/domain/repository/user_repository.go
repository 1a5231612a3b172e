package repository

import (
	"context"
	"time"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// ExistsUsernameOrEmail indica si ya hay un usuario con ese username o email.
	ExistsUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context, role string, limit, offset int) ([]*entity.User, int, error)
	// Update persiste datos de perfil, rol y estado. Username y password no cambian.
	Update(ctx context.Context, user *entity.User) error
	// EmailTaken indica si otro usuario distinto de exceptID ya usa el email.
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
}

// OfferRepository define el puerto de persistencia para ofertas.
type OfferRepository interface {
	Create(ctx context.Context, o *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	List(ctx context.Context, status string) ([]*entity.Offer, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	// ListActive devuelve ofertas con status active y now dentro de su vigencia.
	ListActive(ctx context.Context, now time.Time) ([]*entity.Offer, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción. (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Offer, error)
	// IncrementUses suma un uso a current_uses.
	IncrementUses(ctx context.Context, id string, at time.Time) error
	// CountByStatus cantidad de ofertas por estado.
	CountByStatus(ctx context.Context) (map[string]int, error)
	// MostUsed ofertas con al menos un uso, más usadas primero.
	MostUsed(ctx context.Context, limit int) ([]*entity.Offer, error)
}

// SequenceGenerator entrega contadores diarios atómicos por prefijo (SB, PO).
type SequenceGenerator interface {
	Next(ctx context.Context, prefix string, day time.Time) (int64, error)
}
