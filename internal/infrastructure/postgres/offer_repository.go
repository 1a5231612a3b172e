package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo ofertas sobre PostgreSQL.
type OfferRepo struct {
	q Querier
}

// NewOfferRepository construye el adaptador.
func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

const offerColumns = `
	id, title, description, offer_type, status, discount_percentage, discount_amount, minimum_order_amount,
	start_date, end_date, max_uses, current_uses, created_by, created_at, updated_at`

func scanOffer(row pgx.Row) (*entity.Offer, error) {
	var o entity.Offer
	err := row.Scan(&o.ID, &o.Title, &o.Description, &o.OfferType, &o.Status, &o.DiscountPercentage,
		&o.DiscountAmount, &o.MinimumOrderAmount, &o.StartDate, &o.EndDate, &o.MaxUses, &o.CurrentUses,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepo) Create(ctx context.Context, o *entity.Offer) error {
	query := `INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query, o.ID, o.Title, o.Description, o.OfferType, o.Status, o.DiscountPercentage,
		o.DiscountAmount, o.MinimumOrderAmount, o.StartDate, o.EndDate, o.MaxUses, o.CurrentUses,
		o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}

func (r *OfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := scanOffer(r.q.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

// List ofertas más recientes primero; status vacío no filtra.
func (r *OfferRepo) List(ctx context.Context, status string) ([]*entity.Offer, error) {
	var w whereBuilder
	if status != "" {
		w.add("status = $%d", status)
	}
	return r.query(ctx, `SELECT `+offerColumns+` FROM offers`+w.sql()+` ORDER BY created_at DESC`, w.args...)
}

func (r *OfferRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE offers SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update offer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive ofertas activas vigentes en now. El tope de usos lo filtra el caso de uso.
func (r *OfferRepo) ListActive(ctx context.Context, now time.Time) ([]*entity.Offer, error) {
	return r.query(ctx, `SELECT `+offerColumns+` FROM offers
		WHERE status = 'active' AND start_date <= $1 AND end_date >= $1
		ORDER BY end_date`, now)
}

func (r *OfferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := scanOffer(r.q.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer for update: %w", err)
	}
	return o, nil
}

func (r *OfferRepo) IncrementUses(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE offers SET current_uses = current_uses + 1, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("increment offer uses: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OfferRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM offers GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count offers: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan offer count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *OfferRepo) MostUsed(ctx context.Context, limit int) ([]*entity.Offer, error) {
	return r.query(ctx, `SELECT `+offerColumns+` FROM offers
		WHERE current_uses > 0
		ORDER BY current_uses DESC, created_at DESC
		LIMIT $1`, limit)
}

func (r *OfferRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Offer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
