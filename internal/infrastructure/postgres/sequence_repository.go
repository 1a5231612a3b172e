package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sweetbite/bakery-api/internal/domain/numbering"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var _ repository.SequenceGenerator = (*SequenceRepo)(nil)

// SequenceRepo contadores diarios en la tabla document_sequences.
// El upsert toma el lock de la fila, así que dos llamadas concurrentes nunca
// obtienen el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el contador de (prefix, day). El primero del día es 1.
func (r *SequenceRepo) Next(ctx context.Context, prefix string, day time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (prefix, day, value) VALUES ($1, $2::date, 1)
		ON CONFLICT (prefix, day) DO UPDATE SET value = document_sequences.value + 1
		RETURNING value`, prefix, day,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", prefix, err)
	}
	return n, nil
}

// documentColumns tabla y columna donde queda cada número emitido.
var documentColumns = map[string][2]string{
	numbering.PrefixOrder:         {"orders", "order_number"},
	numbering.PrefixPurchaseOrder: {"purchase_orders", "po_number"},
}

// MaxIssued devuelve el mayor número emitido para (prefix, day), mirando tanto el
// contador como los documentos ya guardados; 0 si aún no hay. El backend Redis lo
// usa para sembrar su contador.
func (r *SequenceRepo) MaxIssued(ctx context.Context, prefix string, day time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT value FROM document_sequences WHERE prefix = $1 AND day = $2::date`, prefix, day,
	).Scan(&n)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("current sequence %s: %w", prefix, err)
	}

	target, ok := documentColumns[prefix]
	if !ok {
		return n, nil
	}
	query := fmt.Sprintf(`SELECT %[2]s FROM %[1]s WHERE %[2]s LIKE $1 || '%%'`, target[0], target[1])
	rows, err := r.q.Query(ctx, query, numbering.Head(prefix, day))
	if err != nil {
		return 0, fmt.Errorf("max issued %s: %w", prefix, err)
	}
	defer rows.Close()
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return 0, fmt.Errorf("scan issued number: %w", err)
		}
		if v, ok := numbering.Parse(prefix, day, number); ok && v > n {
			n = v
		}
	}
	return n, rows.Err()
}
