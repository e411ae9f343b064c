package postgres

import (
	"context"

	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo contadores de numeración por (kind, cliente, período).
// Usable con pool o tx; en producción siempre corre dentro de la misma
// transacción que escribe el documento, de modo que un fallo posterior
// revierte también el incremento.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el consecutivo de la serie en una sola
// sentencia: el upsert con RETURNING es atómico a nivel de fila, así que dos
// emisiones concurrentes de la misma serie nunca reciben el mismo número
// (la segunda espera el row lock de la primera).
func (r *CounterRepo) Next(kind entity.DocumentKind, clientID, period string) (int64, error) {
	query := `
		INSERT INTO counters (kind, client_id, period, counter)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (kind, client_id, period)
		DO UPDATE SET counter = counters.counter + 1
		RETURNING counter`
	var seq int64
	err := r.q.QueryRow(context.Background(), query, string(kind), clientID, period).Scan(&seq)
	if err != nil {
		return 0, storageErr("next counter", err)
	}
	return seq, nil
}
