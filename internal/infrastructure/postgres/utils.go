package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// classifyError envuelve err con el contexto de la operación y lo clasifica
// en el error de dominio que corresponda: conflicto de escritura (reintentable),
// almacenamiento no disponible (reintentable con backoff) o el error original.
func classifyError(op string, err error) error {
	switch {
	case isSerializationFailure(err):
		return fmt.Errorf("%s: %w", op, domain.ErrWriteConflict)
	case isConnectionError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrStorageUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isSerializationFailure detecta transacciones abortadas por escritores
// concurrentes: serialization_failure (40001) o deadlock_detected (40P01).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isConnectionError detecta fallos de conectividad o timeout hacia la BD
// (clase 08 de PostgreSQL, errores de red, contexto vencido).
func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") // connection_exception
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
