package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty mapea cadena vacía a NULL para columnas de texto opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// buildWhere arma la cláusula WHERE a partir de condiciones ya parametrizadas.
func buildWhere(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// joinSets arma la lista de asignaciones de un UPDATE parcial.
func joinSets(sets []string) string {
	return strings.Join(sets, ", ")
}

// orEmpty desreferencia un texto opcional leído de la DB.
func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
