package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// intDec convierte un conteo entero a decimal para multiplicar contra precios.
func intDec(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
