// ledgercheck recorre el libro de movimientos de cada producto y verifica
// que los asientos encadenen: stock_anterior de cada asiento igual al
// stock_posterior del anterior, y stock_actual igual al último asiento.
//
// Uso: go run ./cmd/ledgercheck [id-producto]
// Sin argumentos revisa todos los productos no eliminados.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tu-usuario/stock-kiosco/internal/application/ledger"
	"github.com/tu-usuario/stock-kiosco/internal/infrastructure/postgres"
	"github.com/tu-usuario/stock-kiosco/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	uc := ledger.NewUseCase(postgres.NewTxRunner(pool), productRepo, movementRepo)

	type target struct{ id, userID, nombre string }
	var targets []target

	query := `SELECT id, usuario_id, nombre FROM productos WHERE NOT eliminado ORDER BY nombre`
	args := []any{}
	if len(os.Args) > 1 {
		query = `SELECT id, usuario_id, nombre FROM productos WHERE id = $1`
		args = append(args, os.Args[1])
	}
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Listar productos: %v\n", err)
		os.Exit(1)
	}
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.id, &t.userID, &t.nombre); err != nil {
			rows.Close()
			fmt.Fprintf(os.Stderr, "Leer producto: %v\n", err)
			os.Exit(1)
		}
		targets = append(targets, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Listar productos: %v\n", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		fmt.Println("Sin productos que revisar.")
		return
	}

	var conErrores int
	var total int
	for _, t := range targets {
		disc, err := uc.VerifyContinuity(ctx, t.userID, t.id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Verificar %s (%s): %v\n", t.nombre, t.id, err)
			os.Exit(1)
		}
		total++
		if len(disc) == 0 {
			continue
		}
		conErrores++
		fmt.Printf("✗ %s (%s)\n", t.nombre, t.id)
		for _, d := range disc {
			fmt.Printf("    - %s\n", d.Description)
		}
	}

	fmt.Printf("\nRevisados %d productos, %d con discrepancias.\n", total, conErrores)
	if conErrores > 0 {
		os.Exit(1)
	}
}
