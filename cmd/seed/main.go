// Siembra los datos mínimos para un entorno nuevo: el usuario superadmin y el
// catálogo de categorías. Idempotente: se puede correr las veces que haga falta.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/ofertas-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/ofertas-pro/pkg/config"
	"github.com/tu-usuario/ofertas-pro/pkg/logger"
)

var categories = []struct {
	Name string
	Icon string
}{
	{"Restaurantes", "utensils"},
	{"Belleza", "sparkles"},
	{"Salud", "heart-pulse"},
	{"Moda", "shirt"},
	{"Tecnología", "laptop"},
	{"Hogar", "house"},
	{"Entretenimiento", "ticket"},
	{"Servicios", "wrench"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	email := getenv("SEED_ADMIN_EMAIL", "admin@ofertas.local")
	password := getenv("SEED_ADMIN_PASSWORD", "")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es obligatorio")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, 'superadmin', true, now(), now())
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), email, string(hash))
	if err != nil {
		log.Fatal().Err(err).Msg("seed superadmin")
	}
	log.Info().Str("email", email).Msg("superadmin listo")

	for _, c := range categories {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, icon_name)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET icon_name = EXCLUDED.icon_name`,
			uuid.New().String(), c.Name, c.Icon)
		if err != nil {
			log.Fatal().Err(err).Str("category", c.Name).Msg("seed categoría")
		}
	}
	log.Info().Int("count", len(categories)).Msg("categorías listas")

	fmt.Println("seed completado")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
