package config

import "time"

type App struct {
	Port        string `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	Env         string `envconfig:"APP_ENV" default:"dev"`

	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	SeedData      bool   `envconfig:"SEED_DATA" default:"false"`

	// Delay between order status transitions (PAID -> SHIPPING -> DELIVERED).
	WorkflowDelay time.Duration `envconfig:"ORDER_WORKFLOW_DELAY" default:"30s"`

	// Orders still undelivered after this age are reported by the sweeper.
	StuckAfter time.Duration `envconfig:"ORDER_STUCK_AFTER" default:"10m"`
	SweepSpec  string        `envconfig:"ORDER_SWEEP_SPEC" default:"@every 5m"`
}
