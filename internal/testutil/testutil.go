package testutil

import (
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"hallpoint/internal/pkg/database"
	"hallpoint/internal/pkg/logger"
)

// TestDBEnv aponta para um PostgreSQL descartável usado pelos testes de repositório.
const TestDBEnv = "TEST_DATABASE_URL"

// SetupTestDB conecta ao banco de testes, aplica as migrações de ./sql e limpa as tabelas.
// O teste é pulado quando TEST_DATABASE_URL não está definido.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(TestDBEnv)
	if dsn == "" {
		t.Skipf("%s não definido; pulando teste de integração", TestDBEnv)
	}

	db, err := database.NewPostgresDB(dsn, database.PoolConfig{MaxOpenConns: 10})
	if err != nil {
		t.Fatalf("Falha ao abrir o banco de testes: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, MigrationsDir()); err != nil {
		t.Fatalf("Falha ao migrar o banco de testes: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE users, meals, upcoming_meals, reviews, meal_requests`); err != nil {
		t.Fatalf("Falha ao limpar o banco de testes: %v", err)
	}

	return db
}

// MigrationsDir resolve o diretório sql/ a partir deste arquivo, independente do pacote em teste.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "sql")
}

// QuietLogger descarta toda saída de log.
func QuietLogger() logger.Logger {
	return logger.New(io.Discard, "disabled")
}
