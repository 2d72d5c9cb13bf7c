package database

import (
	"log"
	"strings"

	"nexus-backend/internal/config"
	"nexus-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	if cfg.DatabaseDSN != "" {
		// Produção: Postgres. O Render entrega a URL como postgres://,
		// normaliza para postgresql://
		dsn := cfg.DatabaseDSN
		if strings.HasPrefix(dsn, "postgres://") {
			dsn = "postgresql://" + strings.TrimPrefix(dsn, "postgres://")
		}
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		// Desenvolvimento: SQLite local
		DB, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco de dados: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	log.Println("Conexão com o banco de dados estabelecida. Migration concluída.")
}

// Migrate cria/atualiza o schema. Separada do Init para os testes poderem
// montar bancos em memória.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Usuario{},
		&models.Insumo{},
		&models.Produto{},
		&models.FichaTecnica{},
		&models.FichaTecnicaItem{},
		&models.Mesa{},
		&models.Comanda{},
		&models.ComandaItem{},
		&models.Venda{},
	)
}
