package estoque

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir banco de teste: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrar banco de teste: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func criarInsumo(t *testing.T, db *gorm.DB, nome, estoque string) models.Insumo {
	t.Helper()
	insumo := models.Insumo{Nome: nome, UnidadeMedida: "kg", EstoqueAtual: dec(estoque)}
	if err := db.Create(&insumo).Error; err != nil {
		t.Fatalf("criar insumo %s: %v", nome, err)
	}
	return insumo
}

func TestQuantidadeEmEstoque(t *testing.T) {
	db := newTestDB(t)
	farinha := criarInsumo(t, db, "Farinha", "12.5")

	got, err := QuantidadeEmEstoque(db, farinha.ID)
	if err != nil {
		t.Fatalf("QuantidadeEmEstoque: %v", err)
	}
	if !got.Equal(dec("12.5")) {
		t.Errorf("quantidade = %s, esperado 12.5", got)
	}

	if _, err := QuantidadeEmEstoque(db, 999); !errors.Is(err, ErrInsumoNaoEncontrado) {
		t.Errorf("esperado ErrInsumoNaoEncontrado, veio %v", err)
	}
}

func TestBaixarEstoqueAtualizaTodasAsLinhas(t *testing.T) {
	db := newTestDB(t)
	farinha := criarInsumo(t, db, "Farinha", "10")
	acucar := criarInsumo(t, db, "Açúcar", "5")

	var pos map[uint]decimal.Decimal
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		pos, err = BaixarEstoque(tx, map[uint]decimal.Decimal{
			farinha.ID: dec("2.5"),
			acucar.ID:  dec("1"),
		})
		return err
	})
	if err != nil {
		t.Fatalf("BaixarEstoque: %v", err)
	}

	if !pos[farinha.ID].Equal(dec("7.5")) {
		t.Errorf("farinha pós-baixa = %s, esperado 7.5", pos[farinha.ID])
	}
	if !pos[acucar.ID].Equal(dec("4")) {
		t.Errorf("açúcar pós-baixa = %s, esperado 4", pos[acucar.ID])
	}

	var persistida models.Insumo
	db.First(&persistida, farinha.ID)
	if !persistida.EstoqueAtual.Equal(dec("7.5")) {
		t.Errorf("farinha persistida = %s, esperado 7.5", persistida.EstoqueAtual)
	}
}

func TestBaixarEstoqueDemandaVazia(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		pos, err := BaixarEstoque(tx, nil)
		if err != nil {
			return err
		}
		if len(pos) != 0 {
			t.Errorf("demanda vazia devolveu %d linhas", len(pos))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("BaixarEstoque com demanda vazia: %v", err)
	}
}

func TestBaixarEstoqueListaTodosOsDeficits(t *testing.T) {
	db := newTestDB(t)
	farinha := criarInsumo(t, db, "Farinha", "1")
	acucar := criarInsumo(t, db, "Açúcar", "0.2")
	sal := criarInsumo(t, db, "Sal", "3")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := BaixarEstoque(tx, map[uint]decimal.Decimal{
			farinha.ID: dec("2"),
			acucar.ID:  dec("0.5"),
			sal.ID:     dec("1"),
		})
		return err
	})

	var faltaEstoque *EstoqueInsuficienteError
	if !errors.As(err, &faltaEstoque) {
		t.Fatalf("esperado EstoqueInsuficienteError, veio %v", err)
	}
	if len(faltaEstoque.Faltas) != 2 {
		t.Fatalf("faltas = %d, esperado 2", len(faltaEstoque.Faltas))
	}

	// Ordem crescente de ID
	if faltaEstoque.Faltas[0].InsumoID != farinha.ID {
		t.Errorf("primeira falta = insumo %d, esperado farinha", faltaEstoque.Faltas[0].InsumoID)
	}
	if !faltaEstoque.Faltas[0].Falta.Equal(dec("1")) {
		t.Errorf("déficit de farinha = %s, esperado 1", faltaEstoque.Faltas[0].Falta)
	}
	if !faltaEstoque.Faltas[1].Falta.Equal(dec("0.3")) {
		t.Errorf("déficit de açúcar = %s, esperado 0.3", faltaEstoque.Faltas[1].Falta)
	}

	// Nenhuma baixa parcial: o sal tinha saldo e mesmo assim ficou intacto
	var intacto models.Insumo
	db.First(&intacto, sal.ID)
	if !intacto.EstoqueAtual.Equal(dec("3")) {
		t.Errorf("sal = %s após falha, esperado 3", intacto.EstoqueAtual)
	}
}

func TestBaixarEstoqueInsumoDesconhecido(t *testing.T) {
	db := newTestDB(t)
	farinha := criarInsumo(t, db, "Farinha", "10")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := BaixarEstoque(tx, map[uint]decimal.Decimal{
			farinha.ID: dec("1"),
			999:        dec("1"),
		})
		return err
	})
	if !errors.Is(err, ErrInsumoNaoEncontrado) {
		t.Fatalf("esperado ErrInsumoNaoEncontrado, veio %v", err)
	}

	var intacta models.Insumo
	db.First(&intacta, farinha.ID)
	if !intacta.EstoqueAtual.Equal(dec("10")) {
		t.Errorf("farinha = %s após falha, esperado 10", intacta.EstoqueAtual)
	}
}

func TestBaixarEstoqueZeraSaldoExato(t *testing.T) {
	db := newTestDB(t)
	fatia := criarInsumo(t, db, "Fatia de torta", "2")

	err := db.Transaction(func(tx *gorm.DB) error {
		pos, err := BaixarEstoque(tx, map[uint]decimal.Decimal{fatia.ID: dec("2")})
		if err != nil {
			return err
		}
		if !pos[fatia.ID].Equal(decimal.Zero) {
			t.Errorf("saldo pós-baixa = %s, esperado 0", pos[fatia.ID])
		}
		return nil
	})
	if err != nil {
		t.Fatalf("baixa com saldo exato deveria passar: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := BaixarEstoque(tx, map[uint]decimal.Decimal{fatia.ID: dec("1")})
		return err
	})
	var faltaEstoque *EstoqueInsuficienteError
	if !errors.As(err, &faltaEstoque) {
		t.Fatalf("baixa com saldo zerado deveria falhar, veio %v", err)
	}
}
