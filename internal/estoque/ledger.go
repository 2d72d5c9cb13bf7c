package estoque

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"nexus-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInsumoNaoEncontrado = errors.New("insumo não encontrado")

// Falta: déficit de um insumo em uma baixa de estoque.
type Falta struct {
	InsumoID   uint            `json:"insumo_id"`
	Nome       string          `json:"nome"`
	Necessario decimal.Decimal `json:"necessario"`
	Disponivel decimal.Decimal `json:"disponivel"`
	Falta      decimal.Decimal `json:"falta"`
}

// EstoqueInsuficienteError lista TODOS os insumos em déficit, não só o
// primeiro, para o caixa saber exatamente o que falta.
type EstoqueInsuficienteError struct {
	Faltas []Falta
}

func (e *EstoqueInsuficienteError) Error() string {
	nomes := make([]string, len(e.Faltas))
	for i, f := range e.Faltas {
		nomes[i] = fmt.Sprintf("%s (falta %s)", f.Nome, f.Falta.String())
	}
	return "estoque insuficiente: " + strings.Join(nomes, ", ")
}

// QuantidadeEmEstoque lê a quantidade atual de um insumo.
func QuantidadeEmEstoque(db *gorm.DB, insumoID uint) (decimal.Decimal, error) {
	var insumo models.Insumo
	if err := db.First(&insumo, insumoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%w (ID: %d)", ErrInsumoNaoEncontrado, insumoID)
		}
		return decimal.Zero, err
	}
	return insumo.EstoqueAtual, nil
}

// BaixarEstoque dá baixa em todos os insumos da demanda dentro da transação
// recebida. Qualquer déficit cancela a operação inteira; nenhuma baixa
// parcial acontece. Retorna as quantidades após a baixa.
//
// Os UPDATEs são condicionados a `estoque_atual >= necessário` e executados
// em ordem crescente de ID, então duas baixas concorrentes sobre os mesmos
// insumos nunca levam o estoque abaixo de zero: a perdedora vê 0 linhas
// afetadas, desfaz tudo e reporta o déficit com valores recém-lidos.
func BaixarEstoque(tx *gorm.DB, demanda map[uint]decimal.Decimal) (map[uint]decimal.Decimal, error) {
	if len(demanda) == 0 {
		return map[uint]decimal.Decimal{}, nil
	}

	ids := make([]uint, 0, len(demanda))
	for id := range demanda {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	insumos, err := carregarInsumos(tx, ids)
	if err != nil {
		return nil, err
	}

	if faltas := calcularFaltas(insumos, ids, demanda); len(faltas) > 0 {
		return nil, &EstoqueInsuficienteError{Faltas: faltas}
	}

	for _, id := range ids {
		necessario := demanda[id]
		res := tx.Model(&models.Insumo{}).
			Where("id = ? AND estoque_atual >= ?", id, necessario).
			Update("estoque_atual", gorm.Expr("estoque_atual - ?", necessario))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Outra baixa consumiu esse insumo entre a leitura e o UPDATE.
			var atual models.Insumo
			if err := tx.First(&atual, id).Error; err != nil {
				return nil, err
			}
			return nil, &EstoqueInsuficienteError{Faltas: []Falta{{
				InsumoID:   id,
				Nome:       atual.Nome,
				Necessario: necessario,
				Disponivel: atual.EstoqueAtual,
				Falta:      necessario.Sub(atual.EstoqueAtual),
			}}}
		}
	}

	pos, err := carregarInsumos(tx, ids)
	if err != nil {
		return nil, err
	}
	resultado := make(map[uint]decimal.Decimal, len(ids))
	for id, insumo := range pos {
		resultado[id] = insumo.EstoqueAtual
	}
	return resultado, nil
}

func carregarInsumos(tx *gorm.DB, ids []uint) (map[uint]models.Insumo, error) {
	var insumos []models.Insumo
	if err := tx.Where("id IN ?", ids).Find(&insumos).Error; err != nil {
		return nil, err
	}

	porID := make(map[uint]models.Insumo, len(insumos))
	for _, insumo := range insumos {
		porID[insumo.ID] = insumo
	}
	for _, id := range ids {
		if _, ok := porID[id]; !ok {
			return nil, fmt.Errorf("%w (ID: %d)", ErrInsumoNaoEncontrado, id)
		}
	}
	return porID, nil
}

func calcularFaltas(insumos map[uint]models.Insumo, ids []uint, demanda map[uint]decimal.Decimal) []Falta {
	var faltas []Falta
	for _, id := range ids {
		insumo := insumos[id]
		necessario := demanda[id]
		if insumo.EstoqueAtual.LessThan(necessario) {
			faltas = append(faltas, Falta{
				InsumoID:   id,
				Nome:       insumo.Nome,
				Necessario: necessario,
				Disponivel: insumo.EstoqueAtual,
				Falta:      necessario.Sub(insumo.EstoqueAtual),
			})
		}
	}
	return faltas
}
