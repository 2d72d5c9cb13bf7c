package vendas

import (
	"errors"
	"fmt"
	"time"

	"nexus-backend/internal/cardapio"
	"nexus-backend/internal/estoque"
	"nexus-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FecharComanda valida o pagamento, agrega a demanda de insumos das fichas
// técnicas de todos os itens, dá baixa no estoque e registra a venda dentro
// de uma única transação. Qualquer falha (inclusive estoque insuficiente)
// desfaz tudo: nenhuma venda criada e nenhuma baixa parcial.
func FecharComanda(db *gorm.DB, comandaID uint, valorPago decimal.Decimal, formaPagamento string) (*models.Venda, error) {
	var venda *models.Venda

	err := db.Transaction(func(tx *gorm.DB) error {
		var comanda models.Comanda
		if err := tx.First(&comanda, comandaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w (ID: %d)", ErrComandaNaoEncontrada, comandaID)
			}
			return err
		}
		if comanda.Status != models.ComandaAberta {
			return fmt.Errorf("%w (status: %s)", ErrComandaNaoAberta, comanda.Status)
		}

		var itens []models.ComandaItem
		if err := tx.Where("comanda_id = ?", comanda.ID).Find(&itens).Error; err != nil {
			return err
		}

		// Total cobrado = soma dos itens com o preço congelado na inclusão
		total := decimal.Zero
		for _, item := range itens {
			total = total.Add(item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))))
		}

		if valorPago.LessThan(total) {
			return fmt.Errorf("%w (total: %s, pago: %s)", ErrPagamentoInsuficiente, total, valorPago)
		}

		// Demanda agregada por insumo: itens que compartilham insumo somam
		// suas quantidades antes da baixa
		demanda := map[uint]decimal.Decimal{}
		for _, item := range itens {
			fichaItens, err := cardapio.ResolverFichaTecnica(tx, item.ProdutoID)
			if err != nil {
				return err
			}
			qtd := decimal.NewFromInt(int64(item.Quantidade))
			for _, fi := range fichaItens {
				demanda[fi.InsumoID] = demanda[fi.InsumoID].Add(fi.QuantidadeNecessaria.Mul(qtd))
			}
		}

		if _, err := estoque.BaixarEstoque(tx, demanda); err != nil {
			return err
		}

		agora := time.Now()
		nova := models.Venda{
			ComandaID:      comanda.ID,
			Total:          total,
			ValorPago:      valorPago,
			Troco:          valorPago.Sub(total),
			FormaPagamento: formaPagamento,
			DataVenda:      agora,
		}
		if err := tx.Create(&nova).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":          models.ComandaPaga,
			"total":           total,
			"data_fechamento": agora,
		}
		if err := tx.Model(&comanda).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Mesa{}).
			Where("id = ?", comanda.MesaID).
			Update("status", models.MesaSuja).Error; err != nil {
			return err
		}

		venda = &nova
		return nil
	})
	if err != nil {
		return nil, err
	}
	return venda, nil
}
