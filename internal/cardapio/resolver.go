package cardapio

import (
	"errors"
	"fmt"

	"nexus-backend/internal/models"

	"gorm.io/gorm"
)

var ErrProdutoNaoEncontrado = errors.New("produto não encontrado")

// ResolverFichaTecnica retorna os insumos consumidos por UMA unidade do
// produto, em ordem de insumo_id. Produto sem ficha técnica é válido e
// retorna lista vazia: a venda dele não consome estoque.
func ResolverFichaTecnica(db *gorm.DB, produtoID uint) ([]models.FichaTecnicaItem, error) {
	var produto models.Produto
	if err := db.First(&produto, produtoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (ID: %d)", ErrProdutoNaoEncontrado, produtoID)
		}
		return nil, err
	}

	var ficha models.FichaTecnica
	err := db.Where("produto_id = ?", produtoID).First(&ficha).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.FichaTecnicaItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var itens []models.FichaTecnicaItem
	if err := db.Where("ficha_tecnica_id = ?", ficha.ID).Order("insumo_id").Find(&itens).Error; err != nil {
		return nil, err
	}
	return itens, nil
}
