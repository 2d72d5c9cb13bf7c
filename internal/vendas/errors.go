package vendas

import "errors"

var (
	ErrComandaNaoEncontrada  = errors.New("comanda não encontrada")
	ErrComandaNaoAberta      = errors.New("comanda não está aberta")
	ErrPagamentoInsuficiente = errors.New("valor pago é menor que o total da comanda")
)
