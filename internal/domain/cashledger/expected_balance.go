package cashledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ExpectedBalance calcula el saldo esperado del cajón a partir del libro de
// transacciones (servicio de dominio, sin estado):
//
//	esperado = apertura + Σ(sale) + Σ(sale_cancellation) + Σ(income) − Σ(expense) − Σ(withdrawal)
//
// sale y sale_cancellation ya llevan signo en Amount, por lo que su aporte es
// la suma directa. La suma conmuta: el resultado no depende del orden de los
// asientos. El libro es la única fuente de verdad; cualquier total
// materializado debe coincidir con un recálculo fresco.
func ExpectedBalance(openingAmount decimal.Decimal, txs []*entity.CashTransaction) decimal.Decimal {
	balance := openingAmount
	for _, tx := range txs {
		switch tx.Type {
		case entity.CashTxSale, entity.CashTxCancellation, entity.CashTxIncome:
			balance = balance.Add(tx.Amount)
		case entity.CashTxExpense, entity.CashTxWithdrawal:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// Difference es el descuadre de caja: monto contado menos saldo esperado.
// Negativo = faltante, positivo = sobrante. Se registra, no bloquea el cierre.
func Difference(countedAmount, expectedBalance decimal.Decimal) decimal.Decimal {
	return countedAmount.Sub(expectedBalance)
}
