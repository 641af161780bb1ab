package cashregister

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cashledger"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// UseCase máquina de estados de la sesión de caja (open → closed) y
// conciliación del cajón contra el libro de transacciones. El libro es la
// única fuente de verdad: todo total se recalcula desde los asientos.
type UseCase struct {
	txRunner    TxRunner
	sessionRepo repository.CashSessionRepository    // lecturas fuera de transacción
	cashTxRepo  repository.CashTransactionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, sessionRepo repository.CashSessionRepository, cashTxRepo repository.CashTransactionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, sessionRepo: sessionRepo, cashTxRepo: cashTxRepo}
}

// Open abre una sesión con fondo inicial. A lo sumo una sesión abierta por
// (empresa, usuario): se verifica aquí y lo respalda el índice único parcial
// de la tabla, que convierte la carrera entre dos Open en ErrOpenSessionExists.
func (uc *UseCase) Open(ctx context.Context, companyID, userID string, in dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	if in.WarehouseID == "" || in.OpeningAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.sessionRepo.GetOpenByUser(companyID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrOpenSessionExists
	}

	session := &entity.CashRegisterSession{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		UserID:        userID,
		WarehouseID:   in.WarehouseID,
		OpeningAmount: in.OpeningAmount,
		Status:        entity.SessionStatusOpen,
		OpenedAt:      time.Now(),
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// RegisterTransaction registra un evento manual de caja (income, expense o
// withdrawal) contra una sesión abierta. La sesión se bloquea antes del
// insert: una sesión cerrada rechaza cualquier asiento nuevo.
func (uc *UseCase) RegisterTransaction(ctx context.Context, companyID, sessionID string, in dto.CashTransactionRequest) error {
	switch in.Type {
	case entity.CashTxIncome, entity.CashTxExpense, entity.CashTxWithdrawal:
	default:
		return domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		cashTxRepo repository.CashTransactionRepository,
	) error {
		session, err := sessionRepo.GetByIDForUpdate(companyID, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if !session.IsOpen() {
			return domain.ErrSessionClosed
		}
		return cashTxRepo.Create(&entity.CashTransaction{
			ID:                    uuid.New().String(),
			CompanyID:             companyID,
			CashRegisterSessionID: sessionID,
			Type:                  in.Type,
			Amount:                in.Amount,
			Reference:             in.Reference,
			CreatedAt:             time.Now(),
		})
	})
}

// Close cierra la sesión: recalcula el saldo esperado desde el libro, fija el
// monto contado y registra la diferencia (faltante/sobrante informativo, no
// bloqueante). La transición open→closed ocurre exactamente una vez.
func (uc *UseCase) Close(ctx context.Context, companyID, sessionID string, in dto.CloseSessionRequest) (*dto.CloseSessionResponse, error) {
	var resp *dto.CloseSessionResponse
	err := uc.txRunner.RunCash(ctx, func(
		sessionRepo repository.CashSessionRepository,
		cashTxRepo repository.CashTransactionRepository,
	) error {
		session, err := sessionRepo.GetByIDForUpdate(companyID, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if !session.IsOpen() {
			return domain.ErrInvalidState
		}
		txs, err := cashTxRepo.ListBySession(sessionID)
		if err != nil {
			return err
		}
		expected := cashledger.ExpectedBalance(session.OpeningAmount, txs)
		now := time.Now()
		if err := sessionRepo.Close(sessionID, in.CountedAmount, now); err != nil {
			return err
		}
		resp = &dto.CloseSessionResponse{
			SessionID:       sessionID,
			ExpectedBalance: expected,
			CountedAmount:   in.CountedAmount,
			Difference:      cashledger.Difference(in.CountedAmount, expected),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Summary recalcula los totales en vivo desde el libro de la sesión.
func (uc *UseCase) Summary(ctx context.Context, companyID, sessionID string) (*dto.SessionSummaryResponse, error) {
	session, err := uc.sessionRepo.GetByID(companyID, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.cashTxRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}

	summary := &dto.SessionSummaryResponse{
		SessionID:     session.ID,
		Status:        session.Status,
		OpeningAmount: session.OpeningAmount,
		CashSales:     decimal.Zero,
		Cancellations: decimal.Zero,
		Income:        decimal.Zero,
		Expenses:      decimal.Zero,
		Withdrawals:   decimal.Zero,
	}
	for _, tx := range txs {
		switch tx.Type {
		case entity.CashTxSale:
			summary.CashSales = summary.CashSales.Add(tx.Amount)
		case entity.CashTxCancellation:
			summary.Cancellations = summary.Cancellations.Add(tx.Amount)
		case entity.CashTxIncome:
			summary.Income = summary.Income.Add(tx.Amount)
		case entity.CashTxExpense:
			summary.Expenses = summary.Expenses.Add(tx.Amount)
		case entity.CashTxWithdrawal:
			summary.Withdrawals = summary.Withdrawals.Add(tx.Amount)
		}
	}
	summary.ExpectedBalance = cashledger.ExpectedBalance(session.OpeningAmount, txs)
	return summary, nil
}

// ListClosures lista sesiones cerradas con el esperado y la diferencia
// recalculados desde el libro (no se confía en totales materializados).
func (uc *UseCase) ListClosures(ctx context.Context, companyID, userID string, limit, offset int) (*dto.ClosureListResponse, error) {
	sessions, err := uc.sessionRepo.ListClosed(companyID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClosureResponse, 0, len(sessions))
	for _, s := range sessions {
		txs, err := uc.cashTxRepo.ListBySession(s.ID)
		if err != nil {
			return nil, err
		}
		expected := cashledger.ExpectedBalance(s.OpeningAmount, txs)
		closure := dto.ClosureResponse{
			SessionID:       s.ID,
			UserID:          s.UserID,
			OpeningAmount:   s.OpeningAmount,
			ClosingAmount:   s.ClosingAmount,
			ExpectedBalance: expected,
			Difference:      cashledger.Difference(s.ClosingAmount, expected),
			OpenedAt:        s.OpenedAt.Format(time.RFC3339),
		}
		if s.ClosedAt != nil {
			closure.ClosedAt = s.ClosedAt.Format(time.RFC3339)
		}
		items = append(items, closure)
	}
	return &dto.ClosureListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSessionResponse(s *entity.CashRegisterSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		WarehouseID:   s.WarehouseID,
		OpeningAmount: s.OpeningAmount,
		Status:        s.Status,
		OpenedAt:      s.OpenedAt.Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		resp.ClosedAt = s.ClosedAt.Format(time.RFC3339)
	}
	return resp
}
