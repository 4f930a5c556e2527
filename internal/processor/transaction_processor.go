package processor

import (
	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
	"bank_ledger/pkg/metrics"
	"bank_ledger/pkg/validator"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest names the client by tax id and the account by number.
// An empty Branch matches the first account opened with that number.
type TransactionRequest struct {
	TaxID         string
	Branch        string
	AccountNumber string
	Kind          domain.TransactionKind
	Amount        decimal.Decimal
}

type TransactionProcessor struct {
	clientRepo  repository.ClientRepository
	accountRepo repository.AccountRepository
	metrics     *metrics.MetricsCollector
	mu          sync.Mutex
	logger      *slog.Logger
}

func NewTransactionProcessor(
	clientRepo repository.ClientRepository,
	accountRepo repository.AccountRepository,
	collector *metrics.MetricsCollector,
	logger *slog.Logger,
) *TransactionProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewMetricsCollector(logger)
	}

	return &TransactionProcessor{
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		metrics:     collector,
		logger:      logger,
	}
}

// ProcessTransaction applies a fresh transaction through the owning client
// and returns the account it was applied to.
func (p *TransactionProcessor) ProcessTransaction(ctx context.Context, req TransactionRequest) (*domain.Account, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("unknown transaction kind: %s", req.Kind)
	}

	startTime := time.Now()
	account, err := p.executeTransaction(ctx, req)
	reason := reasonCode(err)

	p.metrics.RecordTransaction(string(req.Kind), reason, time.Since(startTime))

	if err != nil {
		p.logger.WarnContext(ctx, "Transaction rejected",
			slog.String("tax_id", req.TaxID),
			slog.String("branch", req.Branch),
			slog.String("account", req.AccountNumber),
			slog.String("kind", string(req.Kind)),
			slog.String("amount", req.Amount.String()),
			slog.String("reason", reason),
			slog.String("error", err.Error()))
		return nil, err
	}

	p.metrics.UpdateAccountBalance(account.Branch(), account.Number(), account.Balance().InexactFloat64())
	p.logger.InfoContext(ctx, "Transaction applied",
		slog.String("tax_id", req.TaxID),
		slog.String("branch", account.Branch()),
		slog.String("account", account.Number()),
		slog.String("kind", string(req.Kind)),
		slog.String("amount", req.Amount.String()),
		slog.String("balance", account.Balance().String()))
	return account, nil
}

func (p *TransactionProcessor) Credit(ctx context.Context, taxID, branch, number string, amount decimal.Decimal) (*domain.Account, error) {
	return p.ProcessTransaction(ctx, TransactionRequest{
		TaxID:         taxID,
		Branch:        branch,
		AccountNumber: number,
		Kind:          domain.KindCredit,
		Amount:        amount,
	})
}

func (p *TransactionProcessor) Debit(ctx context.Context, taxID, branch, number string, amount decimal.Decimal) (*domain.Account, error) {
	return p.ProcessTransaction(ctx, TransactionRequest{
		TaxID:         taxID,
		Branch:        branch,
		AccountNumber: number,
		Kind:          domain.KindDebit,
		Amount:        amount,
	})
}

func (p *TransactionProcessor) executeTransaction(ctx context.Context, req TransactionRequest) (*domain.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	client, err := p.clientRepo.GetByTaxID(ctx, validator.NormalizeTaxID(req.TaxID))
	if err != nil {
		return nil, err
	}

	account, err := p.findAccount(ctx, client, req.Branch, req.AccountNumber)
	if err != nil {
		return nil, err
	}

	if err := client.ApplyTransaction(account, domain.NewTransaction(req.Kind, req.Amount)); err != nil {
		return nil, err
	}
	return account, nil
}

// findAccount prefers the client's own accounts when no branch is given, so
// a number shared across branches resolves to the caller's account.
func (p *TransactionProcessor) findAccount(ctx context.Context, client *domain.Client, branch, number string) (*domain.Account, error) {
	if branch == "" {
		for _, account := range client.Accounts() {
			if account.Number() == number {
				return account, nil
			}
		}
		return p.accountRepo.GetByNumber(ctx, number)
	}
	return p.accountRepo.GetByKey(ctx, branch, number)
}

func reasonCode(err error) string {
	switch {
	case errors.Is(err, repository.ErrClientNotFound):
		return "client_not_found"
	case errors.Is(err, repository.ErrAccountNotFound):
		return "account_not_found"
	default:
		return domain.ReasonCode(err)
	}
}
