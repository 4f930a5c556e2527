package service

import (
	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
	"bank_ledger/pkg/metrics"
	"bank_ledger/pkg/validator"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type ClientRegistration struct {
	TaxID     string
	Name      string
	BirthDate time.Time
	Address   string
}

// OpenAccountRequest opens an account for an existing client. A nil Policy
// opens a checking account with the directory's default policy.
type OpenAccountRequest struct {
	TaxID  string
	Branch string
	Number string
	Policy *domain.DebitPolicy
}

type AccountStatement struct {
	Branch  string
	Number  string
	Type    domain.AccountType
	Balance decimal.Decimal
	Entries []domain.HistoryEntry
}

// Directory registers clients and accounts and answers lookups on them.
type Directory struct {
	clients        repository.ClientRepository
	accounts       repository.AccountRepository
	validator      *validator.RegistrationValidator
	checkingPolicy domain.DebitPolicy
	metrics        *metrics.MetricsCollector
	logger         *slog.Logger
}

func NewDirectory(
	clients repository.ClientRepository,
	accounts repository.AccountRepository,
	checkingPolicy domain.DebitPolicy,
	collector *metrics.MetricsCollector,
	logger *slog.Logger,
) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewMetricsCollector(logger)
	}

	return &Directory{
		clients:        clients,
		accounts:       accounts,
		validator:      validator.NewRegistrationValidator(),
		checkingPolicy: checkingPolicy,
		metrics:        collector,
		logger:         logger,
	}
}

func (d *Directory) RegisterClient(ctx context.Context, reg ClientRegistration) (*domain.Client, error) {
	taxID := validator.NormalizeTaxID(reg.TaxID)
	if err := d.validator.ValidateClient(taxID, reg.Name, reg.BirthDate); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	client, err := domain.NewClient(taxID, reg.Name, reg.BirthDate, reg.Address)
	if err != nil {
		return nil, err
	}

	if err := d.clients.Save(ctx, client); err != nil {
		d.logger.WarnContext(ctx, "Client registration rejected",
			slog.String("tax_id", taxID),
			slog.String("error", err.Error()))
		return nil, err
	}

	d.metrics.RecordClientRegistered()
	d.logger.InfoContext(ctx, "Client registered",
		slog.String("tax_id", taxID))
	return client, nil
}

func (d *Directory) OpenAccount(ctx context.Context, req OpenAccountRequest) (*domain.Account, error) {
	if err := d.validator.ValidateAccountKey(req.Branch, req.Number); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	client, err := d.clients.GetByTaxID(ctx, validator.NormalizeTaxID(req.TaxID))
	if err != nil {
		return nil, err
	}

	policy := d.checkingPolicy
	if req.Policy != nil {
		policy = *req.Policy
	}

	account, err := domain.NewCheckingAccount(req.Branch, req.Number, client, policy)
	if err != nil {
		return nil, err
	}

	if err := d.accounts.Save(ctx, account); err != nil {
		d.logger.WarnContext(ctx, "Account opening rejected",
			slog.String("tax_id", client.TaxID),
			slog.String("branch", req.Branch),
			slog.String("account", req.Number),
			slog.String("error", err.Error()))
		return nil, err
	}
	client.AddAccount(account)

	d.metrics.RecordAccountOpened(string(account.Type()))
	d.metrics.UpdateAccountBalance(account.Branch(), account.Number(), 0)
	d.logger.InfoContext(ctx, "Account opened",
		slog.String("tax_id", client.TaxID),
		slog.String("branch", account.Branch()),
		slog.String("account", account.Number()),
		slog.String("type", string(account.Type())))
	return account, nil
}

// OpenBasicAccount opens an account without debit restrictions.
func (d *Directory) OpenBasicAccount(ctx context.Context, taxID, branch, number string) (*domain.Account, error) {
	return d.OpenAccount(ctx, OpenAccountRequest{
		TaxID:  taxID,
		Branch: branch,
		Number: number,
		Policy: &domain.DebitPolicy{},
	})
}

func (d *Directory) FindClient(ctx context.Context, taxID string) (*domain.Client, error) {
	return d.clients.GetByTaxID(ctx, validator.NormalizeTaxID(taxID))
}

// FindAccount looks up by number alone when branch is empty.
func (d *Directory) FindAccount(ctx context.Context, branch, number string) (*domain.Account, error) {
	if branch == "" {
		return d.accounts.GetByNumber(ctx, number)
	}
	return d.accounts.GetByKey(ctx, branch, number)
}

// NextAccountNumber returns one past the highest numeric account number
// already used on branch, starting at "1".
func (d *Directory) NextAccountNumber(ctx context.Context, branch string) (string, error) {
	accounts, err := d.accounts.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list accounts: %w", err)
	}

	var highest int
	for _, account := range accounts {
		if account.Branch() != branch {
			continue
		}
		if n, err := strconv.Atoi(account.Number()); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}

func (d *Directory) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return d.accounts.List(ctx)
}

// Statement returns every account of the client in opening order.
func (d *Directory) Statement(ctx context.Context, taxID string) ([]AccountStatement, error) {
	client, err := d.FindClient(ctx, taxID)
	if err != nil {
		return nil, err
	}

	accounts, err := d.accounts.ListByClient(ctx, client.TaxID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	statements := make([]AccountStatement, 0, len(accounts))
	for _, account := range accounts {
		statements = append(statements, AccountStatement{
			Branch:  account.Branch(),
			Number:  account.Number(),
			Type:    account.Type(),
			Balance: account.Balance(),
			Entries: account.History(),
		})
	}
	return statements, nil
}

// StartNewDay resets the daily debit counter of every account.
func (d *Directory) StartNewDay(ctx context.Context) error {
	accounts, err := d.accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	for _, account := range accounts {
		account.StartNewDay()
	}

	d.metrics.RecordDayRollover()
	d.logger.InfoContext(ctx, "New day started",
		slog.Int("accounts", len(accounts)))
	return nil
}
