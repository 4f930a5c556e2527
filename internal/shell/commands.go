package shell

import (
	"bank_ledger/internal/domain"
	"bank_ledger/internal/service"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

var birthDateLayouts = []string{"02-01-2006", "2006-01-02"}

func parseBirthDate(s string) (time.Time, error) {
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid birth date %q: want DD-MM-YYYY", s)
}

// parseAmount accepts a decimal comma as well as a decimal point.
func parseAmount(s string) (decimal.Decimal, error) {
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

type newClientCmd struct {
	taxID     string
	name      string
	birthDate string
	address   string
}

func (*newClientCmd) Name() string     { return "new-client" }
func (*newClientCmd) Synopsis() string { return "register a new client" }
func (*newClientCmd) Usage() string {
	return `new-client -cpf <tax id> -name <name> -birth <DD-MM-YYYY> [-address <address>]

  Registers a client. A tax id can be registered only once.
`
}

func (c *newClientCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.taxID, "cpf", "", "Tax id, 11 digits, punctuation allowed.")
	f.StringVar(&c.name, "name", "", "Full name.")
	f.StringVar(&c.birthDate, "birth", "", "Birth date as DD-MM-YYYY or YYYY-MM-DD.")
	f.StringVar(&c.address, "address", "", "Street, number - district - city/state.")
}

func (c *newClientCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := args[0].(*Shell)

	birthDate, err := parseBirthDate(c.birthDate)
	if err != nil {
		return s.fail(err)
	}

	client, err := s.directory.RegisterClient(ctx, service.ClientRegistration{
		TaxID:     c.taxID,
		Name:      c.name,
		BirthDate: birthDate,
		Address:   c.address,
	})
	if err != nil {
		return s.fail(err)
	}

	fmt.Fprintf(s.out, "Client %s registered.\n", client.TaxID)
	return subcommands.ExitSuccess
}

type newAccountCmd struct {
	taxID  string
	branch string
	number string
}

func (*newAccountCmd) Name() string     { return "new-account" }
func (*newAccountCmd) Synopsis() string { return "open a checking account for a client" }
func (*newAccountCmd) Usage() string {
	return `new-account -cpf <tax id> [-branch <branch>] [-number <number>]

  Opens a checking account. Without -number the branch's highest account
  number plus one is used.
`
}

func (c *newAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.taxID, "cpf", "", "Tax id of the owning client.")
	f.StringVar(&c.branch, "branch", "0001", "Branch code.")
	f.StringVar(&c.number, "number", "", "Account number.")
}

func (c *newAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := args[0].(*Shell)

	number := c.number
	if number == "" {
		next, err := s.directory.NextAccountNumber(ctx, c.branch)
		if err != nil {
			return s.fail(err)
		}
		number = next
	}

	account, err := s.directory.OpenAccount(ctx, service.OpenAccountRequest{
		TaxID:  c.taxID,
		Branch: c.branch,
		Number: number,
	})
	if err != nil {
		return s.fail(err)
	}

	fmt.Fprintf(s.out, "Account %s opened for %s.\n", account.Key(), account.Owner().TaxID)
	return subcommands.ExitSuccess
}

type listAccountsCmd struct{}

func (*listAccountsCmd) Name() string             { return "accounts" }
func (*listAccountsCmd) Synopsis() string         { return "list every account in opening order" }
func (*listAccountsCmd) Usage() string            { return "accounts\n" }
func (*listAccountsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *listAccountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := args[0].(*Shell)

	accounts, err := s.directory.ListAccounts(ctx)
	if err != nil {
		return s.fail(err)
	}
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No accounts.")
		return subcommands.ExitSuccess
	}

	for _, account := range accounts {
		fmt.Fprintln(s.out, strings.Repeat("=", 40))
		fmt.Fprintf(s.out, "Branch:\t%s\nAccount:\t%s\nType:\t%s\nOwner:\t%s (%s)\n",
			account.Branch(), account.Number(), account.Type(), account.Owner().Name, account.Owner().TaxID)
	}
	return subcommands.ExitSuccess
}

// transactionCmd serves both credit and debit.
type transactionCmd struct {
	kind    domain.TransactionKind
	taxID   string
	branch  string
	account string
	amount  string
}

func (c *transactionCmd) Name() string { return string(c.kind) }
func (c *transactionCmd) Synopsis() string {
	if c.kind == domain.KindDebit {
		return "withdraw an amount from an account"
	}
	return "deposit an amount into an account"
}
func (c *transactionCmd) Usage() string {
	return string(c.kind) + ` -cpf <tax id> -account <number> [-branch <branch>] -amount <amount>

  The account must belong to the client. Without -branch the first account
  opened with that number is used.
`
}

func (c *transactionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.taxID, "cpf", "", "Tax id of the account owner.")
	f.StringVar(&c.account, "account", "", "Account number.")
	f.StringVar(&c.branch, "branch", "", "Branch code.")
	f.StringVar(&c.amount, "amount", "", "Amount, e.g. 150.75 or 150,75.")
}

func (c *transactionCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := args[0].(*Shell)

	amount, err := parseAmount(c.amount)
	if err != nil {
		return s.fail(err)
	}

	var account *domain.Account
	if c.kind == domain.KindDebit {
		account, err = s.processor.Debit(ctx, c.taxID, c.branch, c.account, amount)
	} else {
		account, err = s.processor.Credit(ctx, c.taxID, c.branch, c.account, amount)
	}
	if err != nil {
		return s.fail(err)
	}

	fmt.Fprintf(s.out, "Applied %s of %s to %s. Balance: %s\n",
		c.kind, formatMoney(amount, s.currency), account.Key(), formatMoney(account.Balance(), s.currency))
	return subcommands.ExitSuccess
}

type statementCmd struct {
	taxID string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "show entries and balance of a client's accounts" }
func (*statementCmd) Usage() string {
	return `statement -cpf <tax id>
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.taxID, "cpf", "", "Tax id of the client.")
}

func (c *statementCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := args[0].(*Shell)

	statements, err := s.directory.Statement(ctx, c.taxID)
	if err != nil {
		return s.fail(err)
	}
	if len(statements) == 0 {
		return s.fail(errors.New("client has no accounts"))
	}

	for _, st := range statements {
		fmt.Fprintf(s.out, "%s STATEMENT %s/%s %s\n", strings.Repeat("=", 10), st.Branch, st.Number, strings.Repeat("=", 10))
		if len(st.Entries) == 0 {
			fmt.Fprintln(s.out, "No transactions.")
		}
		for _, e := range st.Entries {
			fmt.Fprintf(s.out, "%-8s %14s  %s\n", e.Kind, formatMoney(e.Amount, s.currency), e.Timestamp.Format(timestampLayout))
		}
		fmt.Fprintf(s.out, "Balance: %s\n", formatMoney(st.Balance, s.currency))
	}
	return subcommands.ExitSuccess
}

type newDayCmd struct{}

func (*newDayCmd) Name() string             { return "new-day" }
func (*newDayCmd) Synopsis() string         { return "reset the daily debit count of every account" }
func (*newDayCmd) Usage() string            { return "new-day\n" }
func (*newDayCmd) SetFlags(_ *flag.FlagSet) {}

func (c *newDayCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := args[0].(*Shell)

	if err := s.directory.StartNewDay(ctx); err != nil {
		return s.fail(err)
	}

	fmt.Fprintln(s.out, "Daily debit counts reset.")
	return subcommands.ExitSuccess
}

type quitCmd struct{}

func (*quitCmd) Name() string             { return "quit" }
func (*quitCmd) Synopsis() string         { return "leave the shell" }
func (*quitCmd) Usage() string            { return "quit\n" }
func (*quitCmd) SetFlags(_ *flag.FlagSet) {}

func (*quitCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	args[0].(*Shell).quit = true
	return subcommands.ExitSuccess
}
