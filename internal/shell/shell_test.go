package shell

import (
	"bank_ledger/internal/domain"
	"bank_ledger/internal/processor"
	"bank_ledger/internal/repository/memory"
	"bank_ledger/internal/service"
	"bank_ledger/pkg/metrics"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

func newTestShell(policy domain.DebitPolicy) (*Shell, *bytes.Buffer) {
	clients := memory.NewClientRepository()
	accounts := memory.NewAccountRepository()
	collector := metrics.NewMetricsCollector(nil)
	out := &bytes.Buffer{}

	s := New(
		service.NewDirectory(clients, accounts, policy, collector, nil),
		processor.NewTransactionProcessor(clients, accounts, collector, nil),
		"USD",
		out,
		nil,
	)
	return s, out
}

func mustExec(t *testing.T, s *Shell, line string) {
	t.Helper()
	if status := s.Exec(context.Background(), line); status != subcommands.ExitSuccess {
		t.Fatalf("%q: expected success, got status %d", line, status)
	}
}

func setupClientWithAccount(t *testing.T, s *Shell) {
	t.Helper()
	mustExec(t, s, `new-client -cpf 123.456.789-01 -name "Ana Souza" -birth 17-05-1990 -address "Rua A, 10 - Centro - Recife/PE"`)
	mustExec(t, s, `new-account -cpf 12345678901`)
}

func TestShell_Exec_RegistersClientAndAccount(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())

	setupClientWithAccount(t, s)

	if !strings.Contains(out.String(), "Client 12345678901 registered.") {
		t.Errorf("missing registration message in %q", out.String())
	}
	if !strings.Contains(out.String(), "Account 0001/1 opened for 12345678901.") {
		t.Errorf("missing account message in %q", out.String())
	}

	out.Reset()
	mustExec(t, s, "accounts")
	if !strings.Contains(out.String(), "Ana Souza (12345678901)") {
		t.Errorf("account listing missing owner: %q", out.String())
	}
}

func TestShell_Exec_SequentialAccountNumbers(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())
	setupClientWithAccount(t, s)

	mustExec(t, s, "new-account -cpf 12345678901")

	if !strings.Contains(out.String(), "Account 0001/2 opened") {
		t.Errorf("expected second account number 2, got %q", out.String())
	}
}

func TestShell_Exec_AutoNumberSkipsUsedNumbers(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())
	mustExec(t, s, `new-client -cpf 12345678901 -name Ana -birth 17-05-1990`)
	mustExec(t, s, "new-account -cpf 12345678901 -number 2")

	mustExec(t, s, "new-account -cpf 12345678901")
	mustExec(t, s, "new-account -cpf 12345678901")
	mustExec(t, s, "new-account -cpf 12345678901 -branch 0002")

	for _, want := range []string{"Account 0001/3 opened", "Account 0001/4 opened", "Account 0002/1 opened"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in %q", want, out.String())
		}
	}
}

func TestShell_Exec_DuplicateClient(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())
	setupClientWithAccount(t, s)
	out.Reset()

	status := s.Exec(context.Background(), `new-client -cpf 12345678901 -name Other -birth 1970-01-01`)

	if status != subcommands.ExitFailure {
		t.Fatalf("expected failure, got status %d", status)
	}
	if !strings.Contains(out.String(), "client already registered") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestShell_Exec_CreditAndDebit(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())
	setupClientWithAccount(t, s)
	out.Reset()

	mustExec(t, s, "credit -cpf 12345678901 -account 1 -amount 1000")
	mustExec(t, s, "debit -cpf 12345678901 -account 1 -branch 0001 -amount 250,50")

	if !strings.Contains(out.String(), "Applied credit of $1,000.00 to 0001/1. Balance: $1,000.00") {
		t.Errorf("unexpected credit output %q", out.String())
	}
	if !strings.Contains(out.String(), "Balance: $749.50") {
		t.Errorf("unexpected debit output %q", out.String())
	}
}

func TestShell_Exec_DebitRejections(t *testing.T) {
	s, out := newTestShell(domain.CheckingPolicy(decimal.NewFromInt(500), 2))
	setupClientWithAccount(t, s)
	mustExec(t, s, "credit -cpf 12345678901 -account 1 -amount 1000")
	out.Reset()

	if status := s.Exec(context.Background(), "debit -cpf 12345678901 -account 1 -amount 600"); status != subcommands.ExitFailure {
		t.Errorf("expected failure for amount over limit, got %d", status)
	}
	mustExec(t, s, "debit -cpf 12345678901 -account 1 -amount 300")
	mustExec(t, s, "debit -cpf 12345678901 -account 1 -amount 300")
	if status := s.Exec(context.Background(), "debit -cpf 12345678901 -account 1 -amount 100"); status != subcommands.ExitFailure {
		t.Errorf("expected failure for third debit, got %d", status)
	}

	if !strings.Contains(out.String(), "debit amount limit exceeded") {
		t.Errorf("missing limit message in %q", out.String())
	}
	if !strings.Contains(out.String(), "daily debit count limit reached") {
		t.Errorf("missing count message in %q", out.String())
	}

	mustExec(t, s, "new-day")
	mustExec(t, s, "debit -cpf 12345678901 -account 1 -amount 100")
	if !strings.Contains(out.String(), "Balance: $300.00") {
		t.Errorf("expected debit after new day, got %q", out.String())
	}
}

func TestShell_Exec_Statement(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())
	setupClientWithAccount(t, s)
	mustExec(t, s, "new-account -cpf 12345678901")
	mustExec(t, s, "credit -cpf 12345678901 -account 1 -amount 100")
	mustExec(t, s, "debit -cpf 12345678901 -account 1 -amount 40")
	out.Reset()

	mustExec(t, s, "statement -cpf 12345678901")

	got := out.String()
	if !strings.Contains(got, "STATEMENT 0001/1") || !strings.Contains(got, "STATEMENT 0001/2") {
		t.Errorf("missing account headers in %q", got)
	}
	if strings.Index(got, "credit") > strings.Index(got, "debit") {
		t.Errorf("entries out of order in %q", got)
	}
	if !strings.Contains(got, "Balance: $60.00") || !strings.Contains(got, "No transactions.") {
		t.Errorf("unexpected statement %q", got)
	}
}

func TestShell_Exec_ForeignAccount(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())
	setupClientWithAccount(t, s)
	mustExec(t, s, `new-client -cpf 98765432100 -name Bruno -birth 01-01-1980`)
	out.Reset()

	status := s.Exec(context.Background(), "credit -cpf 98765432100 -account 1 -amount 10")

	if status != subcommands.ExitFailure {
		t.Fatalf("expected failure, got status %d", status)
	}
	if !strings.Contains(out.String(), "account does not belong to client") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestShell_Exec_BadInput(t *testing.T) {
	s, _ := newTestShell(domain.DefaultCheckingPolicy())
	setupClientWithAccount(t, s)

	cases := []struct {
		line string
		want subcommands.ExitStatus
	}{
		{"transfer -amount 10", subcommands.ExitUsageError},
		{"credit -cpf 12345678901 -account 1 -amount x", subcommands.ExitFailure},
		{"credit -cpf 12345678901 -account 1 -amount 0", subcommands.ExitFailure},
		{`new-client -cpf 11111111111 -name "unclosed`, subcommands.ExitUsageError},
		{"new-client -cpf 11111111111 -name A -birth 31-02-1990", subcommands.ExitFailure},
		{"statement -cpf 00000000000", subcommands.ExitFailure},
	}

	for _, tc := range cases {
		if got := s.Exec(context.Background(), tc.line); got != tc.want {
			t.Errorf("%q: expected status %d, got %d", tc.line, tc.want, got)
		}
	}
	if got := s.Exec(context.Background(), "   "); got != subcommands.ExitSuccess {
		t.Errorf("blank line should be ignored, got %d", got)
	}
}

func TestShell_Run_StopsAtQuit(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())
	in := strings.NewReader("help\nnew-client -cpf 12345678901 -name Ana -birth 17-05-1990\nquit\nnew-day\n")

	if err := s.Run(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "Client 12345678901 registered.") {
		t.Errorf("command before quit not executed: %q", out.String())
	}
	if strings.Contains(out.String(), "Daily debit counts reset.") {
		t.Errorf("command after quit executed")
	}
}

func TestShell_Run_EndOfInput(t *testing.T) {
	s, out := newTestShell(domain.DefaultCheckingPolicy())

	if err := s.Run(context.Background(), strings.NewReader("accounts\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No accounts.") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestShell_Run_CancelWhileWaitingForInput(t *testing.T) {
	s, _ := newTestShell(domain.DefaultCheckingPolicy())
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, pr) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"1234.5": "$1,234.50",
		"0.005":  "$0.01",
		"0":      "$0.00",
	}

	for in, want := range cases {
		if got := formatMoney(decimal.RequireFromString(in), "USD"); got != want {
			t.Errorf("formatMoney(%s): expected %s, got %s", in, want, got)
		}
	}
}
