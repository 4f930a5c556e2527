package shell

import (
	"bank_ledger/internal/domain"
	"bank_ledger/internal/processor"
	"bank_ledger/internal/service"
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/shlex"
	"github.com/google/subcommands"
)

const prompt = "bank> "

// Shell reads one command per line and runs it against the directory and
// the transaction processor. It never touches accounts directly.
type Shell struct {
	directory *service.Directory
	processor *processor.TransactionProcessor
	currency  string
	out       io.Writer
	quit      bool
	logger    *slog.Logger
}

func New(
	directory *service.Directory,
	processor *processor.TransactionProcessor,
	currency string,
	out io.Writer,
	logger *slog.Logger,
) *Shell {
	if logger == nil {
		logger = slog.Default()
	}

	return &Shell{
		directory: directory,
		processor: processor,
		currency:  currency,
		out:       out,
		logger:    logger,
	}
}

// Run executes lines from in until quit, end of input or context
// cancellation. Cancellation is noticed while waiting for input.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, `Type "help" for the list of commands.`)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-scanErr
			}

			s.Exec(ctx, line)
			if s.quit {
				return nil
			}
		}
	}
}

// Exec runs a single command line. Blank lines are ignored.
func (s *Shell) Exec(ctx context.Context, line string) subcommands.ExitStatus {
	args, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if len(args) == 0 {
		return subcommands.ExitSuccess
	}

	fs := flag.NewFlagSet("bank", flag.ContinueOnError)
	fs.SetOutput(s.out)
	commander := subcommands.NewCommander(fs, "bank")
	commander.Output = s.out
	commander.Error = s.out
	s.register(commander)

	if err := fs.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}

	status := commander.Execute(ctx, s)
	s.logger.DebugContext(ctx, "Command executed",
		slog.String("command", args[0]),
		slog.Int("status", int(status)))
	return status
}

func (s *Shell) register(commander *subcommands.Commander) {
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&newClientCmd{}, "clients")
	commander.Register(&newAccountCmd{}, "accounts")
	commander.Register(&listAccountsCmd{}, "accounts")
	commander.Register(&transactionCmd{kind: domain.KindCredit}, "transactions")
	commander.Register(&transactionCmd{kind: domain.KindDebit}, "transactions")
	commander.Register(&statementCmd{}, "transactions")
	commander.Register(&newDayCmd{}, "transactions")
	commander.Register(&quitCmd{}, "")
}

func (s *Shell) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(s.out, "error: %v\n", err)
	return subcommands.ExitFailure
}
