package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/bianca-ap01/coin-swap/infra/initializer"
	"github.com/bianca-ap01/coin-swap/pkg/app"
	"github.com/bianca-ap01/coin-swap/pkg/config"
	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/bianca-ap01/coin-swap/pkg/service/wallet"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  register <username> [password]
  balance <username>
  deposit <username> <amount> <currency>
  withdraw <username> <amount> <currency>
  transfer <username> <receiver> <amount> <currency>
  convert <username> <from_currency> <to_currency> <amount>
  history <username>
  rates [from_currency] [to_currency]
  select <adapter>`

var errUsage = errors.New("invalid usage")

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fmt.Println("Failed to initialize dependencies:", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)
	defer a.Close() //nolint:errcheck

	if err := execute(context.Background(), a, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Println(usage)
		} else {
			fmt.Println("Error:", err)
		}
		os.Exit(1)
	}
}

// execute runs one CLI command against a and writes its result to out.
func execute(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "register":
		if len(args) < 1 {
			return errUsage
		}
		password := ""
		if len(args) > 1 {
			password = args[1]
		}
		acc, err := a.AuthService.Register(ctx, args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Account created: %s (PEN %s, USD %s)\n",
			acc.Username, acc.BalancePEN.StringFixed(), acc.BalanceUSD.StringFixed())
	case "balance":
		if len(args) < 1 {
			return errUsage
		}
		bal, err := a.WalletService.Balance(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s balance: PEN %.2f, USD %.2f\n", bal.Username, bal.BalancePEN, bal.BalanceUSD)
	case "deposit", "withdraw":
		if len(args) < 3 {
			return errUsage
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		msg, err := a.WalletService.ChangeBalance(ctx, args[0], wallet.BalanceChangeCommand{
			Amount:    amount,
			Currency:  args[2],
			Operation: cmd,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
	case "transfer":
		if len(args) < 4 {
			return errUsage
		}
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		msg, err := a.WalletService.Transfer(ctx, args[0], wallet.TransferCommand{
			Receiver: args[1],
			Amount:   amount,
			Currency: args[3],
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
	case "convert":
		if len(args) < 4 {
			return errUsage
		}
		amount, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		msg, err := a.WalletService.Convert(ctx, args[0], wallet.ConvertCommand{
			FromCurrency: args[1],
			ToCurrency:   args[2],
			Amount:       amount,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
	case "history":
		if len(args) < 1 {
			return errUsage
		}
		records, err := a.WalletService.History(ctx, args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(out, "No transactions")
		}
		for _, r := range records {
			fmt.Fprintf(out, "%s  %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.Description)
		}
	case "rates":
		from, to := currency.USD, currency.PEN
		var err error
		if len(args) > 0 {
			if from, err = currency.Parse(args[0]); err != nil {
				return domain.ErrInvalidCurrency
			}
		}
		if len(args) > 1 {
			if to, err = currency.Parse(args[1]); err != nil {
				return domain.ErrInvalidCurrency
			}
		}
		rates := a.Deps.Rates.ListAllRates(ctx, from, to)
		active, _ := a.Deps.Rates.Active(ctx)
		for _, k := range slices.Sorted(maps.Keys(rates)) {
			marker := " "
			if k == active {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s: %v\n", marker, k, rates[k].Value())
		}
	case "select":
		if len(args) < 1 {
			return errUsage
		}
		if err := a.Deps.Rates.Select(ctx, args[0]); err != nil {
			return err
		}
		_, name := a.Deps.Rates.Active(ctx)
		fmt.Fprintln(out, "Adapter switched to", name)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	return nil
}
