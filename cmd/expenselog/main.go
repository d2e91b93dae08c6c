package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"expenselog/internal/amqp"
	"expenselog/internal/backend"
	"expenselog/internal/cli"
	"expenselog/internal/core"
	"expenselog/internal/ledger"
	"expenselog/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	res, err := backend.FromConfig(cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if res.Cleanup != nil {
		defer res.Cleanup()
	}

	// Eventing is optional: without a broker the tracker is fully functional.
	var opts []ledger.Option
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without eventing", log.FieldError, err)
		} else {
			defer client.Close()
			opts = append(opts, ledger.WithEventPublisher(client))
		}
	}

	ctx := context.Background()
	ldg, err := ledger.Open(ctx, res.Store, opts...)
	if err != nil {
		logger.Error("Failed to open ledger", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	logger.Info("Starting expenselog", log.FieldBackend, cfg.DataBackend, log.FieldCount, ldg.Len())

	fmt.Println("Welcome to the Daily Expense Tracker!")
	runMenu(ctx, ldg, bufio.NewScanner(os.Stdin))
}

func runMenu(ctx context.Context, ldg *ledger.Ledger, in *bufio.Scanner) {
	for {
		fmt.Println("\nMenu:")
		fmt.Println("1. Add Expense")
		fmt.Println("2. View Daily Summary")
		fmt.Println("3. View Weekly Summary")
		fmt.Println("4. View Monthly Summary")
		fmt.Println("5. Exit")
		fmt.Print("Enter your choice: ")

		line, ok := readLine(in)
		if !ok {
			return
		}
		switch line {
		case "1":
			addExpense(ctx, ldg, in)
		case "2":
			viewDailySummary(ldg, in)
		case "3":
			viewWeeklySummary(ldg, in)
		case "4":
			viewMonthlySummary(ldg, in)
		case "5":
			fmt.Println("Thank you for using the Daily Expense Tracker. Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func addExpense(ctx context.Context, ldg *ledger.Ledger, in *bufio.Scanner) {
	date, ok := promptDate(in, "Enter date (yyyy-mm-dd): ")
	if !ok {
		return
	}
	amount, ok := promptAmount(in)
	if !ok {
		return
	}
	fmt.Print("Enter category: ")
	category, ok := readLine(in)
	if !ok {
		return
	}
	fmt.Print("Enter description: ")
	description, ok := readLine(in)
	if !ok {
		return
	}

	e, err := ldg.Add(ctx, date, amount, category, description)
	if err != nil {
		fmt.Println("Error saving expense:", err)
		return
	}
	fmt.Printf("Expense added and saved successfully (id %d).\n", e.ID)
}

func viewDailySummary(ldg *ledger.Ledger, in *bufio.Scanner) {
	date, ok := promptDate(in, "Enter date (yyyy-mm-dd): ")
	if !ok {
		return
	}
	printSummary("day", ldg.Summarize(date, date))
}

func viewWeeklySummary(ldg *ledger.Ledger, in *bufio.Scanner) {
	start, ok := promptDate(in, "Enter start date (yyyy-mm-dd): ")
	if !ok {
		return
	}
	end, ok := promptDate(in, "Enter end date (yyyy-mm-dd): ")
	if !ok {
		return
	}
	printSummary("week", ldg.Summarize(start, end))
}

func viewMonthlySummary(ldg *ledger.Ledger, in *bufio.Scanner) {
	fmt.Print("Enter month (1-12): ")
	monthText, ok := readLine(in)
	if !ok {
		return
	}
	month, err := strconv.Atoi(monthText)
	if err != nil || month < 1 || month > 12 {
		fmt.Println("Invalid month. Enter a number between 1 and 12.")
		return
	}

	fmt.Print("Enter year: ")
	yearText, ok := readLine(in)
	if !ok {
		return
	}
	year, err := strconv.Atoi(yearText)
	if err != nil || year < 1 {
		fmt.Println("Invalid year.")
		return
	}

	printSummary("month", ldg.MonthlySummary(year, month))
}

func printSummary(period string, s core.Summary) {
	if s.Empty() {
		fmt.Printf("No expenses found for the %s.\n", period)
		return
	}
	for _, e := range s.Expenses {
		fmt.Printf("ID: %d, Date: %s, Amount: %s, Category: %s, Description: %s\n",
			e.ID, e.Date, e.Amount, e.Category, e.Description)
	}
	fmt.Printf("Total Expenses for the %s: %s\n", period, s.Total)
}

func promptDate(in *bufio.Scanner, prompt string) (core.Date, bool) {
	fmt.Print(prompt)
	line, ok := readLine(in)
	if !ok {
		return core.Date{}, false
	}
	date, err := core.ParseDate(line)
	if err != nil {
		fmt.Println("Invalid date. Use the yyyy-mm-dd format.")
		return core.Date{}, false
	}
	return date, true
}

func promptAmount(in *bufio.Scanner) (decimal.Decimal, bool) {
	fmt.Print("Enter amount: ")
	line, ok := readLine(in)
	if !ok {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(line)
	if err != nil {
		fmt.Println("Invalid amount. Enter a decimal number.")
		return decimal.Decimal{}, false
	}
	return amount, true
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
