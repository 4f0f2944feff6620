package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/cli"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

func main() {
	envFile := flag.String("env-file", "", "optional env file loaded before configuration")
	limit := flag.Int("limit", 20, "number of orders to print, newest first (0 for all)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	env, err := cli.Open(ctx, *envFile)
	if err != nil {
		cli.Fatal("%v", err)
	}
	defer env.Close()

	orders, err := env.Services.Orders.List(ctx)
	if err != nil {
		env.Fatal("Failed to list orders: %v", err)
	}

	fmt.Printf("📋 %d orders in database\n\n", len(orders))
	for i, order := range orders {
		if *limit > 0 && i >= *limit {
			break
		}
		printOrder(i+1, order)
	}
}

func printOrder(n int, order *domain.ExpandedOrder) {
	fmt.Printf("Order #%d:\n", n)
	fmt.Printf("  ID: %s\n", order.ID.Hex())
	fmt.Printf("  Placed: %s\n", order.CreatedAt.Local().Format(time.RFC1123))
	fmt.Printf("  Status: %s\n", order.Status)
	fmt.Printf("  Customer: %s", order.CustomerName)
	if order.Customer.IsResolved() {
		fmt.Printf(" (%s)", order.Customer.ID.Hex())
	}
	fmt.Println()
	if order.Phone != "" {
		fmt.Printf("  Phone: %s\n", order.Phone)
	}
	fmt.Printf("  Total: %.2f (%s)\n", order.Total, order.PaymentMethod.Label())
	for _, line := range order.Products {
		name := "Unknown Product"
		if line.Product != nil {
			name = line.Product.Name
		}
		fmt.Printf("    - %s x %d\n", name, line.Quantity)
	}
	fmt.Println()
}
