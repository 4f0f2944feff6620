package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/cli"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

func main() {
	envFile := flag.String("env-file", "", "optional env file loaded before configuration")
	phone := flag.String("phone", "", "customer phone")
	name := flag.String("name", "", "customer name fragment")
	customerID := flag.String("customer", "", "customer id; prints the recent order history")
	flag.Parse()

	if *phone == "" && *name == "" && *customerID == "" {
		fmt.Println("Usage: go run ./cmd/find-order [--phone 9000000001] [--name asha] [--customer <id>]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	env, err := cli.Open(ctx, *envFile)
	if err != nil {
		cli.Fatal("%v", err)
	}
	defer env.Close()

	if *phone != "" || *name != "" {
		fmt.Printf("🔍 Looking up phone=%q name=%q\n", *phone, *name)
		result, err := env.Services.Identity.Lookup(ctx, *phone, *name)
		switch {
		case errors.IsNotFound(err):
			fmt.Println("❌ No customer or order matches")
		case err != nil:
			env.Fatal("Lookup failed: %v", err)
		default:
			fmt.Printf("✅ Found via %s\n", result.Source)
			fmt.Printf("   Name: %s\n", deref(result.Name))
			fmt.Printf("   Phone: %s\n", deref(result.Phone))
			fmt.Printf("   Address: %s\n", deref(result.Address))
			if result.Location != nil && result.Location.MapsLink != "" {
				fmt.Printf("   Map: %s\n", result.Location.MapsLink)
			}
		}
		fmt.Println()
	}

	if *customerID != "" {
		orders, err := env.Services.Identity.RecentOrders(ctx, *customerID)
		if err != nil {
			env.Fatal("Failed to fetch orders: %v", err)
		}
		fmt.Printf("📋 %d recent orders for customer %s\n", len(orders), *customerID)
		for _, order := range orders {
			fmt.Printf("  %s  %s  %-18s %8.2f  %s\n",
				order.ID.Hex(),
				order.CreatedAt.Local().Format("2006-01-02 15:04"),
				order.Status,
				order.Total,
				order.Customer.Shape,
			)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}
