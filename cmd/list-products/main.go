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
	search := flag.String("search", "", "case-insensitive name/category/description filter")
	category := flag.String("category", "", "exact category")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	env, err := cli.Open(ctx, *envFile)
	if err != nil {
		cli.Fatal("%v", err)
	}
	defer env.Close()

	products, err := env.Services.Products.List(ctx, domain.ProductFilter{Search: *search, Category: *category})
	if err != nil {
		env.Fatal("Failed to list products: %v", err)
	}

	fmt.Printf("📦 %d products\n\n", len(products))
	for _, p := range products {
		state := "available"
		if !p.Available {
			state = "hidden"
		}
		fmt.Printf("%s  %-28s %-12s %8.2f  stock=%-4d %s\n", p.ID.Hex(), p.Name, p.Category, p.Price, p.Stock, state)
	}
}
