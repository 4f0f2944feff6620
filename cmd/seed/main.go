package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/cli"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/seed"
)

func main() {
	envFile := flag.String("env-file", "", "optional env file loaded before configuration")
	catalogPath := flag.String("catalog", "fixtures/catalog.yaml", "YAML catalog to insert")
	withCustomer := flag.Bool("customer", false, "also register the sample customer from the catalog")
	force := flag.Bool("force", false, "insert even when the store already has products")
	flag.Parse()

	catalog, err := seed.LoadCatalogFile(*catalogPath)
	if err != nil {
		cli.Fatal("Failed to read catalog: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	env, err := cli.Open(ctx, *envFile)
	if err != nil {
		cli.Fatal("%v", err)
	}
	defer env.Close()

	existing, err := env.Services.Products.List(ctx, domain.ProductFilter{})
	if err != nil {
		env.Fatal("Failed to list products: %v", err)
	}
	if len(existing) > 0 && !*force {
		env.Fatal("Store already has %d products; rerun with -force to insert anyway", len(existing))
	}

	for _, p := range catalog.Products {
		product, err := env.Services.Products.Create(ctx, p.CreateRequest())
		if err != nil {
			env.Fatal("Failed to create product %q: %v", p.Name, err)
		}
		fmt.Printf("  + %-28s %8.2f  %s\n", product.Name, product.Price, product.ID.Hex())
	}
	fmt.Printf("✅ Inserted %d products.\n", len(catalog.Products))

	if *withCustomer && catalog.Customer != nil {
		customer, err := env.Services.Identity.Register(ctx, catalog.Customer.RegisterRequest())
		if err != nil {
			env.Fatal("Failed to register sample customer: %v", err)
		}
		fmt.Printf("✅ Sample customer %s (%s): %s\n", customer.Name, customer.Phone, customer.ID.Hex())
	}
}
