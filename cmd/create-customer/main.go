package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/cli"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

func main() {
	envFile := flag.String("env-file", "", "optional env file loaded before configuration")
	nameFlag := flag.String("name", "", "Customer name")
	phoneFlag := flag.String("phone", "", "Customer phone (unique)")
	passwordFlag := flag.String("password", "", "Login password (stored hashed)")
	addressFlag := flag.String("address", "", "Delivery address")
	flag.Parse()

	if *nameFlag == "" || *phoneFlag == "" || *passwordFlag == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/create-customer --name \"Asha\" --phone \"9000000001\" --password \"secret\" [--address \"...\"]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	env, err := cli.Open(ctx, *envFile)
	if err != nil {
		cli.Fatal("%v", err)
	}
	defer env.Close()

	customer, err := env.Services.Identity.Register(ctx, service.RegisterRequest{
		Name:     *nameFlag,
		Phone:    *phoneFlag,
		Password: *passwordFlag,
		Address:  *addressFlag,
	})
	if err != nil {
		env.Fatal("Failed to create customer: %v", err)
	}

	fmt.Println("✅ Customer created successfully!")
	fmt.Printf("   ID: %s\n", customer.ID.Hex())
	fmt.Printf("   Name: %s\n", customer.Name)
	fmt.Printf("   Phone: %s\n", customer.Phone)
}
