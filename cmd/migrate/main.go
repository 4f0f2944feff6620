package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/cli"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository/mongodb"
)

func main() {
	envFile := flag.String("env-file", "", "optional env file loaded before configuration")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	env, err := cli.Open(ctx, *envFile)
	if err != nil {
		cli.Fatal("%v", err)
	}
	defer env.Close()

	fmt.Printf("Ensuring indexes on database '%s'...\n", env.Config.Store.Database)
	if err := mongodb.EnsureIndexes(ctx, env.DB, env.Logger); err != nil {
		env.Fatal("Failed to create indexes: %v", err)
	}
	fmt.Println("✅ Indexes are up to date.")
}
