package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/keons0101/retail-dashboard-app/internal/config"
	"github.com/keons0101/retail-dashboard-app/internal/db"
	"github.com/keons0101/retail-dashboard-app/internal/importer"
	"github.com/keons0101/retail-dashboard-app/internal/repository/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to product CSV (name,description,price,stock,category,rating)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, product.NewPostgres(pool, nil))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
