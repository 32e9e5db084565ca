// Command storefront is the terminal client for the retail backend: browse
// the catalog, manage a cart that persists between runs, check out, leave
// reviews and render the sales dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/keons0101/retail-dashboard-app/internal/cart"
	"github.com/keons0101/retail-dashboard-app/internal/catalog"
	"github.com/keons0101/retail-dashboard-app/internal/checkout"
	"github.com/keons0101/retail-dashboard-app/internal/config"
	"github.com/keons0101/retail-dashboard-app/internal/dashboard"
	"github.com/keons0101/retail-dashboard-app/internal/reviews"
	"github.com/keons0101/retail-dashboard-app/internal/storage"
)

const usage = `Usage: storefront <command> [flags]

Commands:
  products                      list the catalog
  cart                          show the cart
  cart add -id N [-qty N]       add units of a product
  cart remove -id N [-all]      remove one unit, or the whole line with -all
  cart clear                    empty the cart
  checkout [-name S] [-email S] submit the cart as a purchase
  review -id N -user S -rating N -comment S
                                leave a product review
  dashboard                     show sales and inventory charts
`

// consoleNotifier prints cart notifications the way the web storefront would
// toast them.
type consoleNotifier struct{}

func (consoleNotifier) Notify(message string) {
	fmt.Printf("* %s\n", message)
}

type app struct {
	cfg        config.Config
	logger     *log.Logger
	httpClient *http.Client
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.FromEnv()
	a := &app{
		cfg:        cfg,
		logger:     log.New(os.Stderr, "[storefront] ", log.LstdFlags|log.LUTC),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "products":
		err = a.runProducts(ctx)
	case "cart":
		err = a.runCart(ctx, os.Args[2:])
	case "checkout":
		err = a.runCheckout(ctx, os.Args[2:])
	case "review":
		err = a.runReview(ctx, os.Args[2:])
	case "dashboard":
		err = a.runDashboard(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) fetchCatalog(ctx context.Context) (*catalog.Snapshot, error) {
	client := catalog.NewClient(a.cfg.APIBaseURL, a.httpClient, a.logger)
	products, err := client.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewSnapshot(products), nil
}

// loadCart builds the cart store against the given catalog and hydrates it
// from the persisted slot.
func (a *app) loadCart(snap *catalog.Snapshot) *cart.Store {
	slot := storage.NewFileSlot(a.cfg.CartFile)
	store := cart.New(snap, slot, consoleNotifier{}, a.logger)
	store.Hydrate()
	return store
}

func (a *app) runProducts(ctx context.Context) error {
	snap, err := a.fetchCatalog(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\tRATING")
	for _, p := range snap.Products() {
		fmt.Fprintf(w, "%d\t%s\t$%.2f\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Price, stockBadge(p.Stock), p.Category, p.Rating)
	}
	return w.Flush()
}

func stockBadge(stock int) string {
	switch {
	case stock == 0:
		return "Out of Stock"
	case stock < 5:
		return fmt.Sprintf("Only %d left", stock)
	case stock <= 10:
		return fmt.Sprintf("%d in stock", stock)
	default:
		return "In Stock"
	}
}

func (a *app) runCart(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "show":
		snap, err := a.fetchCatalog(ctx)
		if err != nil {
			return err
		}
		return a.printCart(a.loadCart(snap))

	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		id := fs.Int64("id", 0, "product id")
		qty := fs.Int("qty", 1, "quantity to add")
		fs.Parse(args)
		if *id == 0 {
			return fmt.Errorf("-id is required")
		}

		snap, err := a.fetchCatalog(ctx)
		if err != nil {
			return err
		}
		store := a.loadCart(snap)
		if err := store.AddItem(*id, *qty); err != nil {
			return err
		}
		return a.printCart(store)

	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
		id := fs.Int64("id", 0, "product id")
		all := fs.Bool("all", false, "remove the whole line")
		fs.Parse(args)
		if *id == 0 {
			return fmt.Errorf("-id is required")
		}

		snap, err := a.fetchCatalog(ctx)
		if err != nil {
			return err
		}
		store := a.loadCart(snap)
		if err := store.RemoveItem(*id, *all); err != nil {
			return err
		}
		return a.printCart(store)

	case "clear":
		snap, err := a.fetchCatalog(ctx)
		if err != nil {
			return err
		}
		store := a.loadCart(snap)
		store.Clear()
		return nil

	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func (a *app) printCart(store *cart.Store) error {
	items := store.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tLINE TOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t$%.2f\t%d\t$%.2f\n", item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.LineTotal)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totals := store.Totals()
	fmt.Printf("\nSubtotal: $%.2f\nTax (10%%): $%.2f\nTotal: $%.2f\n", totals.Subtotal, totals.Tax, totals.Total)
	return nil
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	name := fs.String("name", "", "customer name (defaults to guest)")
	email := fs.String("email", "", "customer email")
	fs.Parse(args)

	snap, err := a.fetchCatalog(ctx)
	if err != nil {
		return err
	}
	store := a.loadCart(snap)

	client := checkout.NewClient(a.cfg.APIBaseURL, a.httpClient, a.logger)
	order, err := client.Submit(ctx, store.Items(), store.Total(), checkout.CustomerInfo{
		Name:  *name,
		Email: *email,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Order %s confirmed for %s\n", order.OrderID, order.Customer.Name)
	for _, item := range order.Items {
		fmt.Printf("  %d x %s  $%.2f\n", item.Quantity, item.Name, item.Subtotal)
	}
	fmt.Printf("Total: $%.2f\n", order.Total)

	// The receipt is shown first, then the cart is emptied.
	store.Clear()
	return nil
}

func (a *app) runReview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	id := fs.Int64("id", 0, "product id")
	user := fs.String("user", "", "your name")
	rating := fs.Int("rating", 0, "rating from 1 to 5")
	comment := fs.String("comment", "", "review text")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	client := reviews.NewClient(a.cfg.APIBaseURL, a.httpClient, a.logger)
	result, err := client.Submit(ctx, *id, reviews.Input{
		User:    *user,
		Rating:  *rating,
		Comment: *comment,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Thanks for your review! %q is now rated %.1f\n", *user, result.NewAverageRating)
	return nil
}

func (a *app) runDashboard(ctx context.Context) error {
	snap, err := a.fetchCatalog(ctx)
	if err != nil {
		return err
	}
	products := snap.Products()

	summary := dashboard.Summarize(products)
	fmt.Printf("Products: %d   Units in stock: %d   Inventory value: $%.2f\n",
		summary.TotalProducts, summary.TotalUnits, summary.InventoryValue)
	fmt.Printf("Average rating: %.2f   Low stock products: %d\n\n",
		summary.AverageRating, summary.LowStockCount)

	stock := dashboard.StockStatus(products)
	fmt.Println("Stock status")
	printBar("out of stock", stock.OutOfStock)
	printBar("low (1-4)", stock.LowStock)
	printBar("medium (5-10)", stock.MediumStock)
	printBar("good (11+)", stock.GoodStock)

	ratings := dashboard.RatingDistribution(products)
	fmt.Println("\nRating distribution")
	printBar("4.5 - 5.0", ratings.Top)
	printBar("4.0 - 4.4", ratings.High)
	printBar("3.0 - 3.9", ratings.Mid)
	printBar("2.0 - 2.9", ratings.Low)
	printBar("below 2.0", ratings.Bottom)

	counts := dashboard.CategoryCounts(products)
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	fmt.Println("\nProducts per category")
	for _, category := range categories {
		printBar(category, counts[category])
	}

	fmt.Println("\nTop sellers (estimated)")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, s := range dashboard.TopSales(products, 5) {
		fmt.Fprintf(w, "%s\t%d sold\t$%.2f\n", s.Name, s.UnitsSold, s.Revenue)
	}
	return w.Flush()
}

func printBar(label string, n int) {
	fmt.Printf("  %-14s %s %d\n", label, strings.Repeat("#", n), n)
}
