// Command perfumectl runs operator tasks against the store database.
//
//	perfumectl migrate
//	perfumectl seed
//	perfumectl stats
//	perfumectl orders [-status pending] [-limit 20]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Kariqs/perfume-api/initializers"
	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/repository"
	"github.com/Kariqs/perfume-api/services"
	"github.com/Kariqs/perfume-api/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const usage = `usage: perfumectl <command> [flags]

commands:
  migrate   create or update the database schema
  seed      insert the sample catalog when no products exist
  stats     print dashboard statistics
  orders    list recent orders (-status, -limit)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Args[2:], os.Stdout); err != nil {
		slog.Error("perfumectl failed", "command", os.Args[1], "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		return err
	}
	initializers.SetupLogger(cfg)

	db, err := initializers.ConnectToDB(cfg)
	if err != nil {
		return err
	}
	defer initializers.CloseDB(db)

	return dispatch(ctx, db, command, args, out)
}

func dispatch(ctx context.Context, db *gorm.DB, command string, args []string, out io.Writer) error {
	switch command {
	case "migrate":
		return initializers.SyncDatabase(db)
	case "seed":
		return seed(ctx, db, out)
	case "stats":
		return printStats(ctx, db, out)
	case "orders":
		return listOrders(ctx, db, args, out)
	}
	return fmt.Errorf("unknown command %q\n%s", command, usage)
}

type sampleProduct struct {
	name, description string
	price10, price35  string
	notes             []string
}

var sampleCatalog = []sampleProduct{
	{"Velvet Oud", "Smoky oud wrapped in rose and saffron.", "1200", "3500", []string{"oud", "rose", "saffron"}},
	{"Citrus Bloom", "Bright bergamot and neroli for daytime wear.", "900", "2600", []string{"bergamot", "neroli", "mandarin"}},
	{"Amber Nights", "Warm amber, vanilla and tonka bean.", "1100", "3200", []string{"amber", "vanilla", "tonka"}},
	{"Ocean Mist", "Fresh aquatic notes with a hint of sea salt.", "850", "2400", []string{"sea salt", "marine", "musk"}},
	{"Midnight Jasmine", "Night blooming jasmine over sandalwood.", "1000", "2900", []string{"jasmine", "sandalwood", "musk"}},
}

func seed(ctx context.Context, db *gorm.DB, out io.Writer) error {
	products := repository.NewProductRepository(db)
	count, err := products.CountActive(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Fprintf(out, "catalog already has %d active products, skipping seed\n", count)
		return nil
	}

	catalog := services.NewProductService(products, nil)
	for _, sample := range sampleCatalog {
		product, err := catalog.Create(ctx, services.CreateProductInput{
			Name:           sample.name,
			Description:    sample.description,
			Price10ml:      decimal.RequireFromString(sample.price10),
			Price35ml:      decimal.RequireFromString(sample.price35),
			FragranceNotes: sample.notes,
		})
		if err != nil {
			return fmt.Errorf("failed to seed %q: %w", sample.name, err)
		}
		fmt.Fprintf(out, "created product %d %s\n", product.ID, product.Name)
	}
	return nil
}

func orderService(db *gorm.DB) *services.OrderService {
	return services.NewOrderService(repository.NewProductRepository(db), repository.NewOrderRepository(db), nil)
}

func printStats(ctx context.Context, db *gorm.DB, out io.Writer) error {
	stats, err := orderService(db).DashboardStats(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Total orders", strconv.FormatInt(stats.TotalOrders, 10)},
		{"Pending", strconv.FormatInt(stats.PendingOrders, 10)},
		{"Approved", strconv.FormatInt(stats.ApprovedOrders, 10)},
		{"Cancelled", strconv.FormatInt(stats.CancelledOrders, 10)},
		{"Shipped", strconv.FormatInt(stats.ShippedOrders, 10)},
		{"Delivered", strconv.FormatInt(stats.DeliveredOrders, 10)},
		{"Revenue", stats.TotalRevenue.StringFixed(2)},
		{"Active products", strconv.FormatInt(stats.TotalProducts, 10)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func listOrders(ctx context.Context, db *gorm.DB, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(out)
	status := fs.String("status", "", "only orders with this status")
	limit := fs.Int("limit", 20, "number of orders to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *status != "" {
		if _, err := models.ParseOrderStatus(*status); err != nil {
			return err
		}
	}

	page := utils.ParsePageRequest("1", strconv.Itoa(*limit))
	orders, pagination, err := orderService(db).ListOrders(ctx, page, *status)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Number", "Customer", "Items", "Total", "Status", "Created")
	for _, order := range orders {
		err := table.Append([]string{
			strconv.FormatUint(uint64(order.ID), 10),
			order.OrderNumber,
			order.CustomerName,
			strconv.Itoa(len(order.Items)),
			order.TotalAmount.StringFixed(2),
			string(order.Status),
			order.CreatedAt.Format("2006-01-02 15:04"),
		})
		if err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(out, "showing %d of %d orders\n", len(orders), pagination.Total)
	return nil
}
