// Package cli provides the Cobra-based CLI for storefront.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"storefront/domain"
	"storefront/store"
)

var (
	rootCmd = &cobra.Command{
		Use:           "storefront",
		Short:         "A storefront cart, discount and order pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests and the shell to keep an existing store
			if shopStore != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			setupLogging(viper.GetString("log-level"))

			var err error
			shopStore, err = newStoreFromConfig()
			return err
		},
	}

	shopStore *store.Store
)

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
	))
}

func newStoreFromConfig() (*store.Store, error) {
	catalog, err := store.NewCatalog(
		viper.GetString("catalog"),
		viper.GetString("catalog-file"),
	)
	if err != nil {
		return nil, err
	}
	pct, err := decimal.NewFromString(viper.GetString("discount-percentage"))
	if err != nil {
		return nil, fmt.Errorf("discount-percentage: %w", err)
	}
	return store.New(catalog,
		store.WithLoyaltyInterval(viper.GetInt("loyalty-interval")),
		store.WithDiscountPercentage(pct),
	)
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "memory", "catalog source: memory|file")
	rootCmd.PersistentFlags().String("catalog-file", "data/catalog.json", "catalog file path")
	rootCmd.PersistentFlags().Int("loyalty-interval", store.DefaultLoyaltyInterval, "issue a discount code every N orders (0 disables)")
	rootCmd.PersistentFlags().String("discount-percentage", strconv.Itoa(store.DefaultDiscountPercentage), "percentage carried by generated discount codes")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	for _, name := range []string{"catalog", "catalog-file", "loyalty-interval", "discount-percentage", "config", "log-level"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	viper.SetEnvPrefix("STOREFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		newShellCmd(),
		newServeCmd(),
		newProductsCmd(),
		newProductCmd(),
		newCartCmd(),
		newDiscountCmd(),
		newCheckoutCmd(),
		newOrdersCmd(),
		newOrderCmd(),
		newAdminCmd(),
	)
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode; cart, codes and orders persist across lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("storefront> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				if line == "shell" {
					fmt.Fprintln(os.Stderr, "already in shell")
					continue
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
				resetFlags(rootCmd)
			}
		},
	}
}

// resetFlags restores every local flag to its default so a value given on
// one shell line does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func newProductsCmd() *cobra.Command {
	var sortBy, order, output string
	var minPrice, maxPrice string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.ListFilter{SortBy: sortBy, Order: order}
			if cmd.Flags().Changed("min-price") {
				d, err := decimal.NewFromString(minPrice)
				if err != nil {
					return fmt.Errorf("min-price: %w", err)
				}
				filter.MinPrice = &d
			}
			if cmd.Flags().Changed("max-price") {
				d, err := decimal.NewFromString(maxPrice)
				if err != nil {
					return fmt.Errorf("max-price: %w", err)
				}
				filter.MaxPrice = &d
			}
			out, err := shopStore.ListProducts(context.Background(), filter)
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(out)
			}
			for _, p := range out {
				fmt.Printf("%s | %s | %s | %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&minPrice, "min-price", "", "min price")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "max price")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort field: name|price")
	cmd.Flags().StringVar(&order, "order", "asc", "sort order")
	cmd.Flags().StringVar(&output, "output", "", "output format")

	var exportFile string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export the catalog to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			out, err := shopStore.ListProducts(context.Background(), domain.ListFilter{})
			if err != nil {
				return err
			}
			return store.WriteProductsFile(exportFile, out)
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	cmd.AddCommand(exportCmd)
	return cmd
}

func newProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Get product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := shopStore.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
}

func newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := shopStore.GetCart(context.Background())
			if err != nil {
				return err
			}
			return printCart(items)
		},
	}

	var quantity int
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := shopStore.AddToCart(context.Background(), args[0], quantity)
			if err != nil {
				slog.Error("add to cart failed", "product_id", args[0], "error", err)
				return err
			}
			slog.Debug("cart updated", "product_id", args[0], "quantity", quantity)
			return printCart(items)
		},
	}
	addCmd.Flags().IntVar(&quantity, "quantity", 1, "quantity to add")

	updateCmd := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set a line's quantity; 0 or less removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity: %w", err)
			}
			items, err := shopStore.UpdateQuantity(context.Background(), args[0], q)
			if err != nil {
				return err
			}
			return printCart(items)
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := shopStore.RemoveFromCart(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printCart(items)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := shopStore.ClearCart(context.Background())
			if err != nil {
				return err
			}
			return printCart(items)
		},
	}

	var code string
	totalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "Price the cart, optionally previewing a discount code",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := shopStore.CartTotals(context.Background(), code)
			if err != nil {
				return err
			}
			printTotals(t)
			return nil
		},
	}
	totalsCmd.Flags().StringVar(&code, "code", "", "discount code")

	cmd.AddCommand(addCmd, updateCmd, removeCmd, clearCmd, totalsCmd)
	return cmd
}

func newDiscountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discount",
		Short: "Discount code operations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <code>",
		Short: "Check whether a discount code can be applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := shopStore.ValidateDiscountCode(context.Background(), args[0])
			if err != nil {
				return err
			}
			if ok {
				fmt.Println("valid")
			} else {
				fmt.Println("invalid")
			}
			return nil
		},
	})
	return cmd
}

func newCheckoutCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			o, err := shopStore.Checkout(context.Background(), code)
			if err != nil {
				slog.Error("checkout failed", "discount_code", code, "error", err)
				return err
			}
			slog.Info("order placed",
				"order_id", o.ID,
				"final_amount", o.FinalAmount.StringFixed(2),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return printJSON(o)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "discount code")
	return cmd
}

func newOrdersCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List placed orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := shopStore.GetAllOrders(context.Background())
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(out)
			}
			for _, o := range out {
				fmt.Printf("%s | %s | %d items | %s | %s | %s | %s\n",
					o.ID, o.CreatedAt.Format(time.RFC3339), o.ItemCount(),
					o.Subtotal.StringFixed(2), o.DiscountAmount.StringFixed(2),
					o.FinalAmount.StringFixed(2), o.DiscountCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output format")
	return cmd
}

func newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order <id>",
		Short: "Get order by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := shopStore.GetOrder(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(o)
		},
	}
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator reports and actions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show purchase totals and all discount codes",
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := shopStore.AdminStats(context.Background())
				if err != nil {
					return err
				}
				fmt.Printf("items purchased: %d\n", s.TotalItemsPurchased)
				fmt.Printf("purchase amount: %s\n", s.TotalPurchaseAmount.StringFixed(2))
				fmt.Printf("discount amount: %s\n", s.TotalDiscountAmount.StringFixed(2))
				for _, dc := range s.DiscountCodes {
					state := "unused"
					if dc.Used {
						state = "used"
					}
					fmt.Printf("%s | %s%% | %s\n", dc.Code, dc.Percentage.String(), state)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "generate-code",
			Short: "Issue a discount code now",
			RunE: func(cmd *cobra.Command, args []string) error {
				dc, err := shopStore.AdminGenerateDiscountCode(context.Background())
				if err != nil {
					return err
				}
				slog.Info("discount code generated", "code", dc.Code)
				return printJSON(dc)
			},
		},
	)
	return cmd
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printCart(items []domain.CartLineItem) error {
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%s | %s | %d x %s = %s\n",
			it.Product.ID, it.Product.Name, it.Quantity,
			it.Product.Price.StringFixed(2), it.LineTotal().StringFixed(2))
	}
	return nil
}

func printTotals(t domain.Totals) {
	fmt.Printf("subtotal: %s\n", t.Subtotal.StringFixed(2))
	fmt.Printf("discount: %s\n", t.DiscountAmount.StringFixed(2))
	fmt.Printf("total:    %s\n", t.Total.StringFixed(2))
}

func Execute() error {
	return rootCmd.Execute()
}
