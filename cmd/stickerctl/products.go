package main

import (
	"github.com/spf13/cobra"

	"sticker-backend/internal/client"
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"product"},
	Short:   "Product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		products, err := getClient(cmd).ListProducts(ctx)
		if err != nil {
			return err
		}
		w := getWriter(cmd)
		if len(products) == 0 {
			w.Println(styled("No products yet.", dimStyle))
			return nil
		}
		w.Println(ProductTable(products))
		return nil
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a product by id, or by barcode with --barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		c := getClient(cmd)
		if byBarcode, _ := cmd.Flags().GetBool("barcode"); byBarcode {
			product, err := c.GetProductByBarcode(ctx, args[0])
			if err != nil {
				return err
			}
			getWriter(cmd).Println(ProductDetail(product))
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		product, err := c.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		getWriter(cmd).Println(ProductDetail(product))
		return nil
	},
}

// productInput collects the product flags that were set on cmd.
func productInput(cmd *cobra.Command) client.ProductInput {
	var in client.ProductInput
	str := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	in.Name = str("name")
	in.Description = str("description")
	in.Price = str("price")
	in.Barcode = str("barcode")
	in.Category = str("category")
	if cmd.Flags().Changed("stock") {
		v, _ := cmd.Flags().GetInt("stock")
		in.Stock = &v
	}
	return in
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Product name")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("price", "", "Price")
	cmd.Flags().String("barcode", "", "Barcode")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().Int("stock", 0, "Units in stock")
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		p, err := getClient(cmd).CreateProduct(ctx, productInput(cmd))
		if err != nil {
			return err
		}
		getWriter(cmd).Success("Product %d created", p.ID)
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the given fields of a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		p, err := getClient(cmd).UpdateProduct(ctx, id, productInput(cmd))
		if err != nil {
			return err
		}
		getWriter(cmd).Println(ProductDetail(p))
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := getClient(cmd).DeleteProduct(ctx, id); err != nil {
			return err
		}
		getWriter(cmd).Success("Product %d deleted", id)
		return nil
	},
}

func init() {
	productsGetCmd.Flags().Bool("barcode", false, "Treat the argument as a barcode")
	addProductFlags(productsCreateCmd)
	addProductFlags(productsUpdateCmd)
	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsCreateCmd, productsUpdateCmd, productsDeleteCmd)
}
