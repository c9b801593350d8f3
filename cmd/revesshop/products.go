package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	client "github.com/revesshop/revesshop-client"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"productos"},
		Short:   "Browse and manage the catalog",
	}
	cmd.AddCommand(newListProductsCmd(a))
	cmd.AddCommand(newGetProductCmd(a))
	cmd.AddCommand(newCreateProductCmd(a))
	cmd.AddCommand(newUpdateProductCmd(a))
	cmd.AddCommand(newDeleteProductCmd(a))
	return cmd
}

func newListProductsCmd(a *app) *cobra.Command {
	var params client.ListProductsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			start := time.Now()
			raw, err := a.client.ListProductsRaw(ctx, params.Query())
			if err != nil {
				log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list products failed")
				return err
			}
			log.Debug().Dur("elapsed", time.Since(start)).Int("bytes", len(raw)).Msg("products listed")
			return a.print(cmd.OutOrStdout(), raw)
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number, starting at 1")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Products per page")
	cmd.Flags().StringVar(&params.Categoria, "categoria", "", "Category filter")
	cmd.Flags().StringVar(&params.Search, "search", "", "Free text search")
	cmd.Flags().StringVar(&params.Marca, "marca", "", "Brand filter")
	return cmd
}

func newGetProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			p, err := a.client.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), p)
		},
	}
}

// productFlags binds the writable fields; only flags the user set end up in
// the request body.
type productFlags struct {
	nombre, marca, categoria, descripcion, imagenURL string
	precio                                           float64
	stock                                            int
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nombre, "nombre", "", "Product name")
	cmd.Flags().StringVar(&f.marca, "marca", "", "Brand")
	cmd.Flags().Float64Var(&f.precio, "precio", 0, "Price in "+client.PriceCurrency)
	cmd.Flags().IntVar(&f.stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&f.categoria, "categoria", "", "Category")
	cmd.Flags().StringVar(&f.descripcion, "descripcion", "", "Description")
	cmd.Flags().StringVar(&f.imagenURL, "imagen-url", "", "Image URL")
}

func (f *productFlags) input(cmd *cobra.Command) client.ProductInput {
	var in client.ProductInput
	changed := cmd.Flags().Changed
	if changed("nombre") {
		in.Nombre = client.String(f.nombre)
	}
	if changed("marca") {
		in.Marca = client.String(f.marca)
	}
	if changed("precio") {
		in.Precio = client.Float64(f.precio)
	}
	if changed("stock") {
		in.Stock = client.Int(f.stock)
	}
	if changed("categoria") {
		in.Categoria = client.String(f.categoria)
	}
	if changed("descripcion") {
		in.Descripcion = client.String(f.descripcion)
	}
	if changed("imagen-url") {
		in.ImagenURL = client.String(f.imagenURL)
	}
	return in
}

func newCreateProductCmd(a *app) *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			p, err := a.client.CreateProduct(ctx, f.input(cmd))
			if err != nil {
				return err
			}
			log.Debug().Str("product_id", p.ID).Msg("product created")
			return a.print(cmd.OutOrStdout(), p)
		},
	}
	f.bind(cmd)
	_ = cmd.MarkFlagRequired("nombre")
	_ = cmd.MarkFlagRequired("precio")
	return cmd
}

func newUpdateProductCmd(a *app) *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a product (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			p, err := a.client.UpdateProduct(ctx, args[0], f.input(cmd))
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), p)
		},
	}
	f.bind(cmd)
	return cmd
}

func newDeleteProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			if err := a.client.DeleteProduct(ctx, args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}
