package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/marcos010894/innobyte-labels/internal/batch"
	"github.com/marcos010894/innobyte-labels/internal/compare"
	"github.com/marcos010894/innobyte-labels/internal/pagelayout"
	"github.com/marcos010894/innobyte-labels/internal/units"
	"github.com/marcos010894/innobyte-labels/internal/variables"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

func main() {
	var output string
	flag.StringVar(&output, "o", "", "Output file (default: engine-chosen filename)")
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}

	args := flag.Args()
	var err error

	switch args[0] {
	case "render":
		err = runRender(args[1:], output)
	case "document":
		err = runDocument(args[1:], output)
	case "grid":
		err = runGrid(args[1:])
	case "compare":
		err = runCompare(args[1:])
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Label Engine CLI

Usage:
  labelctl [flags] <command>

Flags:
  -o <file>    Output file (default: engine-chosen filename)

Commands:
  render <template.json> [products.json]
    Render a single label to PNG. When a products file is given, the
    first product fills the template variables.

  document <template.json> <products.json>
    Generate a batch PDF with one label per product.

  grid <template.json>
    Print the computed page grid as JSON.

  compare <template.json> <products.json>
    Compare edit and print geometry for the first product and report
    any position differences.

  help
    Show this message

Examples:
  labelctl render etiqueta.json
  labelctl render etiqueta.json produtos.json -o preview.png
  labelctl document etiqueta.json produtos.json
  labelctl compare etiqueta.json produtos.json
`)
}

func loadTemplate(path string) (*labelformat.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tpl labelformat.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("invalid template file: %w", err)
	}
	if tpl.Config.Unit == "" {
		tpl.Config.Unit = labelformat.UnitMillimeter
	}
	if err := labelformat.Validate(&tpl); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &tpl, nil
}

func loadProducts(path string) ([]labelformat.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var products []labelformat.Product
	if err := json.Unmarshal(data, &products); err != nil {
		// Also accept a single product object
		var one labelformat.Product
		if err2 := json.Unmarshal(data, &one); err2 != nil {
			return nil, fmt.Errorf("invalid products file: %w", err)
		}
		products = []labelformat.Product{one}
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("products file is empty")
	}
	return products, nil
}

func runRender(args []string, output string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: labelctl render <template.json> [products.json]")
	}

	tpl, err := loadTemplate(args[0])
	if err != nil {
		return err
	}

	product := labelformat.Product{}
	if len(args) > 1 {
		products, err := loadProducts(args[1])
		if err != nil {
			return err
		}
		product = products[0]
	}

	driver := batch.NewDriver()
	data, filename, err := driver.ExportPNG(*tpl, product, variables.Options{})
	if err != nil {
		return err
	}

	if output == "" {
		output = filename
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d bytes)\n", output, len(data))
	return nil
}

func runDocument(args []string, output string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labelctl document <template.json> <products.json>")
	}

	tpl, err := loadTemplate(args[0])
	if err != nil {
		return err
	}
	products, err := loadProducts(args[1])
	if err != nil {
		return err
	}

	var cfg labelformat.PagePrintConfig
	if tpl.PagePrintConfig != nil {
		cfg = *tpl.PagePrintConfig
	}

	driver := batch.NewDriver()
	doc, filename, err := driver.GenerateDocument(context.Background(), *tpl, products, cfg, variables.Options{})
	if err != nil {
		return err
	}

	if output == "" {
		output = filename
	}
	if err := os.WriteFile(output, doc, 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d labels, %d bytes)\n", output, len(products), len(doc))
	return nil
}

func runGrid(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: labelctl grid <template.json>")
	}

	tpl, err := loadTemplate(args[0])
	if err != nil {
		return err
	}

	var cfg labelformat.PagePrintConfig
	if tpl.PagePrintConfig != nil {
		cfg = *tpl.PagePrintConfig
	}

	labelW := units.ToMillimeters(tpl.Config.Width, tpl.Config.Unit)
	labelH := units.ToMillimeters(tpl.Config.Height, tpl.Config.Unit)
	grid := pagelayout.ComputeGrid(labelW, labelH, cfg)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(grid)
}

func runCompare(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labelctl compare <template.json> <products.json>")
	}

	tpl, err := loadTemplate(args[0])
	if err != nil {
		return err
	}
	products, err := loadProducts(args[1])
	if err != nil {
		return err
	}

	result := compare.Compare(*tpl, products[0], variables.Options{})
	fmt.Print(result.Report())

	if result.HasDrift() {
		os.Exit(1)
	}
	return nil
}
