package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"invoiceforge/internal/catalog"
	"invoiceforge/internal/config"
	"invoiceforge/internal/currency"
	"invoiceforge/internal/domain"
	"invoiceforge/internal/email/noop"
	"invoiceforge/internal/imaging"
	"invoiceforge/internal/invoicefile"
	"invoiceforge/internal/layout"
	"invoiceforge/internal/logger"
	"invoiceforge/internal/port"
	"invoiceforge/internal/render/pdf"
	"invoiceforge/internal/service"
	s3storage "invoiceforge/internal/storage/s3"
)

func inFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "in",
		Aliases:  []string{"i"},
		Usage:    "invoice `FILE` (JSON or YAML)",
		Required: true,
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "invoicegen",
		Usage:  "compute and render invoices",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config `FILE`", EnvVars: []string{"INVOICEFORGE_CONFIG_FILE"}},
			&cli.StringFlag{Name: "paper", Usage: "paper size: classic, letter or a4"},
			&cli.StringFlag{Name: "mode", Usage: "layout mode: paginate or legacy"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging on stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "render an invoice to PDF",
				Flags: []cli.Flag{
					inFlag(),
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output `FILE`; defaults to a name derived from the invoice number"},
				},
				Action: renderAction,
			},
			{
				Name:   "totals",
				Usage:  "print the computed totals",
				Flags:  []cli.Flag{inFlag(), &cli.BoolFlag{Name: "json", Usage: "print JSON"}},
				Action: totalsAction,
			},
			{
				Name:   "check",
				Usage:  "run pre-flight checks; exits non-zero when the invoice has errors",
				Flags:  []cli.Flag{inFlag()},
				Action: checkAction,
			},
			{
				Name:   "layout",
				Usage:  "print the drawing instructions as JSON",
				Flags:  []cli.Flag{inFlag()},
				Action: layoutAction,
			},
			{
				Name:   "currencies",
				Usage:  "list known currencies",
				Action: currenciesAction,
			},
			{
				Name:  "catalog",
				Usage: "search a saved-items spreadsheet",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "catalog `XLSX`", Required: true},
					&cli.StringFlag{Name: "sheet", Usage: "sheet name; defaults to the first sheet"},
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "description search term"},
					&cli.BoolFlag{Name: "items", Usage: "print matches as YAML line items"},
				},
				Action: catalogAction,
			},
		},
	}
}

// env holds what every invoice command needs.
type env struct {
	logger *zap.Logger
	svc    service.InvoiceService
}

func newEnv(c *cli.Context) (*env, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return nil, err
	}
	if p := c.String("paper"); p != "" {
		cfg.Layout.Paper = p
	}
	if m := c.String("mode"); m != "" {
		cfg.Layout.Mode = m
	}
	cfg.Log.Level = "warn"
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	geometry, err := cfg.Layout.Geometry()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.Layout.LayoutMode()
	if err != nil {
		return nil, err
	}
	engine, err := layout.NewEngine(geometry, imaging.NewEmbedder(cfg.Layout.MaxImageBytes(), zl), mode, zl)
	if err != nil {
		return nil, err
	}
	renderer := pdf.NewRenderer(pdf.Options{
		FontFamily: cfg.Layout.FontFamily,
		Creator:    "invoicegen",
		Compress:   cfg.Layout.Compress,
	}, zl)

	var assets port.AssetStore
	if cfg.S3.Enabled {
		store, err := s3storage.NewAssetStore(&cfg.S3, cfg.Layout.MaxImageBytes())
		if err != nil {
			return nil, err
		}
		assets = store
	}

	svc := service.NewInvoiceService(engine, renderer, assets, noop.NewNoopSender(zl), zl, service.WithClock(stamp))
	return &env{logger: zl, svc: svc}, nil
}

func loadInvoice(c *cli.Context) (domain.InvoiceData, error) {
	data, err := invoicefile.Load(c.String("in"))
	if err != nil {
		return domain.InvoiceData{}, err
	}
	return *data, nil
}

func renderAction(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	data, err := loadInvoice(c)
	if err != nil {
		return err
	}
	res, err := e.svc.Export(c.Context, data)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	out := c.String("out")
	if out == "" {
		out = filepath.Join(filepath.Dir(c.String("in")), res.FileName)
	}
	if err := os.WriteFile(out, res.PDF, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s (%d page(s), total %s)\n",
		out, res.PageCount, currency.Format(res.Totals.GrandTotal, symbolFor(data)))
	return nil
}

func totalsAction(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	data, err := loadInvoice(c)
	if err != nil {
		return err
	}
	out := e.svc.Totals(data)

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Totals)
	}

	sym := symbolFor(data)
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Subtotal:\t%s\n", currency.Format(out.Totals.Subtotal, sym))
	fmt.Fprintf(tw, "Tax:\t%s\n", currency.Format(out.Totals.TaxTotal, sym))
	fmt.Fprintf(tw, "Total:\t%s\n", currency.Format(out.Totals.GrandTotal, sym))
	if out.Totals.EffectiveTaxPercentage > 0 {
		fmt.Fprintf(tw, "Effective tax:\t%.2f%%\n", out.Totals.EffectiveTaxPercentage)
	}
	return tw.Flush()
}

func checkAction(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	data, err := loadInvoice(c)
	if err != nil {
		return err
	}
	report := e.svc.Check(c.Context, data)

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	for _, f := range report.Findings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Severity, f.FieldPath, f.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s: %d check(s), %d finding(s)\n", report.Status, report.Checked, len(report.Findings))
	if report.Status == domain.ValidationStatusInvalid {
		return errors.New("invoice has errors")
	}
	return nil
}

func layoutAction(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	data, err := loadInvoice(c)
	if err != nil {
		return err
	}
	res, err := e.svc.Layout(c.Context, data)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Document)
}

func currenciesAction(c *cli.Context) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSYMBOL\tNAME")
	for _, cur := range currency.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cur.Code, cur.Symbol, cur.Name)
	}
	return tw.Flush()
}

func catalogAction(c *cli.Context) error {
	cat, err := catalog.LoadXLSX(c.String("file"), c.String("sheet"))
	if err != nil {
		return err
	}
	found := cat.Search(c.String("query"))

	if c.Bool("items") {
		enc := yaml.NewEncoder(c.App.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]domain.LineItem{"items": catalog.ToLineItems(found)}); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDESCRIPTION\tQTY\tUNIT PRICE\tTAX")
	for _, e := range found {
		tax := ""
		if e.TaxName != "" || e.TaxPercent != "" {
			tax = fmt.Sprintf("%s %s%%", e.TaxName, e.TaxPercent)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Description, e.Quantity, e.UnitPrice, tax)
	}
	return tw.Flush()
}

func symbolFor(data domain.InvoiceData) string {
	_, sym := currency.Resolve(data.CurrencyCode, data.CurrencySymbol)
	return sym
}

// stamp supplies the export file name timestamp.
var stamp = time.Now
