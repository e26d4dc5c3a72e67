// Command invoicegen computes, lays out and renders invoices from JSON or
// YAML files without running the HTTP server.
//
// Usage:
//
//	invoicegen render --in invoice.yaml [--out invoice.pdf]
//	invoicegen totals --in invoice.yaml
//	invoicegen check --in invoice.yaml
//	invoicegen layout --in invoice.yaml
//	invoicegen currencies
//	invoicegen catalog --file items.xlsx [--query design]
package main

import (
	"log"
	"os"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
