// Package invoicefile loads invoice data from JSON or YAML documents on disk.
package invoicefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"invoiceforge/internal/domain"
)

// Load reads the invoice at path. Image attachments given as relative paths
// are resolved against the file's directory and read into memory.
func Load(path string) (*domain.InvoiceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading invoice file: %w", err)
	}
	data, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := ResolveImages(data, filepath.Dir(path)); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode parses a single invoice document. JSON input is accepted since it is
// valid YAML. Unknown keys are rejected.
func Decode(r io.Reader) (*domain.InvoiceData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data domain.InvoiceData
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInvoice)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInvoice, err)
	}
	return &data, nil
}

// ResolveImages loads path-based logo and signature attachments. Relative
// paths are taken relative to baseDir.
func ResolveImages(data *domain.InvoiceData, baseDir string) error {
	for _, att := range []*domain.ImageAttachment{data.Logo, data.Signature} {
		if att == nil || att.Path == "" || len(att.Data) > 0 {
			continue
		}
		p := att.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading image %s: %w", att.Path, err)
		}
		att.Data = b
	}
	return nil
}

// Encode writes data as YAML.
func Encode(w io.Writer, data *domain.InvoiceData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
