// Command importcsv loads a historical inventory CSV straight into the
// database, going through the same import path as the bulk API so every row
// gets dimension resolution and a verbatim ledger record.
//
// Usage:
//
//	importcsv -file cleaned_inventory.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/config"
	"github.com/DIBANGI/vasuki-inventory/internal/dto"
	"github.com/DIBANGI/vasuki-inventory/internal/infra"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"
	"github.com/DIBANGI/vasuki-inventory/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	file := flag.String("file", "", "path to the inventory CSV (required)")
	flag.Parse()
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rows, err := readRows(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to read csv")
	}
	log.Info().Int("rows", len(rows)).Msg("csv parsed")

	svc := service.NewCatalogService(
		repository.NewItemRepository(db),
		repository.NewPricingRepository(db),
		repository.NewDimensionRepository(db),
	)
	resp, err := svc.ImportItems(context.Background(), dto.ImportRequest{Items: rows}, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	for _, e := range resp.Errors {
		log.Warn().Int("row", e.Row).Str("sku", e.SKU).Str("detail", e.Detail).Msg("row skipped")
	}
	log.Info().Int("imported", resp.Imported).Int("failed", resp.Failed).Msg("import complete")
}

// readRows parses the historical spreadsheet export. Header names follow the
// original sheet ("SKU Number", "SP - Margin", "DOP", ...). Rows without a
// SKU are silently dropped, matching the source data where trailing blank
// lines are common.
func readRows(path string) ([]dto.ImportItemRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []dto.ImportItemRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		sku := strings.ToUpper(field(rec, "SKU Number"))
		if sku == "" || isBlankToken(sku) {
			continue
		}

		length, width := parseDimensions(field(rec, "Dimensions"))
		row := dto.ImportItemRow{
			SerialLabel:     optionalString(field(rec, "SL")),
			SKU:             sku,
			Category:        field(rec, "Category"),
			Subcategory:     optionalString(field(rec, "Subcategory")),
			Stone:           field(rec, "Stones"),
			Color:           field(rec, "Color"),
			Finish:          field(rec, "Finish"),
			Weight:          cleanFloat(field(rec, "Weight")),
			Length:          length,
			Width:           width,
			AcquisitionYear: parseYear(field(rec, "Year of Purchase")),
			Status:          field(rec, "Status"),
			CustomerName:    optionalString(field(rec, "CUSTOMER NAME")),
			SaleAmount:      cleanDecimal(field(rec, "SALE AMOUNT")),
			SoldOn:          parseDate(field(rec, "DOP")),
			Breakdown: dto.ImportBreakdown{
				UnitPrice:     cleanDecimalZero(field(rec, "Unit Price")),
				ThreadWork:    cleanDecimalZero(field(rec, "Thread work")),
				GSTOnCost:     cleanDecimalZero(field(rec, "GST on Cost price")),
				PackagingCost: cleanDecimalZero(field(rec, "Packaging cost")),
				SPMargin:      field(rec, "SP - Margin"),
				TaxPct:        cleanDecimalZero(field(rec, "Taxes")),
				CostPrice:     cleanDecimalZero(field(rec, "Cost price")),
				FinalCost:     cleanDecimalZero(field(rec, "Final Cost price")),
				SellingPrice:  cleanDecimalZero(field(rec, "SP")),
				FinalSP:       cleanDecimalZero(field(rec, "Final SP")),
			},
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlankToken(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}

func optionalString(v string) *string {
	if isBlankToken(v) {
		return nil
	}
	return &v
}

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// cleanFloat strips currency symbols and thousands separators before parsing.
func cleanFloat(v string) *float64 {
	if isBlankToken(v) {
		return nil
	}
	cleaned := nonNumeric.ReplaceAllString(v, "")
	if cleaned == "" || cleaned == "." || cleaned == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

func cleanDecimal(v string) *decimal.Decimal {
	f := cleanFloat(v)
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func cleanDecimalZero(v string) decimal.Decimal {
	if d := cleanDecimal(v); d != nil {
		return *d
	}
	return decimal.Zero
}

func parseYear(v string) *int {
	f := cleanFloat(v)
	if f == nil {
		return nil
	}
	y := int(*f)
	return &y
}

// parseDimensions splits "LxW" strings, tolerating the unicode multiplication
// sign and a single bare measurement.
func parseDimensions(v string) (*float64, *float64) {
	if isBlankToken(v) || strings.TrimSpace(v) == "0" {
		return nil, nil
	}
	v = strings.ReplaceAll(v, " ", "")
	parts := regexp.MustCompile(`[x×]`).Split(v, -1)
	var nums []*float64
	for _, p := range parts {
		if p == "" {
			continue
		}
		nums = append(nums, cleanFloat(p))
	}
	switch len(nums) {
	case 0:
		return nil, nil
	case 1:
		return nums[0], nil
	default:
		return nums[0], nums[1]
	}
}

var dateFormats = []string{"2006-01-02", "02/01/2006", "01/02/2006", "2006.01.02", "02-01-2006", "01-02-2006"}

// parseDate tries the date layouts seen in the historical sheet and
// normalizes to ISO. Unparseable dates import as unset.
func parseDate(v string) *string {
	if isBlankToken(v) {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			s := t.Format("2006-01-02")
			return &s
		}
	}
	return nil
}
