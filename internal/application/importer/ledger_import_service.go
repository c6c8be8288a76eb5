package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appbilling "github.com/sitekhata/backend/internal/application/billing"
	appcatalog "github.com/sitekhata/backend/internal/application/catalog"
	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names expected in the workbook
const (
	entriesSheet  = "Entries"
	paymentsSheet = "Payments"
)

// maxImportErrors caps the warnings carried back to the client
const maxImportErrors = 100

// LedgerImportResult summarizes a staging import run
type LedgerImportResult struct {
	EntriesImported  int                              `json:"entries_imported"`
	EntriesSkipped   int                              `json:"entries_skipped"`
	PaymentsImported int                              `json:"payments_imported"`
	PaymentsUpdated  int                              `json:"payments_updated"`
	PaymentsSkipped  int                              `json:"payments_skipped"`
	VendorsCreated   int                              `json:"vendors_created"`
	Warnings         []string                         `json:"warnings,omitempty"`
	Reconciliation   *appbilling.ReconciliationResult `json:"reconciliation,omitempty"`
}

// LedgerImportService imports ledger entries and payments from a spreadsheet
// and re-runs the allocation rebuild afterwards.
//
// The workbook carries two sheets. "Entries" holds one expense row per line
// (date, item, unit, quantity, amount, source vendor, paid-to vendor,
// remarks); "Payments" holds one payment per line (date, vendor, amount,
// mode, reference, remarks). Vendors are matched by normalized name.
type LedgerImportService struct {
	vendorRepo     partner.VendorRepository
	itemService    *appcatalog.ItemService
	entryRepo      billing.LedgerEntryRepository
	paymentRepo    billing.PaymentRepository
	reconciliation *appbilling.ReconciliationService
	logger         *zap.Logger
}

// NewLedgerImportService creates a new LedgerImportService
func NewLedgerImportService(
	vendorRepo partner.VendorRepository,
	itemService *appcatalog.ItemService,
	entryRepo billing.LedgerEntryRepository,
	paymentRepo billing.PaymentRepository,
	reconciliation *appbilling.ReconciliationService,
	logger *zap.Logger,
) *LedgerImportService {
	return &LedgerImportService{
		vendorRepo:     vendorRepo,
		itemService:    itemService,
		entryRepo:      entryRepo,
		paymentRepo:    paymentRepo,
		reconciliation: reconciliation,
		logger:         logger,
	}
}

// Import reads the workbook, stages entries and payments, and runs the
// reconciliation pass over the result
func (s *LedgerImportService) Import(ctx context.Context, r io.Reader) (*LedgerImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_WORKBOOK", "Could not parse the uploaded file as a spreadsheet")
	}
	defer f.Close()

	result := &LedgerImportResult{}

	if err := s.importEntries(ctx, f, result); err != nil {
		return nil, err
	}
	if err := s.importPayments(ctx, f, result); err != nil {
		return nil, err
	}

	if s.reconciliation != nil {
		recon, err := s.reconciliation.Run(ctx, true)
		if err != nil {
			return nil, err
		}
		result.Reconciliation = recon
	}

	s.logger.Info("Ledger import finished",
		zap.Int("entries_imported", result.EntriesImported),
		zap.Int("payments_imported", result.PaymentsImported),
		zap.Int("payments_updated", result.PaymentsUpdated),
		zap.Int("vendors_created", result.VendorsCreated),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

func (s *LedgerImportService) importEntries(ctx context.Context, f *excelize.File, result *LedgerImportResult) error {
	rows, err := sheetRows(f, entriesSheet)
	if err != nil {
		result.addWarning(fmt.Sprintf("sheet %q not found, no entries imported", entriesSheet))
		return nil
	}

	for i, row := range rows {
		line := i + 2 // 1-based, after the header

		entryDate, err := parseDate(row.get("date"))
		if err != nil {
			result.skipEntry(fmt.Sprintf("entries row %d: %v", line, err))
			continue
		}

		itemName := row.get("item")
		if itemName == "" {
			result.skipEntry(fmt.Sprintf("entries row %d: missing item name", line))
			continue
		}

		quantity, err := parseDecimal(row.get("quantity"))
		if err != nil {
			result.skipEntry(fmt.Sprintf("entries row %d: bad quantity: %v", line, err))
			continue
		}
		amount, err := parseDecimal(row.get("amount"))
		if err != nil {
			result.skipEntry(fmt.Sprintf("entries row %d: bad amount: %v", line, err))
			continue
		}

		sourceVendorID, err := s.resolveVendor(ctx, row.get("source_vendor"), true, result)
		if err != nil {
			result.skipEntry(fmt.Sprintf("entries row %d: %v", line, err))
			continue
		}
		paidToVendorID, err := s.resolveVendor(ctx, row.get("paid_to"), true, result)
		if err != nil {
			result.skipEntry(fmt.Sprintf("entries row %d: %v", line, err))
			continue
		}

		item, err := s.itemService.GetOrCreateByName(ctx, itemName, row.get("unit"))
		if err != nil {
			result.skipEntry(fmt.Sprintf("entries row %d: item %q: %v", line, itemName, err))
			continue
		}

		entry, err := billing.NewLedgerEntry(entryDate, item.ID, sourceVendorID, paidToVendorID,
			quantity, row.get("unit"), amount, row.get("remarks"))
		if err != nil {
			result.skipEntry(fmt.Sprintf("entries row %d: %v", line, err))
			continue
		}

		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		result.EntriesImported++
	}

	return nil
}

// paymentKey identifies a payment for dedup across repeated imports
type paymentKey struct {
	vendorID uuid.UUID
	date     string
	amount   string
}

func (s *LedgerImportService) importPayments(ctx context.Context, f *excelize.File, result *LedgerImportResult) error {
	rows, err := sheetRows(f, paymentsSheet)
	if err != nil {
		result.addWarning(fmt.Sprintf("sheet %q not found, no payments imported", paymentsSheet))
		return nil
	}

	// Existing payments per vendor, keyed by (date, vendor, amount).
	existing := make(map[paymentKey]*billing.Payment)
	loadedVendors := make(map[uuid.UUID]bool)
	staged := make(map[paymentKey]bool)

	for i, row := range rows {
		line := i + 2

		paymentDate, err := parseDate(row.get("date"))
		if err != nil {
			result.skipPayment(fmt.Sprintf("payments row %d: %v", line, err))
			continue
		}
		amount, err := parseDecimal(row.get("amount"))
		if err != nil {
			result.skipPayment(fmt.Sprintf("payments row %d: bad amount: %v", line, err))
			continue
		}

		// Payments never create vendors: a payout to a vendor the ledger
		// has never billed is almost always a typo in the sheet.
		vendorID, err := s.resolveVendor(ctx, row.get("vendor"), false, result)
		if err != nil || vendorID == nil {
			result.skipPayment(fmt.Sprintf("payments row %d: %v", line, err))
			continue
		}

		if !loadedVendors[*vendorID] {
			payments, err := s.paymentRepo.FindByVendor(ctx, *vendorID)
			if err != nil {
				return err
			}
			for j := range payments {
				p := &payments[j]
				existing[newPaymentKey(p.VendorID, p.PaymentDate, p.Amount)] = p
			}
			loadedVendors[*vendorID] = true
		}

		key := newPaymentKey(*vendorID, paymentDate, amount)
		if staged[key] {
			// Duplicate staged rows collapse into one payment.
			result.skipPayment(fmt.Sprintf("payments row %d: duplicate of an earlier row", line))
			continue
		}
		staged[key] = true

		mode := mapPaymentMode(row.get("mode"))
		referenceNo := row.get("reference")
		remarks := row.get("remarks")

		if p, ok := existing[key]; ok {
			if p.Mode == mode && p.ReferenceNo == referenceNo {
				result.PaymentsSkipped++
				continue
			}
			if err := p.UpdateDetails(p.PaymentDate, mode, referenceNo, remarks); err != nil {
				result.skipPayment(fmt.Sprintf("payments row %d: %v", line, err))
				continue
			}
			if err := s.paymentRepo.Save(ctx, p); err != nil {
				return err
			}
			result.PaymentsUpdated++
			continue
		}

		payment, err := billing.NewPayment(*vendorID, paymentDate, amount, mode, referenceNo, remarks)
		if err != nil {
			result.skipPayment(fmt.Sprintf("payments row %d: %v", line, err))
			continue
		}
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return err
		}
		existing[key] = payment
		result.PaymentsImported++
	}

	return nil
}

// resolveVendor maps a vendor name to an ID by normalized name. Returns
// (nil, nil) for blank names so optional columns stay optional.
func (s *LedgerImportService) resolveVendor(ctx context.Context, name string, createIfMissing bool, result *LedgerImportResult) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	vendor, err := s.vendorRepo.FindByNormalizedName(ctx, partner.NormalizeName(name))
	if err == nil && vendor != nil {
		return &vendor.ID, nil
	}

	if !createIfMissing {
		return nil, fmt.Errorf("unknown vendor %q", name)
	}

	vendor, err = partner.NewVendor(name, "", "")
	if err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	result.VendorsCreated++
	s.logger.Info("Vendor created during import", zap.String("name", vendor.Name))

	return &vendor.ID, nil
}

func (r *LedgerImportResult) addWarning(msg string) {
	if len(r.Warnings) < maxImportErrors {
		r.Warnings = append(r.Warnings, msg)
	}
}

func (r *LedgerImportResult) skipEntry(msg string) {
	r.EntriesSkipped++
	r.addWarning(msg)
}

func (r *LedgerImportResult) skipPayment(msg string) {
	r.PaymentsSkipped++
	r.addWarning(msg)
}

func newPaymentKey(vendorID uuid.UUID, date time.Time, amount decimal.Decimal) paymentKey {
	return paymentKey{
		vendorID: vendorID,
		date:     date.Format("2006-01-02"),
		amount:   amount.StringFixed(2),
	}
}

// importRow maps lowercased header names to cell values
type importRow map[string]string

func (r importRow) get(column string) string {
	return strings.TrimSpace(r[column])
}

// sheetRows reads a sheet into header-keyed rows, skipping fully blank lines
func sheetRows(f *excelize.File, sheet string) ([]importRow, error) {
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", "_"))
	}

	var rows []importRow
	for _, cells := range raw[1:] {
		row := make(importRow, len(headers))
		blank := true
		for i, cell := range cells {
			if i >= len(headers) {
				break
			}
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
			row[headers[i]] = cell
		}
		if !blank {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// dateLayouts covers the formats seen in hand-maintained site sheets
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	// Date cells sometimes come through as raw Excel serial numbers.
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseDecimal(value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return decimal.Zero, fmt.Errorf("missing value")
	}
	return decimal.NewFromString(value)
}

// mapPaymentMode folds the free-form mode column into the known modes.
// Bank rails (NEFT, IMPS, RTGS) all count as bank transfers.
func mapPaymentMode(value string) billing.PaymentMode {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "CASH", "":
		return billing.PaymentModeCash
	case "UPI", "GPAY", "PHONEPE", "PAYTM":
		return billing.PaymentModeUPI
	case "BANK_TRANSFER", "BANK", "NEFT", "IMPS", "RTGS", "TRANSFER":
		return billing.PaymentModeBankTransfer
	case "CHEQUE", "CHECK", "CHQ":
		return billing.PaymentModeCheque
	default:
		return billing.PaymentModeOther
	}
}
