package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
	"github.com/noah-isme/campus-ops-api/pkg/export"
)

// ExportFormat selects the rendering backend.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var leaveExportHeaders = []string{"ID", "Requester", "Department", "Category", "From", "To", "Days", "Status", "Submitted"}

// ExportService renders reconciled leave record sets for download.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	queue  queueProvider
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(queue queueProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		queue:  queue,
		logger: logger,
	}
}

// RenderQueue exports the approver's reconciled queue in the requested
// format. Rows are ordered newest submission first so output is stable.
func (s *ExportService) RenderQueue(ctx context.Context, approver models.ApproverIdentity, scope models.ClassScope, format ExportFormat) ([]byte, string, error) {
	records, err := s.queue.Queue(ctx, approver, scope)
	if err != nil {
		return nil, "", err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmittedAt.After(records[j].SubmittedAt)
	})

	dataset := export.Dataset{Headers: leaveExportHeaders}
	for _, record := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":         record.ID,
			"Requester":  record.RequesterName,
			"Department": record.Department,
			"Category":   string(record.Category),
			"From":       record.FromDate.Format("2006-01-02"),
			"To":         record.ToDate.Format("2006-01-02"),
			"Days":       strconv.Itoa(record.DaysCount),
			"Status":     string(record.Status),
			"Submitted":  record.SubmittedAt.Format("2006-01-02 15:04"),
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", fmt.Errorf("render leave csv: %w", err)
		}
		return payload, "text/csv", nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Leave Requests")
		if err != nil {
			return nil, "", fmt.Errorf("render leave pdf: %w", err)
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
