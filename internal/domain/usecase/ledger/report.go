package ledger

import (
	"bytes"
	"context"
	"fmt"
	"io"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
)

const reportObjectPrefix = "reports/transactions-"

// ExportTransactions renders the matching transactions into w
func (s *Service) ExportTransactions(ctx context.Context, w io.Writer, query persistence.TransactionQuery) error {
	transactions, err := s.ListTransactions(ctx, query)
	if err != nil {
		return err
	}

	if err := s.reportWriter.Write(w, transactions); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// ArchiveReport renders a report and uploads it under a timestamped name
func (s *Service) ArchiveReport(ctx context.Context, query persistence.TransactionQuery) (string, error) {
	if s.archive == nil {
		return "", fmt.Errorf("%w: report archive is not configured", errs.ErrInternalServer)
	}

	var buf bytes.Buffer
	if err := s.ExportTransactions(ctx, &buf, query); err != nil {
		return "", err
	}

	objectName := reportObjectPrefix + s.timeProvider.Now().UTC().Format("20060102T150405") + s.reportWriter.Extension()
	location, err := s.archive.Upload(ctx, objectName, buf.Bytes(), s.reportWriter.ContentType())
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	s.logger.Info("Report archived", map[string]any{
		"object":   objectName,
		"location": location,
		"bytes":    buf.Len(),
	})
	return location, nil
}

// ReportFormat returns the content type and file extension of exports
func (s *Service) ReportFormat() (string, string) {
	return s.reportWriter.ContentType(), s.reportWriter.Extension()
}
