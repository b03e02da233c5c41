package report

import (
	"context"
	"io"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// Writer renders transactions into a downloadable document
type Writer interface {
	Write(w io.Writer, transactions []*entity.Transaction) error
	ContentType() string
	Extension() string
}

// Archive stores rendered reports and returns their location
type Archive interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}
