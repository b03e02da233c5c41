package parser

import (
	"crypto/md5"
	"strconv"

	"github.com/google/uuid"
)

// DeriveID returns a name-based (version 3) UUID over sender, body and timestamp.
// The name is hashed without a namespace so ids stay stable across re-ingestion.
func DeriveID(sender, body string, occurredAt int64) string {
	sum := md5.Sum([]byte(sender + body + strconv.FormatInt(occurredAt, 10)))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum).String()
}
