package object

import (
	"context"
	"io"
	"path"

	"resume-platform/internal/shared/util"
)

// Store defines the contract for saving and retrieving binary objects by key.
type Store interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// ExportKey is the storage key of a resume's archived PDF. The owner id is hashed
// so keys do not expose user identifiers.
func ExportKey(userID, resumeID string) string {
	return path.Join("exports", util.OwnerDigest(userID), resumeID+".pdf")
}
