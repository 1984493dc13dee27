package resumes

import (
	"bytes"
	"context"
	"time"

	"resume-platform/internal/shared/metrics"
	"resume-platform/internal/shared/storage/object"
	"resume-platform/internal/shared/telemetry"
)

const defaultArchiveTimeout = 5 * time.Second

// Archiver keeps a copy of every downloaded PDF. Failures never reach the caller.
type Archiver interface {
	Archive(ctx context.Context, ownerID, resumeID string, doc []byte)
}

// ObjectArchiver writes PDFs to an object store under exports/<hashed owner>/<resume id>.pdf.
type ObjectArchiver struct {
	Store   object.Store
	Timeout time.Duration
}

func NewObjectArchiver(store object.Store) *ObjectArchiver {
	return &ObjectArchiver{Store: store, Timeout: defaultArchiveTimeout}
}

func (a *ObjectArchiver) Archive(ctx context.Context, ownerID, resumeID string, doc []byte) {
	if a == nil || a.Store == nil {
		return
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultArchiveTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	key := object.ExportKey(ownerID, resumeID)
	if _, err := a.Store.Put(ctx, key, pdfContentType, bytes.NewReader(doc)); err != nil {
		metrics.IncExportArchiveFailed()
		telemetry.Warn("resume.export_archive_failed", map[string]any{
			"resume_id":   resumeID,
			"storage_key": key,
			"error":       err,
		})
		return
	}
	telemetry.Info("resume.export_archived", map[string]any{
		"resume_id":   resumeID,
		"storage_key": key,
		"size_bytes":  len(doc),
	})
}
