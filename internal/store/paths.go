package store

import (
	"fmt"
	"path/filepath"
	"strings"
)

const defaultDocumentName = "events_database.json"

// DocumentPath returns the JSON document path for a tenant under dataDir.
// An empty tenantID (no tenant context bound) resolves to the default,
// tenant-less document name.
func DocumentPath(dataDir, tenantID string) string {
	tenantID = strings.TrimSpace(tenantID)
	name := defaultDocumentName
	if tenantID != "" {
		name = fmt.Sprintf("events_%s.json", sanitizeTenant(tenantID))
	}
	return filepath.Join(dataDir, name)
}

// LockPath derives the sibling lock file path for a JSON document, mirroring
// original_source's lock_path_for (a dotfile named after the document).
func LockPath(documentPath string) string {
	dir := filepath.Dir(documentPath)
	base := filepath.Base(documentPath)
	return filepath.Join(dir, "."+base+".lock")
}

func sanitizeTenant(tenantID string) string {
	var b strings.Builder
	for _, r := range tenantID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return "tenant"
	}
	return out
}
