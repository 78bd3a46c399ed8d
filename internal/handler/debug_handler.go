package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"newspulse/db"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// DebugHandler exposes read-only filesystem diagnostics below a fixed root.
type DebugHandler struct {
	root   string
	target db.Target
}

func NewDebugHandler(root string, target db.Target) *DebugHandler {
	if root == "" {
		root = "."
	}
	return &DebugHandler{root: root, target: target}
}

func (h *DebugHandler) ListFiles(c *gin.Context) {
	rel := c.DefaultQuery("path", ".")
	if rel != "." && !filepath.IsLocal(rel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path must stay inside the debug root"})
		return
	}

	dir, err := h.resolve(rel)
	if errors.Is(err, errOutsideRoot) {
		slog.Warn("debug listing escapes root", "path", rel)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path must stay inside the debug root"})
		return
	}

	var entries []os.DirEntry
	if err == nil {
		entries, err = os.ReadDir(dir)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		slog.Warn("debug listing failed", "path", rel, "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	res := DirListingResponse{Path: rel, Entries: make([]DirEntryResponse, 0, len(entries))}
	for _, e := range entries {
		entry := DirEntryResponse{Name: e.Name(), IsDir: e.IsDir()}
		if info, err := e.Info(); err == nil && !e.IsDir() {
			entry.Size = info.Size()
		}
		res.Entries = append(res.Entries, entry)
	}

	c.JSON(http.StatusOK, res)
}

var errOutsideRoot = errors.New("path resolves outside the debug root")

// resolve follows symlinks in both the root and rel and rejects any result
// that is not the root or below it.
func (h *DebugHandler) resolve(rel string) (string, error) {
	root, err := realPath(h.root)
	if err != nil {
		return "", err
	}
	dir, err := realPath(filepath.Join(root, rel))
	if err != nil {
		return "", err
	}

	inside, err := filepath.Rel(root, dir)
	if err != nil || (inside != "." && !filepath.IsLocal(inside)) {
		return "", errOutsideRoot
	}
	return dir, nil
}

func realPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

func (h *DebugHandler) DatabaseInfo(c *gin.Context) {
	res := DatabaseInfoResponse{Dialect: h.target.Dialect, FilePath: h.target.FilePath()}
	if res.FilePath == "" {
		c.JSON(http.StatusOK, res)
		return
	}

	info, err := os.Stat(res.FilePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		slog.Warn("debug stat failed", "path", res.FilePath, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	default:
		res.Exists = true
		res.Size = info.Size()
	}

	c.JSON(http.StatusOK, res)
}
