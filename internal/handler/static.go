package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Static serves files from the configured static directory. The empty
// path maps to index.html. Any request that resolves outside the root,
// before or after following symlinks, is rejected with 403; anything
// that is not an existing regular file is 404.
func (h *Handler) Static(w http.ResponseWriter, r *http.Request) {
	reqPath := strings.TrimPrefix(r.URL.Path, "/")
	if reqPath == "" {
		reqPath = "index.html"
	}

	target := filepath.Join(h.staticRoot, filepath.FromSlash(reqPath))
	if !within(h.staticRoot, target) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if !within(h.staticRootResolved, resolved) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	fi, err := os.Stat(resolved)
	if err != nil || !fi.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(resolved)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	// ServeContent rather than ServeFile: the latter re-checks the
	// raw URL path for ".." and would turn a harmless "a/../b" into
	// a 400 after we already resolved it.
	http.ServeContent(w, r, filepath.Base(resolved), fi.ModTime(), f)
}

// within reports whether path is root itself or inside it. Both
// arguments must be absolute and cleaned.
func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(os.PathSeparator))
}
