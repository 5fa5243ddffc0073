package handlers

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"path"
	"strings"
)

// ImageHandler draws a flat placeholder for every product photo. The colour
// is derived from the file name, so each picture renders the same every time.
type ImageHandler struct{}

func (ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Base(r.URL.Path)
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	sum := h.Sum32()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="240" height="300" viewBox="0 0 240 300">`+
		`<rect width="240" height="300" fill="#%06x"/>`+
		`<circle cx="120" cy="150" r="60" fill="#%06x"/></svg>`,
		sum&0xffffff, (sum>>8)&0xffffff)
}
