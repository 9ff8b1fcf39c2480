package main

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexPage = "index.html"

// allowedPages are served from /<page> as <page>.html.
var allowedPages = map[string]bool{
	"about":        true,
	"member":       true,
	"news":         true,
	"projects":     true,
	"materials":    true,
	"publications": true,
	"login":        true,
	"admin-panel":  true,
}

type pages struct {
	root string
}

func newPages(root string) *pages {
	return &pages{root: root}
}

// serve answers a GET that matched no route: an existing asset, an
// allow-listed page, the index, or 404 with the index as body.
func (p *pages) serve(c *gin.Context) {
	clean := path.Clean("/" + c.Request.URL.Path)

	if clean == "/" {
		p.file(c, http.StatusOK, indexPage)
		return
	}

	name := strings.TrimPrefix(clean, "/")
	if allowedPages[name] && p.exists(name+".html") {
		p.file(c, http.StatusOK, name+".html")
		return
	}

	if !hidden(name) && p.exists(name) {
		c.File(filepath.Join(p.root, filepath.FromSlash(name)))
		return
	}

	p.file(c, http.StatusNotFound, indexPage)
}

// hidden reports whether any path segment is a dotfile (.env, .git/config).
func hidden(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func (p *pages) exists(name string) bool {
	info, err := os.Stat(filepath.Join(p.root, filepath.FromSlash(name)))
	return err == nil && !info.IsDir()
}

func (p *pages) file(c *gin.Context, status int, name string) {
	data, err := os.ReadFile(filepath.Join(p.root, name))
	if err != nil {
		c.String(status, http.StatusText(status))
		return
	}
	c.Data(status, "text/html; charset=utf-8", data)
}
