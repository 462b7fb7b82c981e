package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Frontend отдаёт файлы собранного фронтенда из dirs (по порядку), а для
// неизвестных путей — первый найденный index.html. Неизвестные /api
// пути получают JSON 404.
func Frontend(dirs []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api" || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			respondMessage(c, http.StatusNotFound, "API route not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		clean := path.Clean("/" + c.Request.URL.Path)
		if clean != "/" && !hasHiddenSegment(clean) {
			for _, dir := range dirs {
				if file := filepath.Join(dir, filepath.FromSlash(clean)); isFile(file) {
					c.File(file)
					return
				}
			}
		}

		for _, dir := range dirs {
			if index := filepath.Join(dir, "index.html"); isFile(index) {
				c.File(index)
				return
			}
		}
		c.AbortWithStatus(http.StatusNotFound)
	}
}

// скрытые файлы (.env, .git) не отдаём
func hasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
