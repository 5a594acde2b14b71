package api

import (
	"net/http"

	"github.com/filmoteca/filmoteca/web"
)

// StaticHandler serves the embedded browser client; index.html answers "/".
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(web.FS))
}
