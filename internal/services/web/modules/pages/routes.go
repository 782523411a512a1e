package pages

import "net/http"

// registerRoutes serves GET and HEAD for path. Every other method on the same
// paths gets a localized 405.
func registerRoutes(mux *http.ServeMux, path string, catchAll bool, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(path, h.handleMethodNotAllowed)
	if !catchAll {
		mux.HandleFunc(http.MethodGet+" "+path, h.handlePage)
		return
	}
	mux.HandleFunc(http.MethodGet+" "+path+"{$}", h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+path, h.handleNotFound)
}
