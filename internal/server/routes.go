package server

import "net/http"

func registerRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("/", methodOnly(http.MethodGet, h.handleRoot))
	mux.HandleFunc("/health", methodOnly(http.MethodGet, h.handleHealth))
	mux.HandleFunc("/ask", methodOnly(http.MethodPost, h.handleAsk))
	mux.HandleFunc("/ask/free", methodOnly(http.MethodPost, h.handleAskFree))
	mux.HandleFunc("/generate-image", methodOnly(http.MethodPost, h.handleGenerateImage))
	mux.HandleFunc("/text-to-speech", methodOnly(http.MethodPost, h.handleTextToSpeech))
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// corsMiddleware mirrors the permissive CORS policy the hosted backend
// runs with so browser frontends can call it from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
