// Package server serves a sticker directory the way the catalog expects to
// find it: assets under /stickers/ and a generated /stickers/index.json.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	dir   string
	addr  string
	index *IndexCache
}

func New(dir, addr string) *Server {
	return &Server{
		dir:   dir,
		addr:  addr,
		index: NewIndexCache(os.DirFS(dir)),
	}
}

func (s *Server) Index() *IndexCache { return s.index }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /stickers/index.json", s.serveIndex)
	mux.Handle("GET /stickers/", http.StripPrefix("/stickers/", http.FileServer(http.Dir(s.dir))))
	return logRequests(mux)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	data, err := s.index.Get()
	if err != nil {
		log.Printf("server: %v", err)
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if fi, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("sticker dir: %w", err)
	} else if !fi.IsDir() {
		return fmt.Errorf("sticker dir %s is not a directory", s.dir)
	}

	if err := s.Watch(ctx); err != nil {
		log.Printf("server: index will not refresh: %v", err)
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	log.Printf("server: serving %s on http://%s/stickers/", s.dir, ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("server: %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
