// Package server implements difflensd's HTTP surface: a small service that
// accepts two texts, computes a unified diff with [textdiff], and serves the
// rendered result at a short, pasteable URL.
package server

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/thehowl/cford32"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"difflens.dev/difflens"
	"difflens.dev/difflens/cmd/difflensd/internal/db"
	"difflens.dev/difflens/textdiff"
)

// Server serves the difflensd API and the rendered diff pages it backs.
type Server struct {
	// PublicURL is the externally visible base URL, used to build the
	// short links returned from POST /api/diff.
	PublicURL string
	DB        *db.DB
}

// Router builds the chi router for the service.
func (s *Server) Router() chi.Router {
	rt := chi.NewRouter()
	rt.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(time.Second*30),
	)
	rt.Post("/api/diff", s.e(s.postDiff))
	rt.Get("/{id}", s.e(s.getDiff))
	rt.Get("/{id}/info", s.e(s.getInfo))
	return rt
}

// errUsage marks handler errors that should be reported to the client as a
// 400 with a usage hint, rather than logged and reported as a 500.
var errUsage = errors.New("usage error")

func (s *Server) e(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		if errors.Is(err, errUsage) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "error: %v\nusage: POST /api/diff {\"old\": \"...\", \"new\": \"...\"}\n", err)
			return
		}
		log.Printf("request error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("500 internal server error\n"))
	}
}

const maxBodySize = 1 << 20 // 1M

// postDiff computes a diff from a JSON body {"old": ..., "new": ...} and a
// set of optional tuning fields, stores it, and responds with its short id
// and URL.
func (s *Server) postDiff(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	body := new(bytes.Buffer)
	if _, err := body.ReadFrom(r.Body); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	root := gjson.ParseBytes(body.Bytes())
	if !root.Get("old").Exists() || !root.Get("new").Exists() {
		return fmt.Errorf("%w: body must contain \"old\" and \"new\" string fields", errUsage)
	}
	old, new_ := root.Get("old").String(), root.Get("new").String()

	opts := []textdiff.Option{}
	if v := root.Get("context"); v.Exists() {
		opts = append(opts, difflens.Context(int(v.Int())))
	}
	if v := root.Get("threshold"); v.Exists() {
		opts = append(opts, textdiff.Threshold(v.Float()))
	}
	if root.Get("token_similarity").Bool() {
		opts = append(opts, textdiff.TokenSimilarity())
	}

	unified := textdiff.Unified(old, new_, opts...)

	sum := sha256.Sum256(append([]byte(old), []byte(new_)...))
	id := cford32.EncodeToStringLower(sum[:5])

	has, err := s.DB.HasDiff(id)
	if err != nil {
		return err
	}
	if !has {
		err := s.DB.PutDiff(id, db.Record{
			CreatedAt: time.Now(),
			Old:       old,
			New:       new_,
			Unified:   unified,
		})
		if err != nil {
			return err
		}
	}

	link := s.PublicURL + "/" + id
	resp, err := sjson.Set("{}", "id", id)
	if err != nil {
		return err
	}
	if resp, err = sjson.Set(resp, "url", link); err != nil {
		return err
	}
	if resp, err = sjson.Set(resp, "bytes", len(unified)); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(resp))
	return nil
}

// getDiff serves the rendered unified diff stored under id as plain text.
func (s *Server) getDiff(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	rec, err := s.DB.GetDiff(id)
	if err != nil {
		return err
	}
	if rec.IsZero() {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found\n"))
		return nil
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(rec.Unified))
	return nil
}

// getInfo reports human-readable metadata about a stored diff: how long ago
// it was computed and its rendered size.
func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	rec, err := s.DB.GetDiff(id)
	if err != nil {
		return err
	}
	if rec.IsZero() {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found\n"))
		return nil
	}

	resp, err := sjson.Set("{}", "id", id)
	if err != nil {
		return err
	}
	if resp, err = sjson.Set(resp, "created_at", rec.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	if resp, err = sjson.Set(resp, "age", humanize.Time(rec.CreatedAt)); err != nil {
		return err
	}
	if resp, err = sjson.Set(resp, "size", humanize.Bytes(uint64(len(rec.Unified)))); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(resp))
	return nil
}
