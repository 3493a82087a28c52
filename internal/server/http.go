package server

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/hanashi/internal/db"
	"github.com/mithrel/hanashi/internal/library"
	"github.com/mithrel/hanashi/internal/markup"
	"github.com/mithrel/hanashi/internal/present/format"
)

// Server serves the read API and the chapter reader pages.
type Server struct {
	cfg *viper.Viper
	lib *library.Library
	log *log.Logger
}

func New(cfg *viper.Viper, lib *library.Library, logger *log.Logger) *Server {
	return &Server{cfg: cfg, lib: lib, log: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /v1/stories", s.handleList)
	mux.HandleFunc("POST /v1/stories", s.auth(s.handleCreate))
	mux.HandleFunc("GET /v1/stories/{id}", s.handleShow)
	mux.HandleFunc("GET /v1/stories/{id}/chapters/{n}", s.handleChapter)
	return mux
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(s.cfg.GetString("auth.token"))
		got := r.Header.Get("Authorization")
		if tok == "" || !strings.HasPrefix(got, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")) != tok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	sums, err := s.lib.List(r.Context(), 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = format.WriteJSONSummaries(w, sums, false)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	story, err := s.lib.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = format.WriteJSONStory(w, story, false)
}

// handleCreate accepts a raw filled template in the request body and
// imports it as a new story.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	story, err := s.lib.ImportStory(r.Context(), raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.log.Printf("created story id=%s", story.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = format.WriteJSONStory(w, story, false)
}

const maxTemplateBytes = 1 << 20

func readBody(r *http.Request) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxTemplateBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var chapterPage = template.Must(template.New("chapter").Parse(`<!doctype html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Position}}</p>
<article>
{{.Body}}
</article>
{{if .Vocabulary}}<h2>重要単語</h2>
<dl>
{{range .Vocabulary}}<dt>{{.Word}}</dt><dd>{{.Meaning}}</dd>
{{end}}</dl>
{{end}}{{if .Translation}}<h2>日本語訳</h2>
<article>
{{.Translation}}
</article>
{{end}}</body>
</html>
`))

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	story, err := s.lib.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 || n > len(story.Chapters) {
		http.Error(w, "chapter not found", http.StatusNotFound)
		return
	}
	ch := story.Chapters[n-1]

	data := struct {
		Title       string
		Position    string
		Body        template.HTML
		Vocabulary  []struct{ Word, Meaning string }
		Translation template.HTML
	}{
		Title:    story.Title,
		Position: fmt.Sprintf("%d / %d", n, len(story.Chapters)),
		Body:     markup.Render(ch.Body),
	}
	for _, v := range ch.Vocabulary {
		data.Vocabulary = append(data.Vocabulary, struct{ Word, Meaning string }{v.Word, v.Meaning})
	}
	if strings.TrimSpace(ch.Translation) != "" {
		data.Translation = markup.Render(ch.Translation)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chapterPage.Execute(w, data); err != nil {
		s.log.Printf("render chapter page: %v", err)
	}
}
