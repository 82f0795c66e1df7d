package server

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/Tomlord1122/todo-web/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Todos []service.TodoResponse
	Error string
}

func (s *Server) renderIndex(ctx context.Context, errMsg string) ([]byte, error) {
	todos, err := s.todoService.ListTodos(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, indexPage{Todos: todos, Error: errMsg}); err != nil {
		log.Printf("Error executing index template: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// indexHandler serves the list page, from the view cache when it is fresh.
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if page, ok := s.views.Get(service.ListPath); ok {
		respondWithHTML(w, http.StatusOK, page)
		return
	}

	// captured before the store is read; a create that lands mid-render
	// makes the write below a no-op
	gen := s.views.Generation(service.ListPath)
	page, err := s.renderIndex(r.Context(), "")
	if err != nil {
		http.Error(w, "Failed to retrieve todos", http.StatusInternalServerError)
		return
	}
	s.views.SetIfUnchanged(service.ListPath, gen, page)
	respondWithHTML(w, http.StatusOK, page)
}

// submitTodoHandler is the form target. Blank titles and successful
// creates both redirect back to the list.
func (s *Server) submitTodoHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	res := s.todoService.SubmitNewTodo(r.Context(), r.PostForm.Get("title"))
	if !res.OK() {
		page, err := s.renderIndex(r.Context(), res.Error)
		if err != nil {
			http.Error(w, res.Error, http.StatusInternalServerError)
			return
		}
		respondWithHTML(w, http.StatusInternalServerError, page)
		return
	}

	http.Redirect(w, r, service.ListPath, http.StatusSeeOther)
}

func respondWithHTML(w http.ResponseWriter, code int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(page)
}
