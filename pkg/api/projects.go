package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/project"
	"github.com/matzehuels/gridsmith/pkg/store"
)

type listResponse struct {
	Projects []store.Summary `json:"projects"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Projects: list})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p project.Project
	if err := decode(w, r, &p); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	// The server assigns IDs for new projects.
	p.ID = ""
	doc, err := s.store.Put(r.Context(), p)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set("Location", "/v1/projects/"+doc.ID)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p project.Project
	if err := decode(w, r, &p); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if p.ID != "" && p.ID != id {
		writeError(w, r, s.logger, errors.New(errors.ErrCodeInvalidInput,
			"body id %q does not match path id %q", p.ID, id))
		return
	}
	p.ID = id
	doc, err := s.store.Put(r.Context(), p)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateProject(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.generate(w, r, doc.Project)
}
