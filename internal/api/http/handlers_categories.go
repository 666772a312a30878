package apihttp

import (
	"errors"
	"net/http"

	"bonarr/internal/domain"
)

type categoryError struct {
	Error string `json:"error"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.categories.List())
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parseRequestForm(r)

	name := formValue(r, categoryNameAliases)
	savePath := formValue(r, createSavePathAliases)

	if err := s.categories.Create(name, savePath); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, categoryError{Error: "category required"})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writePlain(w, http.StatusOK, "Ok.")
}

func (s *Server) handleRemoveCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parseRequestForm(r)

	s.categories.Remove(splitPipeList(formValue(r, removeCategoryAliases)))
	w.WriteHeader(http.StatusOK)
}
