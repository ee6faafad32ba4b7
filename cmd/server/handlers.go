package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/printstock/internal/export"
	"github.com/Simplici0/printstock/internal/form"
	"github.com/Simplici0/printstock/internal/pricing"
)

func (s *server) handlePresetGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.inv.Preset(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handlePresetUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	p, err := s.inv.UpdatePreset(r.Context(), parsePresetForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleFilamentsList(w http.ResponseWriter, r *http.Request) {
	activeOnly := form.Bool(r.URL.Query().Get("active"))
	filaments, err := s.inv.ListFilaments(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filaments)
}

func (s *server) handleFilamentCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	f, err := s.inv.CreateFilament(r.Context(), parseFilamentForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *server) handleFilamentUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := filamentIDParam(r)
	if !ok {
		badRequest(w, "invalid filament id")
		return
	}
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	f, err := s.inv.UpdateFilament(r.Context(), id, parseFilamentForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *server) handleFilamentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := filamentIDParam(r)
	if !ok {
		badRequest(w, "invalid filament id")
		return
	}

	if err := s.inv.DeleteFilament(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleItemDefaults(w http.ResponseWriter, r *http.Request) {
	in, err := s.inv.Defaults(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	res, err := s.inv.Quote(r.Context(), parseItemForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleItemsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.inv.ListItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	it, err := s.inv.CreateItem(r.Context(), parseItemForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/items/"+it.ID)
	writeJSON(w, http.StatusCreated, it)
}

func (s *server) handleItemDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.inv.ItemDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	detail, err := s.inv.UpdateItem(r.Context(), chi.URLParam(r, "id"), parseItemForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.inv.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleVariationPreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	v, err := s.inv.PreviewVariation(r.Context(), chi.URLParam(r, "id"), parseVariationForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *server) handleVariationsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "invalid form")
		return
	}

	saved, err := s.inv.SaveVariations(r.Context(), chi.URLParam(r, "id"), parseVariationsForm(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// matrixRows reads weight_grams and print_minutes from the query. When both
// are absent the item's own print is compared.
func (s *server) matrixRows(r *http.Request) ([]pricing.Row, error) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	rawWeight, rawMinutes := q.Get("weight_grams"), q.Get("print_minutes")

	if strings.TrimSpace(rawWeight) == "" && strings.TrimSpace(rawMinutes) == "" {
		return s.inv.ItemMatrix(r.Context(), id)
	}
	return s.inv.FilamentMatrix(r.Context(), id, form.Number(rawWeight), form.Number(rawMinutes))
}

func (s *server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	rows, err := s.matrixRows(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *server) handleMatrixXLSX(w http.ResponseWriter, r *http.Request) {
	rows, err := s.matrixRows(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteMatrix(&buf, rows); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "matriz-"+chi.URLParam(r, "id")+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
