package httpapi

import (
	"net/http"
	"time"

	"pricewatch-engine/internal/domain"
	"pricewatch-engine/internal/export"
	"pricewatch-engine/internal/refresh"
	"pricewatch-engine/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams the CURRENT derived view as a spreadsheet, so
// what the user exports is exactly what the page shows.
type ExportHandler struct {
	Refresher *refresh.Refresher
	Items     []domain.Consultation
	Session   *Session
}

func (h ExportHandler) ModelsXLSX(w http.ResponseWriter, r *http.Request) {
	models, _, err := h.Refresher.Models(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "catalog_unavailable", err.Error())
		return
	}

	st := h.Session.ModelsState()
	applyModelOverrides(&st, r.URL.Query())
	visible := view.DeriveModels(models, st)

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="models.xlsx"`)
	if err := export.WriteModelsXLSX(visible, w); err != nil {
		// headers are gone already; all we can do is log via middleware
		return
	}
}

func (h ExportHandler) ConsultationsXLSX(w http.ResponseWriter, r *http.Request) {
	st := h.Session.ConsultationsState()
	applyConsultationOverrides(&st, r.URL.Query())
	visible := view.DeriveConsultations(h.Items, st, time.Now())

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="consultations.xlsx"`)
	_ = export.WriteConsultationsXLSX(visible, w)
}
