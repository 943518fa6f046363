package controllers

import (
	"net/http"

	"github.com/enginequip/quotation-backend/api/middleware"
	"github.com/enginequip/quotation-backend/api/responses"
	"github.com/enginequip/quotation-backend/api/validators"
	"github.com/enginequip/quotation-backend/internal/quotations"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/enginequip/quotation-backend/pkg/logger"
)

func draftUsername(r *http.Request) (string, error) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return username, nil
}

// DraftResume returns the caller's retained draft, or a fresh one.
func DraftResume(svc quotations.DraftService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := draftUsername(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Resume(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DraftSave validates and retains the submitted draft snapshot, returning
// the normalized state with a fresh pricing breakdown.
func DraftSave(svc quotations.DraftService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := draftUsername(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var snapshot quotations.Snapshot
		if err := validators.DecodeJSONBody(r, &snapshot); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Save(r.Context(), username, snapshot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DraftDiscard drops the caller's retained draft.
func DraftDiscard(svc quotations.DraftService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := draftUsername(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Discard(r.Context(), username); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "discarded"})
	}
}

// DraftSubmit turns the retained draft into a persisted quotation.
func DraftSubmit(svc quotations.DraftService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := draftUsername(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Submit(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}
