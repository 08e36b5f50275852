package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/api/responses"
	"github.com/nharmon/slicehaus-backend/internal/catalog"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
)

// MenuList returns the active menu, optionally filtered by ?category=.
func MenuList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var category *enums.ProductCategory
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			parsed, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			category = &parsed
		}

		products, err := svc.List(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// MenuDetail returns one product.
func MenuDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
