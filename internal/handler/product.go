package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prodcat/prodcat-go/internal/middleware"
	"github.com/prodcat/prodcat-go/internal/model"
	"github.com/prodcat/prodcat-go/internal/service"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service  *service.ProductService
	validate *validator.Validate
	log      *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{service: svc, validate: newValidator(), log: log}
}

// HandleCreate handles POST /addProd requests.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(formatValidationError(err)))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductExists):
			writeJSON(w, http.StatusBadRequest, errorResponse("exists"))
		case isProductValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			h.internalError(w, r, "create product failed", err)
		}
		return
	}

	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		h.log.Info("product added",
			zap.String("id", p.ID),
			zap.String("prod_id", p.ProductID),
			zap.String("user_id", principal.UserID),
		)
	}

	writeJSON(w, http.StatusCreated, model.MessageResponse{Message: "added"})
}

// HandleList handles GET /getProds requests.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		h.internalError(w, r, "list products failed", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleGet handles GET /getProds/{id} requests.
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("not found"))
			return
		}
		h.internalError(w, r, "get product failed", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /updateProd/{id} requests.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(formatValidationError(err)))
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("not found"))
		case errors.Is(err, service.ErrProductExists):
			writeJSON(w, http.StatusBadRequest, errorResponse("exists"))
		case isProductValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			h.internalError(w, r, "update product failed", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /deleteProd/{id} requests.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("not found"))
			return
		}
		h.internalError(w, r, "delete product failed", err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "deleted"})
}

// HandleFeatured handles GET /getFeaturedProd requests.
func (h *ProductHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetFeatured(r.Context())
	if err != nil {
		h.internalError(w, r, "list featured products failed", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleByPrice handles GET /getByPrice/{price} requests.
func (h *ProductHandler) HandleByPrice(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetByPriceBelow(r.Context(), chi.URLParam(r, "price"))
	h.writeFiltered(w, r, products, err)
}

// HandleByRating handles GET /getByRating/{rating} requests.
func (h *ProductHandler) HandleByRating(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetByRatingAbove(r.Context(), chi.URLParam(r, "rating"))
	h.writeFiltered(w, r, products, err)
}

func (h *ProductHandler) writeFiltered(w http.ResponseWriter, r *http.Request, products []model.Product, err error) {
	if err != nil {
		if errors.Is(err, service.ErrInvalidThreshold) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		h.internalError(w, r, "filter products failed", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Error(msg, zap.String("uri", r.RequestURI), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

func isProductValidationError(err error) bool {
	return errors.Is(err, service.ErrProductIDRequired) ||
		errors.Is(err, service.ErrNameRequired) ||
		errors.Is(err, service.ErrPriceRequired) ||
		errors.Is(err, service.ErrCompanyRequired)
}
