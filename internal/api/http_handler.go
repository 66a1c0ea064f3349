package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"spoiler-storefront/internal/checkout"
	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/mailer"
	"spoiler-storefront/internal/store"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	products       store.ProductStorer
	customizations store.CustomizationStorer
	orders         store.OrderStorer
	contacts       store.ContactStorer
	checkout       *checkout.Service
	mailer         mailer.Mailer
	validate       *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(
	ps store.ProductStorer,
	cs store.CustomizationStorer,
	os store.OrderStorer,
	ct store.ContactStorer,
	chk *checkout.Service,
	m mailer.Mailer,
) *HTTPHandler {
	return &HTTPHandler{
		products:       ps,
		customizations: cs,
		orders:         os,
		contacts:       ct,
		checkout:       chk,
		mailer:         m,
		validate:       checkout.NewValidator(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses. Errors is
// populated for validation failures with one entry per offending field.
type ErrorResponse struct {
	Message string                `json:"message"`
	Errors  []checkout.FieldError `json:"errors,omitempty"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Message: message})
}

func respondWithFieldErrors(w http.ResponseWriter, code int, message string, fields []checkout.FieldError) {
	respondWithJSON(w, code, ErrorResponse{Message: message, Errors: fields})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"message": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// --- Product Handlers ---

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var (
		products []domain.Product
		err      error
	)
	if category != "" {
		products, err = h.products.ListProductsByCategory(r.Context(), category)
	} else {
		products, err = h.products.ListProducts(r.Context())
	}
	if err != nil {
		log.Printf("ERROR: ListProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.products.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("ERROR: GetProductByID store operation for ID %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

// --- Customization Handlers ---

func (h *HTTPHandler) ListCustomizations(w http.ResponseWriter, r *http.Request) {
	var (
		customizations []domain.Customization
		err            error
	)
	if productIDStr := r.URL.Query().Get("productId"); productIDStr != "" {
		productID, parseErr := strconv.ParseInt(productIDStr, 10, 64)
		if parseErr != nil || productID <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid productId format")
			return
		}
		customizations, err = h.customizations.ListCustomizationsByProduct(r.Context(), productID)
	} else {
		customizations, err = h.customizations.ListCustomizations(r.Context())
	}
	if err != nil {
		log.Printf("ERROR: ListCustomizations store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch customizations")
		return
	}
	if customizations == nil {
		customizations = []domain.Customization{}
	}
	respondWithJSON(w, http.StatusOK, customizations)
}

// --- Order Handlers ---

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: ListOrders store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondWithJSON(w, http.StatusOK, orders)
}

// OrderWithItems is the GET /api/orders/{id} response: the order with its
// items embedded.
type OrderWithItems struct {
	domain.Order
	Items []domain.OrderItem `json:"items"`
}

func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || orderID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orders.GetOrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("ERROR: GetOrderByID store operation for ID %d failed: %v", orderID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	items, err := h.orders.ListOrderItems(r.Context(), orderID)
	if err != nil {
		log.Printf("ERROR: ListOrderItems store operation for order %d failed: %v", orderID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	if items == nil {
		items = []domain.OrderItem{}
	}
	respondWithJSON(w, http.StatusOK, OrderWithItems{Order: *order, Items: items})
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input checkout.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	order, _, err := h.checkout.PlaceOrder(r.Context(), input)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			respondWithFieldErrors(w, http.StatusBadRequest, "Invalid order data", verr.Fields)
		case errors.Is(err, checkout.ErrPriceIntegrity):
			respondWithError(w, http.StatusBadRequest, "Order total does not match its items")
		case errors.Is(err, store.ErrInvalidOrderItem):
			respondWithError(w, http.StatusBadRequest, "Invalid order data")
		default:
			log.Printf("ERROR: CreateOrder workflow failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

// OrderStatusInput defines the expected input for a status update.
type OrderStatusInput struct {
	Status string `json:"status"`
}

func (h *HTTPHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || orderID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input OrderStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if input.Status == "" {
		respondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}
	if !domain.ValidStatus(input.Status) {
		respondWithError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), orderID, input.Status)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("ERROR: UpdateOrderStatus store operation for ID %d failed: %v", orderID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	respondWithJSON(w, http.StatusOK, order)
}

// --- Contact Handlers ---

// ContactCreateInput defines the expected input for a contact submission.
type ContactCreateInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty"`
	Subject string  `json:"subject" validate:"required"`
	Message string  `json:"message" validate:"required"`
}

func (h *HTTPHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var input ContactCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithFieldErrors(w, http.StatusBadRequest, "Invalid contact data", checkout.FieldErrors(err).Fields)
		return
	}

	contact := &domain.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
	}
	created, err := h.contacts.CreateContact(r.Context(), contact)
	if err != nil {
		log.Printf("ERROR: CreateContact store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	if err := h.mailer.SendContactNotification(created); err != nil {
		log.Printf("WARN: contact %d notification mail failed: %v", created.ID, err)
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.ListContacts(r.Context())
	if err != nil {
		log.Printf("ERROR: ListContacts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	respondWithJSON(w, http.StatusOK, contacts)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)               // GET /api/products?category=
		r.Get("/{productId}", h.GetProductByID)  // GET /api/products/{productId}
	})

	r.Get("/api/customizations", h.ListCustomizations) // GET /api/customizations?productId=

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)    // GET /api/orders
		r.Post("/", h.CreateOrder)  // POST /api/orders
		r.Route("/{orderId}", func(r chi.Router) {
			r.Get("/", h.GetOrderByID)                // GET /api/orders/{orderId}
			r.Patch("/status", h.UpdateOrderStatus)   // PATCH /api/orders/{orderId}/status
		})
	})

	r.Route("/api/contacts", func(r chi.Router) {
		r.Post("/", h.CreateContact) // POST /api/contacts
		r.Get("/", h.ListContacts)   // GET /api/contacts
	})
}
