package presentation

import (
	"bufio"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/RaikyD/parcel-orders/internal/application"
	"github.com/RaikyD/parcel-orders/internal/domain"
	"github.com/RaikyD/parcel-orders/internal/logger"
	"github.com/RaikyD/parcel-orders/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

var errNoFilePart = errors.New(`multipart body has no "file" part`)

type OrdersHandler struct {
	svc *application.OrdersService
}

func NewOrdersHandler(svc *application.OrdersService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Route("/users/{userID}/orders", func(r chi.Router) {
		r.Get("/", h.ListUserOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/stats", h.UserStats)
		r.Post("/generate", h.GenerateOrders)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListAll)
		r.Get("/{id}", h.GetOrder)
		r.Get("/{id}/progress", h.GetProgress)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Delete("/{id}", h.DeleteOrder)
	})
}

func (h *OrdersHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	q := r.URL.Query()

	orders, err := h.svc.ListUserOrders(r.Context(), userID, q.Get("q"), q.Get("status"))
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.UserStats(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, s)
}

func (h *OrdersHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAll(r.Context())
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, orders)
}

// тут мы будем рассматривать 3 юзер кейса:
// - application/json:   тело сразу объект domain.NewOrder
// - text/plain:         тело — строка JSON (парсим)
// - multipart/form-data: ожидаем файл в поле "file" (parsing .json)
//
// userId всегда берётся из пути.
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	mediatype, params, _ := mime.ParseMediaType(ct)

	var data domain.NewOrder
	var readErr error

	switch mediatype {
	case "application/json":
		readErr = helpers.DecodeJSON(r.Body, &data)

	case "text/plain":
		readErr = helpers.DecodeJSON(r.Body, &data)

	case "multipart/form-data":
		readErr = errNoFilePart
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				readErr = err
				break
			}
			if part.FormName() != "file" {
				continue
			}
			bufr := bufio.NewReader(part)
			readErr = helpers.DecodeJSON(bufr, &data)
			_ = part.Close()
			break
		}
	default:
		helpers.HttpError(w, http.StatusUnsupportedMediaType, "unsupported content-type")
		return
	}

	if readErr != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+readErr.Error())
		return
	}
	if data.Status != "" && !data.Status.IsValid() {
		helpers.HttpError(w, http.StatusBadRequest, "unknown status: "+string(data.Status))
		return
	}

	data.UserID = chi.URLParam(r, "userID")
	o, err := h.svc.CreateOrder(r.Context(), data)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to add order")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		helpers.HttpError(w, http.StatusBadRequest, "id is empty")
		return
	}

	ord, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if ord == nil {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ord)
}

func (h *OrdersHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Progress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if p == nil {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		helpers.HttpError(w, http.StatusBadRequest, "unknown status: "+req.Status)
		return
	}

	found, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if !found {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteNoContent(w)
}

func (h *OrdersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.DeleteOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}
	if !found {
		helpers.HttpError(w, http.StatusNotFound, "order not found")
		return
	}
	helpers.WriteNoContent(w)
}

func (h *OrdersHandler) GenerateOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	q := r.URL.Query().Get("count")
	n := 1
	if q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 && v <= 1000 {
			n = v
		}
	}

	created := make([]string, 0, n)
	for i := 0; i < n; i++ {
		o, err := h.svc.CreateOrder(r.Context(), genDemoOrder(userID, i))
		if err != nil {
			logger.Warn("generate: add failed", "err", err)
			continue
		}
		created = append(created, o.ID)
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status":      "ok",
		"created_ids": created,
	})
}

var demoCountries = []string{"Poland", "Germany", "Ukraine", "Czechia"}

var demoItems = []domain.Item{
	{ID: "demo-lamp", Title: "Desk lamp", Price: decimal.RequireFromString("24.99"), Quantity: 1, Currency: "USD", OriginCountry: "China"},
	{ID: "demo-chair", Title: "Office chair", Price: decimal.RequireFromString("89.5"), Quantity: 1, Currency: "USD", OriginCountry: "Poland"},
	{ID: "demo-cable", Title: "USB-C cable", Price: decimal.RequireFromString("6.4"), Quantity: 3, Currency: "USD", OriginCountry: "China"},
}

func genDemoOrder(userID string, i int) domain.NewOrder {
	item := demoItems[i%len(demoItems)]
	total := item.Subtotal()
	return domain.NewOrder{
		UserID:          userID,
		UserName:        "Demo User",
		DeliveryCountry: demoCountries[i%len(demoCountries)],
		Items:           []domain.Item{item},
		Status:          domain.StatusCreated,
		TotalPrice:      &total,
	}
}
