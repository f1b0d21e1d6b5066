/*
handlers.go - HTTP handlers for the bookkeeping API

PURPOSE:
  Exposes the bookkeeping core over REST. Handlers parse the request,
  validate input, delegate to the ledger packages, and serialize the
  response. The screens of the original app map one-to-one onto these
  endpoints.

ENDPOINTS:
  Earnings/Expenses:
    GET/POST   /api/earnings            GET/POST /api/expenses
    DELETE     /api/earnings/{id}       DELETE   /api/expenses/{id}
    POST       /api/earnings/archive    Archive current month

  Archive:
    GET        /api/archive             Month labels
    GET        /api/archive/{month}     One month's records + total
    DELETE     /api/archive/{month}     Drop one month

  Catalog:
    GET/POST   /api/items    PUT/DELETE /api/items/{id}
    GET/POST   /api/shops    DELETE     /api/shops/{id}

  Ledgers:
    GET        /api/customers            POST /api/customers/purchases
    DELETE     /api/customers/{id}
    GET/POST   /api/orders               DELETE /api/orders/{id}
    GET        /api/orders/{id}/bill     Rendered HTML bill

  Stats:
    GET        /api/stats

ERROR HANDLING:
  - 400: Validation errors, malformed JSON or ids
  - 404: Missing record or archive month (checked here; the repository
         itself treats missing ids as a no-op)
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anjanadri/bakebook/bill"
	"github.com/anjanadri/bakebook/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo      *ledger.Repository
	Customers *ledger.CustomerLedger
	Orders    *ledger.OrderLedger
	Archive   *ledger.ArchivalService

	// Business is the name printed on bills.
	Business string
}

// NewHandler wires the ledgers and services around one repository.
func NewHandler(repo *ledger.Repository) *Handler {
	return &Handler{
		Repo:      repo,
		Customers: ledger.NewCustomerLedger(repo),
		Orders:    ledger.NewOrderLedger(repo),
		Archive:   ledger.NewArchivalService(repo),
		Business:  bill.DefaultBusiness,
	}
}

// =============================================================================
// EARNINGS / EXPENSES
// =============================================================================

// ListEarnings returns all active earnings.
// GET /api/earnings
func (h *Handler) ListEarnings(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, ledger.KeyEarnings)
}

// AddEarning records a new earning.
// POST /api/earnings
func (h *Handler) AddEarning(w http.ResponseWriter, r *http.Request) {
	h.addEntry(w, r, ledger.KeyEarnings)
}

// DeleteEarning removes one earning by id.
// DELETE /api/earnings/{id}
func (h *Handler) DeleteEarning(w http.ResponseWriter, r *http.Request) {
	h.deleteEntry(w, r, ledger.KeyEarnings)
}

// ListExpenses returns all expenses.
// GET /api/expenses
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, ledger.KeyExpenses)
}

// AddExpense records a new expense.
// POST /api/expenses
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	h.addEntry(w, r, ledger.KeyExpenses)
}

// DeleteExpense removes one expense by id.
// DELETE /api/expenses/{id}
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.deleteEntry(w, r, ledger.KeyExpenses)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request, key string) {
	entries, err := ledger.Load[ledger.Entry](r.Context(), h.Repo, key)
	if err != nil {
		h.writeDomainError(w, "Failed to load "+key, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

func (h *Handler) addEntry(w http.ResponseWriter, r *http.Request, key string) {
	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "Amount must not be negative", nil)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		date = parsed
	}

	entry := ledger.Entry{ID: ledger.NewID(), Date: date, Amount: req.Amount}
	if err := ledger.Append(r.Context(), h.Repo, key, entry); err != nil {
		h.writeDomainError(w, "Failed to save "+key, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request, key string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}
	_, found, err := ledger.FindByID[ledger.Entry](r.Context(), h.Repo, key, id)
	if err != nil {
		h.writeDomainError(w, "Failed to load "+key, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Record not found", nil)
		return
	}
	if err := ledger.DeleteByID[ledger.Entry](r.Context(), h.Repo, key, id); err != nil {
		h.writeDomainError(w, "Failed to delete from "+key, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ARCHIVE
// =============================================================================

// ArchiveEarnings files the active earnings under the current month
// label and clears them.
// POST /api/earnings/archive
func (h *Handler) ArchiveEarnings(w http.ResponseWriter, r *http.Request) {
	label, err := h.Archive.ArchiveCurrentMonth(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to archive earnings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"month": label})
}

// ListArchivedMonths returns the archived month labels.
// GET /api/archive
func (h *Handler) ListArchivedMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.Archive.Months(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to load archive", err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// GetArchivedMonth returns one month's records and total.
// GET /api/archive/{month}
func (h *Handler) GetArchivedMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	ok, err := h.Archive.HasMonth(r.Context(), month)
	if err != nil {
		h.writeDomainError(w, "Failed to load archive", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Month not archived", nil)
		return
	}
	entries, err := h.Archive.MonthEntries(r.Context(), month)
	if err != nil {
		h.writeDomainError(w, "Failed to load archive", err)
		return
	}
	total := ledger.Sum(entries)
	writeJSON(w, http.StatusOK, ArchiveMonthDTO{
		Month:        month,
		Entries:      toEntryDTOs(entries),
		Total:        total,
		TotalDisplay: total.StringFixed2(),
	})
}

// DeleteArchivedMonth drops one month from the archive.
// DELETE /api/archive/{month}
func (h *Handler) DeleteArchivedMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	ok, err := h.Archive.HasMonth(r.Context(), month)
	if err != nil {
		h.writeDomainError(w, "Failed to load archive", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Month not archived", nil)
		return
	}
	if err := h.Archive.DeleteMonth(r.Context(), month); err != nil {
		h.writeDomainError(w, "Failed to delete month", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ITEMS
// =============================================================================

// ListItems returns the item catalog.
// GET /api/items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := ledger.Load[ledger.Item](r.Context(), h.Repo, ledger.KeyItems)
	if err != nil {
		h.writeDomainError(w, "Failed to load items", err)
		return
	}
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateItem adds a catalog item.
// POST /api/items
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Item name is required", nil)
		return
	}
	if req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "Price must not be negative", nil)
		return
	}

	item := ledger.Item{ID: ledger.NewID(), Name: req.Name, Price: req.Price}
	if err := ledger.Append(r.Context(), h.Repo, ledger.KeyItems, item); err != nil {
		h.writeDomainError(w, "Failed to save item", err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemDTO(item))
}

// UpdateItem modifies an item's name and/or price in place. The id is
// stable across modification.
// PUT /api/items/{id}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "Price must not be negative", nil)
		return
	}

	_, found, err := ledger.FindByID[ledger.Item](r.Context(), h.Repo, ledger.KeyItems, id)
	if err != nil {
		h.writeDomainError(w, "Failed to load items", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Item not found", nil)
		return
	}

	err = ledger.UpdateByID(r.Context(), h.Repo, ledger.KeyItems, id, func(it ledger.Item) ledger.Item {
		if strings.TrimSpace(req.Name) != "" {
			it.Name = req.Name
		}
		if req.Price != nil {
			it.Price = *req.Price
		}
		return it
	})
	if err != nil {
		h.writeDomainError(w, "Failed to update item", err)
		return
	}

	updated, _, err := ledger.FindByID[ledger.Item](r.Context(), h.Repo, ledger.KeyItems, id)
	if err != nil {
		h.writeDomainError(w, "Failed to load items", err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(updated))
}

// DeleteItem removes a catalog item. Historical purchases keep the old
// name; they reference items by value, not by id.
// DELETE /api/items/{id}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, ledger.KeyItems, func(r *http.Request, id int64) (bool, error) {
		_, found, err := ledger.FindByID[ledger.Item](r.Context(), h.Repo, ledger.KeyItems, id)
		return found, err
	}, func(r *http.Request, id int64) error {
		return ledger.DeleteByID[ledger.Item](r.Context(), h.Repo, ledger.KeyItems, id)
	})
}

// =============================================================================
// SHOPS
// =============================================================================

// ListShops returns all shops.
// GET /api/shops
func (h *Handler) ListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := ledger.Load[ledger.Shop](r.Context(), h.Repo, ledger.KeyShops)
	if err != nil {
		h.writeDomainError(w, "Failed to load shops", err)
		return
	}
	dtos := make([]ShopDTO, len(shops))
	for i, s := range shops {
		dtos[i] = ShopDTO{ID: s.ID, Name: s.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateShop adds a shop.
// POST /api/shops
func (h *Handler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var req AddShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Shop name is required", nil)
		return
	}

	shop := ledger.Shop{ID: ledger.NewID(), Name: req.Name}
	if err := ledger.Append(r.Context(), h.Repo, ledger.KeyShops, shop); err != nil {
		h.writeDomainError(w, "Failed to save shop", err)
		return
	}
	writeJSON(w, http.StatusCreated, ShopDTO{ID: shop.ID, Name: shop.Name})
}

// DeleteShop removes a shop. Open orders keep the shop name snapshot.
// DELETE /api/shops/{id}
func (h *Handler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, ledger.KeyShops, func(r *http.Request, id int64) (bool, error) {
		_, found, err := ledger.FindByID[ledger.Shop](r.Context(), h.Repo, ledger.KeyShops, id)
		return found, err
	}, func(r *http.Request, id int64) error {
		return ledger.DeleteByID[ledger.Shop](r.Context(), h.Repo, ledger.KeyShops, id)
	})
}

// =============================================================================
// CUSTOMERS
// =============================================================================

// ListCustomers returns all customers with their purchase ledgers.
// GET /api/customers
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.Customers(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to load customers", err)
		return
	}
	dtos := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = toCustomerDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RecordPurchase adds a purchase to a customer's ledger. The unit price
// comes from the item catalog, matched by exact name.
// POST /api/customers/purchases
func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req RecordPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	price, found, err := h.itemPrice(r, req.Item)
	if err != nil {
		h.writeDomainError(w, "Failed to load items", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Item not found", nil)
		return
	}

	customer, err := h.Customers.RecordPurchase(r.Context(), req.Customer, req.Item, req.Quantity, price)
	if err != nil {
		h.writeDomainError(w, "Failed to record purchase", err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// DeleteCustomer removes a customer and their ledger.
// DELETE /api/customers/{id}
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, ledger.KeyCustomers, func(r *http.Request, id int64) (bool, error) {
		_, found, err := ledger.FindByID[ledger.Customer](r.Context(), h.Repo, ledger.KeyCustomers, id)
		return found, err
	}, func(r *http.Request, id int64) error {
		return h.Customers.DeleteCustomer(r.Context(), id)
	})
}

// =============================================================================
// ORDERS
// =============================================================================

// ListOrders returns all open shop orders with bill totals.
// GET /api/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.Orders(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to load orders", err)
		return
	}
	dtos := make([]OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toOrderDTO(o)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RecordOrder appends an item to a shop's open order. The unit price
// comes from the item catalog, matched by exact name.
// POST /api/orders
func (h *Handler) RecordOrder(w http.ResponseWriter, r *http.Request) {
	var req RecordOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	price, found, err := h.itemPrice(r, req.Item)
	if err != nil {
		h.writeDomainError(w, "Failed to load items", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Item not found", nil)
		return
	}

	order, err := h.Orders.RecordOrder(r.Context(), req.Shop, req.Item, req.Quantity, price)
	if err != nil {
		h.writeDomainError(w, "Failed to record order", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// ClearOrder removes an order - the bill is paid.
// DELETE /api/orders/{id}
func (h *Handler) ClearOrder(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, ledger.KeyOrders, func(r *http.Request, id int64) (bool, error) {
		_, found, err := h.Orders.Order(r.Context(), id)
		return found, err
	}, func(r *http.Request, id int64) error {
		return h.Orders.ClearOrder(r.Context(), id)
	})
}

// GetOrderBill renders the HTML bill for an open order.
// GET /api/orders/{id}/bill
func (h *Handler) GetOrderBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}
	order, found, err := h.Orders.Order(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to load orders", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Order not found", nil)
		return
	}

	html, err := bill.FromOrder(order, h.Business, time.Now()).HTML()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render bill", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// =============================================================================
// STATS
// =============================================================================

// GetStats returns totals, averages, and net profit over the active
// earnings and expenses.
// GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	earnings, err := ledger.Load[ledger.Entry](r.Context(), h.Repo, ledger.KeyEarnings)
	if err != nil {
		h.writeDomainError(w, "Failed to load earnings", err)
		return
	}
	expenses, err := ledger.Load[ledger.Entry](r.Context(), h.Repo, ledger.KeyExpenses)
	if err != nil {
		h.writeDomainError(w, "Failed to load expenses", err)
		return
	}

	s := ledger.Summarize(earnings, expenses)
	writeJSON(w, http.StatusOK, SummaryDTO{
		TotalEarnings:   s.TotalEarnings,
		TotalExpenses:   s.TotalExpenses,
		AverageEarnings: s.AverageEarnings,
		AverageExpenses: s.AverageExpenses,
		Net:             s.Net,
		NetDisplay:      s.Net.StringFixed2(),
		Profitable:      s.Profitable,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) itemPrice(r *http.Request, name string) (ledger.Money, bool, error) {
	items, err := ledger.Load[ledger.Item](r.Context(), h.Repo, ledger.KeyItems)
	if err != nil {
		return ledger.Money{}, false, err
	}
	for _, it := range items {
		if it.Name == name {
			return it.Price, true, nil
		}
	}
	return ledger.Money{}, false, nil
}

// deleteRecord is the shared existence-check-then-delete flow. The
// repository itself treats a missing id as a no-op; the 404 lives here.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request, key string,
	exists func(*http.Request, int64) (bool, error),
	remove func(*http.Request, int64) error) {

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return
	}
	found, err := exists(r, id)
	if err != nil {
		h.writeDomainError(w, "Failed to load "+key, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Record not found", nil)
		return
	}
	if err := remove(r, id); err != nil {
		h.writeDomainError(w, "Failed to delete from "+key, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case ledger.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case ledger.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toEntryDTO(e ledger.Entry) EntryDTO {
	return EntryDTO{
		ID:            e.ID,
		Date:          e.Date.Format(time.RFC3339),
		Amount:        e.Amount,
		AmountDisplay: e.Amount.StringFixed2(),
	}
}

func toEntryDTOs(entries []ledger.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	return dtos
}

func toItemDTO(it ledger.Item) ItemDTO {
	return ItemDTO{ID: it.ID, Name: it.Name, Price: it.Price, PriceDisplay: it.Price.StringFixed2()}
}

func toCustomerDTO(c ledger.Customer) CustomerDTO {
	purchases := make([]PurchaseDTO, len(c.Purchases))
	for i, p := range c.Purchases {
		purchases[i] = PurchaseDTO{
			Item:        p.Item,
			Quantity:    p.Quantity,
			Cost:        p.Cost,
			CostDisplay: p.Cost.StringFixed2(),
		}
	}
	return CustomerDTO{
		ID:           c.ID,
		Name:         c.Name,
		Purchases:    purchases,
		Total:        c.Total,
		TotalDisplay: c.Total.StringFixed2(),
	}
}

func toOrderDTO(o ledger.Order) OrderDTO {
	items := make([]OrderItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemDTO{
			Name:        it.Name,
			Quantity:    it.Quantity,
			Cost:        it.Cost,
			CostDisplay: it.Cost.StringFixed2(),
		}
	}
	total := ledger.BillTotal(o)
	return OrderDTO{
		ID:           o.ID,
		Shop:         o.Shop,
		Items:        items,
		Total:        total,
		TotalDisplay: total.StringFixed2(),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
