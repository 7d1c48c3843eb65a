package pos

import (
	"errors"
	"net/http"
	"strconv"

	"rasoipos/internal/settlement"
	"rasoipos/internal/ticket"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// RegisterRoutes wires the terminal surface onto an authenticated group.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/tickets", h.ListTickets)
	g.POST("/tickets", h.CreateTicket)
	g.DELETE("/tickets/:id", h.CloseTicket)
	g.POST("/tickets/:id/activate", h.ActivateTicket)

	g.GET("/active", h.ActiveTicket)
	g.PATCH("/active", h.UpdateActiveTicket)

	g.POST("/lines", h.AddLine)
	g.PATCH("/lines/:lineID/quantity", h.ChangeQuantity)
	g.PATCH("/lines/:lineID/notes", h.SetNotes)
	g.POST("/lines/:lineID/addons", h.AttachAddOn)
	g.DELETE("/lines/:lineID/addons/:index", h.DetachAddOn)
	g.DELETE("/lines/:lineID", h.RemoveLine)

	g.POST("/payments/select", h.SelectPaymentType)
	g.POST("/payments", h.ApplyPayment)
	g.DELETE("/payments/:index", h.RemovePayment)

	g.POST("/finalize", h.Finalize)
	g.POST("/load-order", h.LoadOrder)
}

func (h *Handler) session(c *gin.Context) (*Session, bool) {
	staffID := c.GetString("staffID")
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no staff identity"})
		return nil, false
	}

	sess, err := h.manager.Session(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open terminal session"})
		return nil, false
	}
	return sess, true
}

// --------------------------------------------------
// Tabs
// --------------------------------------------------

func (h *Handler) ListTickets(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": sess.ListTickets()})
}

func (h *Handler) CreateTicket(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	t := sess.CreateTicket()
	c.JSON(http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) CloseTicket(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.CloseTicket(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"tickets": sess.ListTickets()})
}

func (h *Handler) ActivateTicket(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.SetActive(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

func (h *Handler) ActiveTicket(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

// UpdateActiveTicket covers the ticket-level fields the terminal edits
// in place: discount, tip, order type, staged tender, category filter.
func (h *Handler) UpdateActiveTicket(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Discount       *float64 `json:"discount"`
		Tip            *float64 `json:"tip"`
		OrderType      *string  `json:"order_type"`
		Tender         *string  `json:"tender"`
		CategoryFilter *string  `json:"category_filter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Discount != nil {
		sess.SetDiscount(*req.Discount)
	}
	if req.Tip != nil {
		sess.SetTip(*req.Tip)
	}
	if req.OrderType != nil {
		sess.SetOrderType(ticket.OrderType(*req.OrderType))
	}
	if req.Tender != nil {
		sess.StageTender(*req.Tender)
	}
	if req.CategoryFilter != nil {
		sess.SetCategoryFilter(*req.CategoryFilter)
	}

	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

// --------------------------------------------------
// Line items
// --------------------------------------------------

func (h *Handler) AddLine(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		ItemID    string `json:"item_id"`
		VariantID string `json:"variant_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	result, err := sess.AddItem(req.ItemID, req.VariantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if result.Line == nil {
		// The cashier must pick a variant; nothing was added.
		c.JSON(http.StatusConflict, gin.H{"variants": result.Variants})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"line":   result.Line,
		"active": sess.ActiveView(),
	})
}

func (h *Handler) ChangeQuantity(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sess.ChangeQuantity(c.Param("lineID"), req.Delta)
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

func (h *Handler) RemoveLine(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.RemoveLine(c.Param("lineID"))
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

func (h *Handler) SetNotes(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sess.SetNotes(c.Param("lineID"), req.Notes)
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

func (h *Handler) AttachAddOn(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		AddOnID string `json:"addon_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AddOnID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "addon_id is required"})
		return
	}

	_ = sess.AttachAddOn(c.Param("lineID"), req.AddOnID)
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

func (h *Handler) DetachAddOn(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	sess.DetachAddOn(c.Param("lineID"), index)
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------

func (h *Handler) SelectPaymentType(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	sel := sess.SelectPaymentType(req.Type)
	c.JSON(http.StatusOK, gin.H{
		"selection": sel,
		"active":    sess.ActiveView(),
	})
}

func (h *Handler) ApplyPayment(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		MethodID string `json:"method_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MethodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method_id is required"})
		return
	}

	if err := sess.ApplyPaymentMethod(req.MethodID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

func (h *Handler) RemovePayment(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	sess.RemovePayment(index)
	c.JSON(http.StatusOK, gin.H{"active": sess.ActiveView()})
}

func (h *Handler) Finalize(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	orderID, err := sess.Finalize(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrNotSettled), errors.Is(err, settlement.ErrEmptyTicket):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, settlement.ErrFinalizeInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			// Persistence failed; the ticket is untouched and the
			// cashier may retry.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"tickets":  sess.ListTickets(),
	})
}

func (h *Handler) LoadOrder(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	t, err := sess.LoadOrder(c.Request.Context(), h.manager.loader, req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ticket": t})
}
