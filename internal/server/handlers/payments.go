package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"washpoint-system/internal/database/models"
	"washpoint-system/internal/server/middleware"
)

type PaymentHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewPaymentHandler(db *gorm.DB, redisClient *redis.Client) *PaymentHandler {
	return &PaymentHandler{
		db:    db,
		redis: redisClient,
	}
}

// cashierLabel resolves the authenticated user's display name for the
// payment's cashier field, falling back to the login username.
func (h *PaymentHandler) cashierLabel(c *gin.Context) string {
	if userID := c.GetInt64(middleware.ContextUserID); userID != 0 {
		var user models.User
		if err := h.db.First(&user, userID).Error; err == nil {
			return user.DisplayName()
		}
	}
	return c.GetString(middleware.ContextUsername)
}

type ShareRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Commission string `json:"commission" binding:"required"`
}

type CreatePaymentRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	CarName      string `json:"car_name,omitempty"`
	PlateNumber  string `json:"plate_number,omitempty"`
	ServiceName  string `json:"service_name" binding:"required"`
	Price        string `json:"price" binding:"required"`

	EmployeeShares []ShareRequest `json:"employee_shares,omitempty"`
	Referrer       *ShareRequest  `json:"referrer,omitempty"`

	Paid           bool   `json:"paid"`
	PaymentMethod  string `json:"payment_method,omitempty"`
	AmountTendered string `json:"amount_tendered,omitempty"`
	ChangeGiven    string `json:"change_given,omitempty"`

	// Optional backdated timestamp in unix seconds; defaults to now.
	CreatedAt int64 `json:"created_at,omitempty"`
}

type UpdatePaymentRequest struct {
	CustomerName   *string `json:"customer_name,omitempty"`
	CarName        *string `json:"car_name,omitempty"`
	PlateNumber    *string `json:"plate_number,omitempty"`
	ServiceName    *string `json:"service_name,omitempty"`
	Price          *string `json:"price,omitempty"`
	Paid           *bool   `json:"paid,omitempty"`
	PaymentMethod  *string `json:"payment_method,omitempty"`
	AmountTendered *string `json:"amount_tendered,omitempty"`
	ChangeGiven    *string `json:"change_given,omitempty"`
}

type ListPaymentsQuery struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	From     string `form:"from,omitempty"`
	To       string `form:"to,omitempty"`
	Paid     *bool  `form:"paid,omitempty"`
	Customer string `form:"customer,omitempty"`
	Plate    string `form:"plate,omitempty"`
	Service  string `form:"service,omitempty"`
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	createdAt := req.CreatedAt
	if createdAt <= 0 {
		createdAt = time.Now().Unix()
	}

	payment := models.Payment{
		ID:             uuid.NewString(),
		CustomerName:   req.CustomerName,
		CarName:        req.CarName,
		PlateNumber:    req.PlateNumber,
		ServiceName:    req.ServiceName,
		Price:          req.Price,
		CashierName:    h.cashierLabel(c),
		Paid:           req.Paid,
		PaymentMethod:  req.PaymentMethod,
		AmountTendered: req.AmountTendered,
		ChangeGiven:    req.ChangeGiven,
		CreatedAt:      createdAt,
	}

	if userID := c.GetInt64(middleware.ContextUserID); userID != 0 {
		payment.CashierID = &userID
	}

	for _, share := range req.EmployeeShares {
		payment.EmployeeShares = append(payment.EmployeeShares, models.EmployeeShare{
			EmployeeID: share.EmployeeID,
			Name:       share.Name,
			Commission: share.Commission,
		})
	}

	if req.Referrer != nil {
		referrerID := req.Referrer.EmployeeID
		payment.ReferrerID = &referrerID
		payment.ReferrerName = req.Referrer.Name
		payment.ReferrerCommission = req.Referrer.Commission
	}

	if err := h.db.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to record payment"))
		return
	}

	invalidateReportCaches(c.Request.Context(), h.redis)

	c.JSON(http.StatusCreated, successResponse("Payment recorded successfully", payment))
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var query ListPaymentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	q := h.db.Model(&models.Payment{})

	if query.From != "" {
		from, err := time.Parse(time.DateOnly, query.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid 'from' date, expected YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at >= ?", from.Unix())
	}
	if query.To != "" {
		to, err := time.Parse(time.DateOnly, query.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid 'to' date, expected YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).Unix())
	}
	if query.Paid != nil {
		q = q.Where("paid = ?", *query.Paid)
	}
	if query.Customer != "" {
		q = q.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(query.Customer)+"%")
	}
	if query.Plate != "" {
		q = q.Where("LOWER(plate_number) LIKE ?", "%"+strings.ToLower(query.Plate)+"%")
	}
	if query.Service != "" {
		q = q.Where("service_name = ?", query.Service)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list payments"))
		return
	}

	var payments []models.Payment
	offset := (query.Page - 1) * query.PageSize
	if err := q.Order("created_at DESC").Offset(offset).Limit(query.PageSize).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list payments"))
		return
	}

	c.JSON(http.StatusOK, successWithMetaResponse("Payments retrieved successfully", payments, map[string]interface{}{
		"page":      query.Page,
		"page_size": query.PageSize,
		"total":     total,
	}))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	var payment models.Payment
	if err := h.db.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Payment not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Payment retrieved successfully", payment))
}

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	var payment models.Payment
	if err := h.db.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Payment not found"))
		return
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CarName != nil {
		updates["car_name"] = *req.CarName
	}
	if req.PlateNumber != nil {
		updates["plate_number"] = *req.PlateNumber
	}
	if req.ServiceName != nil {
		updates["service_name"] = *req.ServiceName
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Paid != nil {
		updates["paid"] = *req.Paid
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}
	if req.AmountTendered != nil {
		updates["amount_tendered"] = *req.AmountTendered
	}
	if req.ChangeGiven != nil {
		updates["change_given"] = *req.ChangeGiven
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("No fields to update"))
		return
	}

	if err := h.db.Model(&payment).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update payment"))
		return
	}

	invalidateReportCaches(c.Request.Context(), h.redis)

	c.JSON(http.StatusOK, successResponse("Payment updated successfully", payment))
}

// DeletePayment removes a payment and writes an audit trail entry in the
// same transaction, so a deletion is never silent.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	var payment models.Payment
	if err := h.db.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Payment not found"))
		return
	}

	details, _ := json.Marshal(payment)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		return tx.Create(&models.AuditLog{
			ID:         uuid.NewString(),
			Action:     "delete",
			EntityType: "payment",
			EntityID:   payment.ID,
			Actor:      c.GetString(middleware.ContextUsername),
			Details:    string(details),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete payment"))
		return
	}

	invalidateReportCaches(c.Request.Context(), h.redis)

	c.JSON(http.StatusOK, successResponse("Payment deleted successfully", nil))
}
