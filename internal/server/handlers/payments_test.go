package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"washpoint-system/internal/database/models"
	"washpoint-system/internal/server/middleware"
)

func paymentRouter(db *gorm.DB) *gin.Engine {
	h := NewPaymentHandler(db, nil)

	r := gin.New()
	r.POST("/payments", h.CreatePayment)
	r.GET("/payments", h.ListPayments)
	r.GET("/payments/:id", h.GetPayment)
	r.PUT("/payments/:id", h.UpdatePayment)
	r.DELETE("/payments/:id", h.DeletePayment)
	return r
}

func TestCreatePayment(t *testing.T) {
	db := setupDB(t)
	r := paymentRouter(db)

	w := performRequest(r, http.MethodPost, "/payments", CreatePaymentRequest{
		CustomerName: "Alona R.",
		CarName:      "Vios",
		PlateNumber:  "ABC-1234",
		ServiceName:  "Premium Wash",
		Price:        "350.00",
		Paid:         true,
		EmployeeShares: []ShareRequest{
			{EmployeeID: "emp-1", Name: "Marco D.", Commission: "50.00"},
		},
		Referrer: &ShareRequest{EmployeeID: "emp-2", Name: "Lito P.", Commission: "20.00"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	var stored models.Payment
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "Alona R.", stored.CustomerName)
	assert.Equal(t, "350.00", stored.Price)
	assert.True(t, stored.Paid)
	require.Len(t, stored.EmployeeShares, 1)
	assert.Equal(t, "emp-1", stored.EmployeeShares[0].EmployeeID)
	require.NotNil(t, stored.ReferrerID)
	assert.Equal(t, "emp-2", *stored.ReferrerID)
	assert.Equal(t, "20.00", stored.ReferrerCommission)
	assert.NotZero(t, stored.CreatedAt)
}

func TestCreatePaymentCashierDisplayName(t *testing.T) {
	db := setupDB(t)

	user := models.User{
		Username: "dindo", Email: "dindo@example.com", Password: "x",
		Firstname: "Dindo", Lastname: "Reyes", RoleID: 1, IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	h := NewPaymentHandler(db, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextUsername, user.Username)
	})
	r.POST("/payments", h.CreatePayment)

	w := performRequest(r, http.MethodPost, "/payments", CreatePaymentRequest{
		CustomerName: "Alona R.",
		ServiceName:  "Premium Wash",
		Price:        "350.00",
		Paid:         true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Payment
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "Dindo Reyes", stored.CashierName)
	require.NotNil(t, stored.CashierID)
	assert.Equal(t, user.ID, *stored.CashierID)
}

func TestCreatePaymentRequiresFields(t *testing.T) {
	db := setupDB(t)
	r := paymentRouter(db)

	w := performRequest(r, http.MethodPost, "/payments", map[string]interface{}{
		"customer_name": "Alona R.",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPaymentsDateFilter(t *testing.T) {
	db := setupDB(t)
	r := paymentRouter(db)

	seed := []models.Payment{
		{ID: "pay-1", CustomerName: "A", ServiceName: "Wash", Price: "100.00", Paid: true,
			CreatedAt: time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC).Unix()},
		{ID: "pay-2", CustomerName: "B", ServiceName: "Wash", Price: "100.00", Paid: true,
			CreatedAt: time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC).Unix()},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	w := performRequest(r, http.MethodGet, "/payments?from=2024-06-10&to=2024-06-30", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestUpdatePaymentMarkPaid(t *testing.T) {
	db := setupDB(t)
	r := paymentRouter(db)

	payment := models.Payment{
		ID: "pay-1", CustomerName: "A", ServiceName: "Wash", Price: "100.00",
		Paid: false, CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, db.Create(&payment).Error)

	paid := true
	w := performRequest(r, http.MethodPut, "/payments/pay-1", UpdatePaymentRequest{Paid: &paid})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", "pay-1").Error)
	assert.True(t, stored.Paid)
}

func TestDeletePaymentWritesAuditLog(t *testing.T) {
	db := setupDB(t)
	r := paymentRouter(db)

	payment := models.Payment{
		ID: "pay-1", CustomerName: "A", ServiceName: "Wash", Price: "100.00",
		Paid: true, CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, db.Create(&payment).Error)

	w := performRequest(r, http.MethodDelete, "/payments/pay-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "delete", entry.Action)
	assert.Equal(t, "payment", entry.EntityType)
	assert.Equal(t, "pay-1", entry.EntityID)
	assert.Contains(t, entry.Details, "Wash")
}

func TestDeletePaymentNotFound(t *testing.T) {
	db := setupDB(t)
	r := paymentRouter(db)

	w := performRequest(r, http.MethodDelete, "/payments/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
