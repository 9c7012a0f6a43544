package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"washpoint-system/internal/database/models"
)

// CatalogHandler serves the operational reference data: wash crew,
// service menu, chemical stock and the loyalty program.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// --- Employees ---

type CreateEmployeeRequest struct {
	EmployeeName   string  `json:"employee_name" binding:"required"`
	Position       *string `json:"position,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	CommissionRate string  `json:"commission_rate" binding:"required"`
}

type UpdateEmployeeRequest struct {
	EmployeeName   *string `json:"employee_name,omitempty"`
	Position       *string `json:"position,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	CommissionRate *string `json:"commission_rate,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func (h *CatalogHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	employee := models.Employee{
		ID:             uuid.NewString(),
		EmployeeName:   req.EmployeeName,
		CommissionRate: req.CommissionRate,
		IsActive:       true,
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}

	if err := h.db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create employee"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Employee created successfully", employee))
}

func (h *CatalogHandler) ListEmployees(c *gin.Context) {
	var employees []models.Employee
	q := h.db.Order("employee_name ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list employees"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employees retrieved successfully", employees))
}

func (h *CatalogHandler) GetEmployee(c *gin.Context) {
	var employee models.Employee
	if err := h.db.First(&employee, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Employee not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employee retrieved successfully", employee))
}

func (h *CatalogHandler) UpdateEmployee(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Employee not found"))
		return
	}

	updates := map[string]interface{}{}
	if req.EmployeeName != nil {
		updates["employee_name"] = *req.EmployeeName
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.CommissionRate != nil {
		updates["commission_rate"] = *req.CommissionRate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("No fields to update"))
		return
	}

	if err := h.db.Model(&employee).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update employee"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employee updated successfully", employee))
}

// --- Services ---

type CreateServiceRequest struct {
	ServiceName string            `json:"service_name" binding:"required"`
	Description *string           `json:"description,omitempty"`
	Prices      map[string]string `json:"prices" binding:"required"`
}

type UpdateServiceRequest struct {
	ServiceName *string           `json:"service_name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Prices      map[string]string `json:"prices,omitempty"`
	IsActive    *bool             `json:"is_active,omitempty"`
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	service := models.Service{
		ID:          uuid.NewString(),
		ServiceName: req.ServiceName,
		Prices:      models.PriceMap(req.Prices),
		IsActive:    true,
	}
	if req.Description != nil {
		service.Description = *req.Description
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Service name already exists"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Service created successfully", service))
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var services []models.Service
	q := h.db.Order("service_name ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list services"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Services retrieved successfully", services))
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Service not found"))
		return
	}

	updates := map[string]interface{}{}
	if req.ServiceName != nil {
		updates["service_name"] = *req.ServiceName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Prices != nil {
		updates["prices"] = models.PriceMap(req.Prices)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("No fields to update"))
		return
	}

	if err := h.db.Model(&service).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update service"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Service updated successfully", service))
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	result := h.db.Delete(&models.Service{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete service"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorResponse("Service not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Service deleted successfully", nil))
}

// --- Chemicals ---

type CreateChemicalRequest struct {
	ChemicalName string  `json:"chemical_name" binding:"required"`
	Description  *string `json:"description,omitempty"`
	Unit         string  `json:"unit" binding:"required"`
	Quantity     string  `json:"quantity" binding:"required"`
	ReorderLevel *string `json:"reorder_level,omitempty"`
}

type UpdateChemicalRequest struct {
	ChemicalName *string `json:"chemical_name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	Quantity     *string `json:"quantity,omitempty"`
	ReorderLevel *string `json:"reorder_level,omitempty"`
}

func (h *CatalogHandler) CreateChemical(c *gin.Context) {
	var req CreateChemicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	chemical := models.Chemical{
		ID:           uuid.NewString(),
		ChemicalName: req.ChemicalName,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
	}
	if req.Description != nil {
		chemical.Description = *req.Description
	}
	if req.ReorderLevel != nil {
		chemical.ReorderLevel = *req.ReorderLevel
	}

	if err := h.db.Create(&chemical).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create chemical"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Chemical created successfully", chemical))
}

func (h *CatalogHandler) ListChemicals(c *gin.Context) {
	var chemicals []models.Chemical
	if err := h.db.Order("chemical_name ASC").Find(&chemicals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list chemicals"))
		return
	}

	// Stock totals per unit; unparsable quantities contribute nothing.
	totals := map[string]decimal.Decimal{}
	for _, chem := range chemicals {
		qty, err := decimal.NewFromString(chem.Quantity)
		if err != nil {
			continue
		}
		totals[chem.Unit] = totals[chem.Unit].Add(qty)
	}
	stock := map[string]string{}
	for unit, total := range totals {
		stock[unit] = total.String()
	}

	c.JSON(http.StatusOK, successWithMetaResponse("Chemicals retrieved successfully", chemicals, map[string]interface{}{
		"stock_totals": stock,
	}))
}

func (h *CatalogHandler) UpdateChemical(c *gin.Context) {
	var req UpdateChemicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	var chemical models.Chemical
	if err := h.db.First(&chemical, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Chemical not found"))
		return
	}

	updates := map[string]interface{}{}
	if req.ChemicalName != nil {
		updates["chemical_name"] = *req.ChemicalName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.ReorderLevel != nil {
		updates["reorder_level"] = *req.ReorderLevel
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("No fields to update"))
		return
	}

	if err := h.db.Model(&chemical).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update chemical"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Chemical updated successfully", chemical))
}

func (h *CatalogHandler) DeleteChemical(c *gin.Context) {
	result := h.db.Delete(&models.Chemical{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete chemical"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorResponse("Chemical not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Chemical deleted successfully", nil))
}

// --- Loyalty customers ---

type CreateLoyaltyCustomerRequest struct {
	CustomerName string   `json:"customer_name" binding:"required"`
	Phone        *string  `json:"phone,omitempty"`
	Cars         []string `json:"cars,omitempty"`
}

type UpdateLoyaltyCustomerRequest struct {
	CustomerName *string  `json:"customer_name,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Cars         []string `json:"cars,omitempty"`
	WashCount    *int32   `json:"wash_count,omitempty"`
	FreeWashes   *int32   `json:"free_washes,omitempty"`
}

func (h *CatalogHandler) CreateLoyaltyCustomer(c *gin.Context) {
	var req CreateLoyaltyCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	customer := models.LoyaltyCustomer{
		ID:           uuid.NewString(),
		CustomerName: req.CustomerName,
		Cars:         models.CarList(req.Cars),
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}

	if err := h.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create loyalty customer"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Loyalty customer created successfully", customer))
}

func (h *CatalogHandler) ListLoyaltyCustomers(c *gin.Context) {
	var customers []models.LoyaltyCustomer
	if err := h.db.Order("customer_name ASC").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list loyalty customers"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Loyalty customers retrieved successfully", customers))
}

func (h *CatalogHandler) UpdateLoyaltyCustomer(c *gin.Context) {
	var req UpdateLoyaltyCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	var customer models.LoyaltyCustomer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Loyalty customer not found"))
		return
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Cars != nil {
		updates["cars"] = models.CarList(req.Cars)
	}
	if req.WashCount != nil {
		updates["wash_count"] = *req.WashCount
	}
	if req.FreeWashes != nil {
		updates["free_washes"] = *req.FreeWashes
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("No fields to update"))
		return
	}

	if err := h.db.Model(&customer).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update loyalty customer"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Loyalty customer updated successfully", customer))
}

// --- Audit trail ---

func (h *CatalogHandler) ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.db.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list audit logs"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Audit logs retrieved successfully", logs))
}
