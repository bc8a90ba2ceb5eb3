package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

// AdminHandler exposes the administrative resource layer: dashboard
// statistics and CRUD over admins, roles, merchants, customers, and
// cross-merchant views of products and orders.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalMerchants int64
	if err := h.db.Model(&models.Merchant{}).Count(&totalMerchants).Error; err != nil {
		return err
	}

	var totalCustomers int64
	if err := h.db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status = ?", models.OrderDelivered).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var todayRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status = ? AND placed_at::date = CURRENT_DATE", models.OrderDelivered).
		Select("COALESCE(SUM(total), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	return utils.Success(c, "OK", fiber.Map{
		"total_merchants":  totalMerchants,
		"total_customers":  totalCustomers,
		"total_orders":     totalOrders,
		"total_revenue":    totalRevenue,
		"today_revenue":    todayRevenue,
		"orders_by_status": ordersByStatus,
	})
}

// ListAdmins returns panel accounts.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Admin{})

	if search := c.Query("search"); search != "" {
		q := "%" + search + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var admins []models.Admin
	if err := query.Preload("Roles").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&admins).Error; err != nil {
		return err
	}
	return utils.Paginated(c, admins, pg, total)
}

type adminInput struct {
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Password string   `json:"password"`
	IsActive *bool    `json:"is_active"`
	RoleIDs  []string `json:"role_ids"`
}

// CreateAdmin provisions a new panel account.
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var input adminInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	fields := map[string]string{}
	if input.Email == "" {
		fields["email"] = "email is required"
	}
	if input.Password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return utils.ValidationError(fields)
	}

	var existing models.Admin
	if err := h.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.ConflictError("admin already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if input.IsActive != nil {
		admin.IsActive = *input.IsActive
	}

	if err := h.db.Create(&admin).Error; err != nil {
		return err
	}

	if len(input.RoleIDs) > 0 {
		roles, err := h.resolveRoles(input.RoleIDs)
		if err != nil {
			return err
		}
		if err := h.db.Model(&admin).Association("Roles").Replace(roles); err != nil {
			return err
		}
	}

	return utils.Created(c, "admin created", admin)
}

// UpdateAdmin mutates a panel account. Protected accounts are immutable.
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	admin, err := h.findAdmin(c)
	if err != nil {
		return err
	}
	if err := services.GuardAdminMutation(admin); err != nil {
		return err
	}

	var input adminInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.FullName != "" {
		updates["full_name"] = input.FullName
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.Password != "" {
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return err
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := h.db.Model(admin).Updates(updates).Error; err != nil {
			return err
		}
	}

	if input.RoleIDs != nil {
		roles, err := h.resolveRoles(input.RoleIDs)
		if err != nil {
			return err
		}
		if err := h.db.Model(admin).Association("Roles").Replace(roles); err != nil {
			return err
		}
	}

	return utils.Success(c, "admin updated", admin)
}

// DeleteAdmin removes a panel account. Protected accounts are immutable.
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	admin, err := h.findAdmin(c)
	if err != nil {
		return err
	}
	if err := services.GuardAdminMutation(admin); err != nil {
		return err
	}

	if err := h.db.Select("Roles").Delete(admin).Error; err != nil {
		return err
	}
	return utils.Success(c, "admin deleted", nil)
}

func (h *AdminHandler) findAdmin(c *fiber.Ctx) (*models.Admin, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var admin models.Admin
	if err := h.db.First(&admin, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("admin not found")
		}
		return nil, err
	}
	return &admin, nil
}

func (h *AdminHandler) resolveRoles(ids []string) ([]models.Role, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, utils.ValidationError(map[string]string{"role_ids": "invalid role id"})
		}
		parsed = append(parsed, id)
	}

	var roles []models.Role
	if err := h.db.Where("id IN ?", parsed).Find(&roles).Error; err != nil {
		return nil, err
	}
	if len(roles) != len(parsed) {
		return nil, utils.NotFoundError("role not found")
	}
	return roles, nil
}

// ListRoles returns roles with their permissions.
func (h *AdminHandler) ListRoles(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Role{}).Count(&total).Error; err != nil {
		return err
	}

	var roles []models.Role
	if err := h.db.Preload("Permissions").
		Order("created_at asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&roles).Error; err != nil {
		return err
	}
	return utils.Paginated(c, roles, pg, total)
}

type roleInput struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// CreateRole persists a new role with the named permissions.
func (h *AdminHandler) CreateRole(c *fiber.Ctx) error {
	var input roleInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if input.Name == "" {
		return utils.ValidationError(map[string]string{"name": "name is required"})
	}

	var existing models.Role
	if err := h.db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		return utils.ConflictError("role already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	role := models.Role{Name: input.Name, Guard: models.GuardAdmin}
	if err := h.db.Create(&role).Error; err != nil {
		return err
	}

	if len(input.Permissions) > 0 {
		perms, err := h.resolvePermissions(input.Permissions)
		if err != nil {
			return err
		}
		if err := h.db.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return err
		}
	}

	return utils.Created(c, "role created", role)
}

// UpdateRole mutates a role. The protected super admin role is immutable.
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	role, err := h.findRole(c)
	if err != nil {
		return err
	}
	if err := services.GuardRoleMutation(role); err != nil {
		return err
	}

	var input roleInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if input.Name != "" {
		if err := h.db.Model(role).Update("name", input.Name).Error; err != nil {
			return err
		}
	}
	if input.Permissions != nil {
		perms, err := h.resolvePermissions(input.Permissions)
		if err != nil {
			return err
		}
		if err := h.db.Model(role).Association("Permissions").Replace(perms); err != nil {
			return err
		}
	}

	return utils.Success(c, "role updated", role)
}

// DeleteRole removes a role. The protected super admin role is immutable.
func (h *AdminHandler) DeleteRole(c *fiber.Ctx) error {
	role, err := h.findRole(c)
	if err != nil {
		return err
	}
	if err := services.GuardRoleMutation(role); err != nil {
		return err
	}

	if err := h.db.Select("Permissions").Delete(role).Error; err != nil {
		return err
	}
	return utils.Success(c, "role deleted", nil)
}

func (h *AdminHandler) findRole(c *fiber.Ctx) (*models.Role, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var role models.Role
	if err := h.db.First(&role, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("role not found")
		}
		return nil, err
	}
	return &role, nil
}

func (h *AdminHandler) resolvePermissions(names []string) ([]models.Permission, error) {
	var perms []models.Permission
	if err := h.db.Where("name IN ?", names).Find(&perms).Error; err != nil {
		return nil, err
	}
	if len(perms) != len(names) {
		return nil, utils.ValidationError(map[string]string{"permissions": "unknown permission name"})
	}
	return perms, nil
}

// ListPermissions returns the permission catalog.
func (h *AdminHandler) ListPermissions(c *fiber.Ctx) error {
	var perms []models.Permission
	if err := h.db.Order("name asc").Find(&perms).Error; err != nil {
		return err
	}
	return utils.Success(c, "OK", perms)
}

// ListMerchants returns merchants with search and approval filters.
func (h *AdminHandler) ListMerchants(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Merchant{})

	if search := c.Query("search"); search != "" {
		q := "%" + search + "%"
		query = query.Where("name_ar ILIKE ? OR name_en ILIKE ? OR phone ILIKE ?", q, q, q)
	}
	if v := c.Query("is_approved"); v != "" {
		query = query.Where("is_approved = ?", v == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var merchants []models.Merchant
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&merchants).Error; err != nil {
		return err
	}
	return utils.Paginated(c, merchants, pg, total)
}

// ApproveMerchant flags a merchant as approved.
func (h *AdminHandler) ApproveMerchant(c *fiber.Ctx) error {
	return h.setMerchantFlag(c, "is_approved", true, "merchant approved")
}

// SuspendMerchant flags a merchant as suspended.
func (h *AdminHandler) SuspendMerchant(c *fiber.Ctx) error {
	return h.setMerchantFlag(c, "is_suspended", true, "merchant suspended")
}

// ReinstateMerchant clears a merchant's suspension.
func (h *AdminHandler) ReinstateMerchant(c *fiber.Ctx) error {
	return h.setMerchantFlag(c, "is_suspended", false, "merchant reinstated")
}

func (h *AdminHandler) setMerchantFlag(c *fiber.Ctx, column string, value bool, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var merchant models.Merchant
	if err := h.db.First(&merchant, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("merchant not found")
		}
		return err
	}

	if err := h.db.Model(&merchant).Update(column, value).Error; err != nil {
		return err
	}
	return utils.Success(c, message, merchant)
}

// ListCustomers returns customers with search and status filters.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Customer{})

	if search := c.Query("search"); search != "" {
		q := "%" + search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ?", q, q, q)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var customers []models.Customer
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&customers).Error; err != nil {
		return err
	}
	return utils.Paginated(c, customers, pg, total)
}

type customerStatusInput struct {
	Status models.CustomerStatus `json:"status"`
}

// UpdateCustomerStatus sets a customer's account status.
func (h *AdminHandler) UpdateCustomerStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var input customerStatusInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch input.Status {
	case models.CustomerPending, models.CustomerActive, models.CustomerInactive,
		models.CustomerSuspended, models.CustomerBanned:
	default:
		return utils.ValidationError(map[string]string{"status": "unknown status"})
	}

	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("customer not found")
		}
		return err
	}

	if err := h.db.Model(&customer).Update("status", input.Status).Error; err != nil {
		return err
	}
	return utils.Success(c, "customer status updated", customer)
}

// ListAllOrders returns orders across all merchants.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("order_number ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("Customer").Preload("Merchant").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}
	return utils.Paginated(c, orders, pg, total)
}

// ListAllProducts returns products across all merchants.
func (h *AdminHandler) ListAllProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{})

	if search := c.Query("search"); search != "" {
		q := "%" + search + "%"
		query = query.Where("name_ar ILIKE ? OR name_en ILIKE ?", q, q)
	}
	if v := c.Query("merchant_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			query = query.Where("merchant_id = ?", id)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}
	return utils.Paginated(c, products, pg, total)
}
