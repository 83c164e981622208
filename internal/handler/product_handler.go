package handler

import (
	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service   service.CatalogService
	maxUpload int64
}

func NewProductHandler(s service.CatalogService, maxUpload int64) *ProductHandler {
	return &ProductHandler{service: s, maxUpload: maxUpload}
}

// GetProducts lists the catalog, optionally filtered by ?category=
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		return h.listCategory(c, category)
	}
	products, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GetProductsByCategory
// GET /api/v1/products/category/:category
func (h *ProductHandler) GetProductsByCategory(c *fiber.Ctx) error {
	return h.listCategory(c, c.Params("category"))
}

func (h *ProductHandler) listCategory(c *fiber.Ctx, category string) error {
	products, err := h.service.ListByCategory(c.UserContext(), category)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// CreateProduct adds a product directly, bypassing the request workflow.
// POST /api/v1/superadmin/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	form, up, err := parseProductForm(c, h.maxUpload)
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.Create(c.UserContext(), actorFrom(c), form.fields(), up)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "product": product})
}

// PUT /api/v1/superadmin/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	form, up, err := parseProductForm(c, h.maxUpload)
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.Update(c.UserContext(), actorFrom(c), id, form.fields(), up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "product": product})
}

// DELETE /api/v1/superadmin/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
