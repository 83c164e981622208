package handler

import (
	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

type addItemRequest struct {
	CartID    string `json:"cart_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GET /api/v1/cart/new
func (h *CartHandler) NewCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"cart_id": h.service.CreateCart()})
}

// AddItem body: {cart_id, product_id, quantity}; quantity defaults to 1.
// POST /api/v1/cart
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return badRequest(c, "invalid product_id")
	}

	if err := h.service.AddItem(c.UserContext(), req.CartID, productID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item added to cart", "cart_id": req.CartID})
}

// GET /api/v1/cart/:cartId
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	lines, err := h.service.ListItems(c.UserContext(), c.Params("cartId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"cartItems": lines})
}

// DELETE /api/v1/cart/:cartId/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.RemoveItem(c.UserContext(), c.Params("cartId"), productID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// POST /api/v1/cart/:cartId/checkout
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	order, err := h.service.Checkout(c.UserContext(), c.Params("cartId"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Order placed", "order": order})
}
