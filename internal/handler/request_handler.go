package handler

import (
	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"
	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RequestHandler struct {
	service   service.RequestService
	maxUpload int64
}

func NewRequestHandler(s service.RequestService, maxUpload int64) *RequestHandler {
	return &RequestHandler{service: s, maxUpload: maxUpload}
}

// Submit files a change request; type and product_id come from the body.
// POST /api/v1/admin/requests
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	return h.submit(c, "", nil)
}

// POST /api/v1/admin/request/add
func (h *RequestHandler) SubmitAdd(c *fiber.Ctx) error {
	return h.submit(c, model.RequestAdd, nil)
}

// POST /api/v1/admin/request/update/:id
func (h *RequestHandler) SubmitUpdate(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.submit(c, model.RequestUpdate, &id)
}

// POST /api/v1/admin/request/delete/:id
func (h *RequestHandler) SubmitDelete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.submit(c, model.RequestDelete, &id)
}

func (h *RequestHandler) submit(c *fiber.Ctx, reqType model.RequestType, productID *uuid.UUID) error {
	form, up, err := parseProductForm(c, h.maxUpload)
	if err != nil {
		return writeError(c, err)
	}
	if reqType == "" {
		reqType = model.RequestType(form.Type)
	}
	if productID == nil {
		if productID, err = form.productID(); err != nil {
			return writeError(c, err)
		}
	}

	req, err := h.service.Submit(c.UserContext(), actorFrom(c), service.SubmitInput{
		Type:      reqType,
		ProductID: productID,
		Fields:    form.fields(),
		Upload:    up,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Request submitted", "request": req})
}

// List returns requests newest first. Filters: admin_name, status, mine=true.
// GET /api/v1/admin/requests, GET /api/v1/superadmin/requests
func (h *RequestHandler) List(c *fiber.Ctx) error {
	filter := repository.RequestFilter{
		AdminName: c.Query("admin_name"),
		Status:    model.RequestStatus(c.Query("status")),
	}
	if c.QueryBool("mine") {
		actor := actorFrom(c)
		filter.AdminID = &actor.ID
	}

	requests, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// GET /api/v1/admin/requests/:id
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	req, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"request": req})
}

// POST /api/v1/admin/requests/:id/cancel
func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	req, err := h.service.Cancel(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request cancelled", "request": req})
}

// POST /api/v1/superadmin/requests/:id/approve
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, model.StatusApproved, "Request approved")
}

// POST /api/v1/superadmin/requests/:id/reject
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, model.StatusRejected, "Request rejected")
}

func (h *RequestHandler) decide(c *fiber.Ctx, outcome model.RequestStatus, msg string) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	req, err := h.service.Decide(c.UserContext(), actorFrom(c), id, outcome)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": msg, "request": req})
}
