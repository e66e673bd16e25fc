package property

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/shared"
)

// Handler exposes property HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a property HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Size        float64 `json:"size"`
	Description string  `json:"description"`
}

// List returns every property.
func (h *Handler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(items)
}

// Paged returns one page of properties; page and size default to 0 and 10.
func (h *Handler) Paged(c *fiber.Ctx) error {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return err
	}
	size, err := intQuery(c, "size", DefaultPageSize)
	if err != nil {
		return err
	}
	result, err := h.service.ListPaged(c.UserContext(), page, size)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(result)
}

// Get returns a single property or 404.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(p)
}

// Create stores a new property and echoes it with its assigned id.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	p, err := h.service.Create(c.UserContext(), Property{
		Address:     req.Address,
		Price:       req.Price,
		Size:        req.Size,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(p)
}

// Update merges the supplied fields into an existing property.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var patch Patch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	p, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(p)
}

// Delete removes a property. It answers 204 whether or not the id existed.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Search filters properties by the optional address, minPrice, maxPrice,
// minSize and maxSize query parameters.
func (h *Handler) Search(c *fiber.Ctx) error {
	var (
		f   Filter
		err error
	)
	if addr := c.Query("address"); addr != "" {
		f.Address = &addr
	}
	if f.MinPrice, err = floatQuery(c, "minPrice"); err != nil {
		return err
	}
	if f.MaxPrice, err = floatQuery(c, "maxPrice"); err != nil {
		return err
	}
	if f.MinSize, err = floatQuery(c, "minSize"); err != nil {
		return err
	}
	if f.MaxSize, err = floatQuery(c, "maxSize"); err != nil {
		return err
	}

	items, err := h.service.Search(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(items)
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer", shared.ErrValidation)
	}
	return id, nil
}

func intQuery(c *fiber.Ctx, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", shared.ErrValidation, name)
	}
	return v, nil
}

func floatQuery(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", shared.ErrValidation, name)
	}
	return &v, nil
}
