package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shoecrew/internal/domain"
	applog "shoecrew/internal/log"
	"shoecrew/internal/services"
	"shoecrew/internal/validate"
)

const maxProductImages = 5

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) All(c *fiber.Ctx) error {
	ps, err := h.Catalog.All(c.Context())
	if err != nil {
		return fail(c, "products.all", err)
	}
	return c.JSON(ps)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ObjectID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.Get(c.Context(), id)
	if err != nil {
		return fail(c, "products.get", err)
	}
	return c.JSON(p)
}

// Create handles the admin multipart upload: form fields plus up to
// five images that land in blob storage before the document is written.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	admin := c.Locals("user").(*domain.User)

	title, okTitle := validate.Text(c.FormValue("title"), 2, 100)
	desc, okDesc := validate.Text(c.FormValue("description"), 5, 2000)
	category, okCat := validate.Text(c.FormValue("category"), 2, 100)
	brand, okBrand := validate.Text(c.FormValue("brand"), 2, 100)
	price, errPrice := strconv.ParseFloat(c.FormValue("price"), 64)
	stock, errStock := strconv.Atoi(c.FormValue("stock"))
	if !okTitle || !okDesc || !okCat || !okBrand || errPrice != nil || errStock != nil || price <= 0 || stock < 0 {
		return badRequest(c, "invalid product data")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "multipart form required")
	}
	files := form.File["images"]
	if len(files) > maxProductImages {
		return badRequest(c, "too many images")
	}

	images := make([]services.ImageUpload, 0, len(files))
	closers := make([]func() error, 0, len(files))
	defer func() {
		for _, cl := range closers {
			_ = cl()
		}
	}()
	for _, f := range files {
		r, err := f.Open()
		if err != nil {
			return fail(c, "products.create", err)
		}
		closers = append(closers, r.Close)
		images = append(images, services.ImageUpload{
			Name:        f.Filename,
			ContentType: f.Header.Get("Content-Type"),
			Body:        r,
		})
	}

	p, err := h.Catalog.Create(c.Context(), admin.ID, services.ProductInput{
		Title:       title,
		Price:       price,
		Stock:       stock,
		Sizes:       form.Value["size"],
		Description: desc,
		Category:    category,
		Brand:       brand,
	}, images)
	if err != nil {
		return fail(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product": p.ID.Hex()})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created successfully", "product": p})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	admin := c.Locals("user").(*domain.User)
	id, ok := validate.ObjectID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var patch domain.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "malformed body")
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return badRequest(c, "price must be positive")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return badRequest(c, "stock must be non-negative")
	}

	p, err := h.Catalog.Update(c.Context(), admin.ID, id, patch)
	if err != nil {
		return fail(c, "products.update", err)
	}
	applog.Audit(c, "products.update", map[string]any{"product": id})
	return c.JSON(fiber.Map{"message": "Product updated successfully", "product": p})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	admin := c.Locals("user").(*domain.User)
	id, ok := validate.ObjectID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Catalog.Delete(c.Context(), admin.ID, id); err != nil {
		return fail(c, "products.delete", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product": id})
	return c.JSON(fiber.Map{"message": "Product and images deleted successfully"})
}
