package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jngonzales/E-Commerce/modules/catalog"
)

// listProducts handles GET /api/products.
//
// Supported query parameters: page, limit, category (slug), search,
// sort (price|-price|name|-name|createdAt|-createdAt|rating|-rating),
// featured.
func (m *APIModule) listProducts(c *fiber.Ctx) error {
	req := catalog.ListProductsRequest{
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Featured: c.QueryBool("featured", false),
	}

	resp, err := m.catalog.ListProducts(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// getProduct handles GET /api/products/:id.
func (m *APIModule) getProduct(c *fiber.Ctx) error {
	resp, err := m.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// createProduct handles POST /api/products.
func (m *APIModule) createProduct(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := catalog.CreateProductRequest{
		CompareAtPrice: body.CompareAtPrice,
	}
	if body.Name != nil {
		req.Name = *body.Name
	}
	if body.Slug != nil {
		req.Slug = *body.Slug
	}
	if body.Description != nil {
		req.Description = *body.Description
	}
	if body.Price != nil {
		req.Price = *body.Price
	}
	if body.Category != nil {
		req.CategoryID = *body.Category
	}
	if body.Images != nil {
		req.Images = *body.Images
	}
	if body.Stock != nil {
		req.Stock = *body.Stock
	}
	if body.Tags != nil {
		req.Tags = *body.Tags
	}
	if body.Featured != nil {
		req.Featured = *body.Featured
	}

	resp, err := m.catalog.CreateProduct(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// updateProduct handles PUT /api/products/:id. Only fields present in
// the body overwrite stored values.
func (m *APIModule) updateProduct(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := m.catalog.UpdateProduct(c.UserContext(), catalog.UpdateProductRequest{
		ID:             c.Params("id"),
		Name:           body.Name,
		Slug:           body.Slug,
		Description:    body.Description,
		Price:          body.Price,
		CompareAtPrice: body.CompareAtPrice,
		CategoryID:     body.Category,
		Images:         body.Images,
		Stock:          body.Stock,
		Tags:           body.Tags,
		Featured:       body.Featured,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// deleteProduct handles DELETE /api/products/:id.
func (m *APIModule) deleteProduct(c *fiber.Ctx) error {
	if err := m.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product removed"})
}

// listCategories handles GET /api/categories.
func (m *APIModule) listCategories(c *fiber.Ctx) error {
	resp, err := m.catalog.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// getCategory handles GET /api/categories/:id.
func (m *APIModule) getCategory(c *fiber.Ctx) error {
	resp, err := m.catalog.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// createCategory handles POST /api/categories.
func (m *APIModule) createCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	var req catalog.CreateCategoryRequest
	if body.Name != nil {
		req.Name = *body.Name
	}
	if body.Slug != nil {
		req.Slug = *body.Slug
	}
	if body.Description != nil {
		req.Description = *body.Description
	}
	if body.Image != nil {
		req.Image = *body.Image
	}

	resp, err := m.catalog.CreateCategory(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// updateCategory handles PUT /api/categories/:id.
func (m *APIModule) updateCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := m.catalog.UpdateCategory(c.UserContext(), catalog.UpdateCategoryRequest{
		ID:          c.Params("id"),
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
		Image:       body.Image,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// deleteCategory handles DELETE /api/categories/:id. Deletion is
// rejected while products still reference the category.
func (m *APIModule) deleteCategory(c *fiber.Ctx) error {
	if err := m.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category removed"})
}
