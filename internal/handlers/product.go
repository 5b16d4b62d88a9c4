package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pawel3ala/wavestone/internal/jwtmiddleware"
	"github.com/pawel3ala/wavestone/internal/logging"
	"github.com/pawel3ala/wavestone/internal/models"
	"github.com/pawel3ala/wavestone/internal/mykafka"
	"github.com/pawel3ala/wavestone/internal/store"
	"github.com/pawel3ala/wavestone/internal/transport"
	"github.com/pawel3ala/wavestone/internal/validate"
)

type ProductHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

func notFoundProduct(c echo.Context) error {
	return c.JSON(http.StatusNotFound, transport.MessageResponse{Message: "Product not found"})
}

func userID(c echo.Context) int {
	if id, ok := c.Get(jwtmiddleware.ContextUserID).(int); ok {
		return id
	}
	return 0
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicProductEvents, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Store.Products(ctx)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	// A non-numeric id matches nothing, same as an unknown one.
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 404, "reason", "bad id", "id", c.Param("id"))
		return notFoundProduct(c)
	}

	product, err := h.Store.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", id)
			return notFoundProduct(c)
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	patch, errs := validate.Product(req, true)
	if len(errs) > 0 {
		l.Warn("create_product_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.ErrorsResponse{Errors: errs})
	}

	product := &models.Product{
		Name:      *patch.Name,
		Price:     *patch.Price,
		DateAdded: *patch.DateAdded,
		Category:  *patch.Category,
	}
	if _, err := h.Store.CreateProduct(ctx, product); err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"userID":    userID(c),
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("create_product_success", "productID", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// Validation runs before the id lookup, so a bad body on an unknown id
	// is still a 400.
	patch, errs := validate.Product(req, false)
	if len(errs) > 0 {
		l.Warn("update_product_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.ErrorsResponse{Errors: errs})
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_product_failed", "status", 404, "reason", "bad id", "id", c.Param("id"))
		return notFoundProduct(c)
	}

	product, err := h.Store.UpdateProduct(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("update_product_failed", "status", 404, "id", id)
			return notFoundProduct(c)
		}
		l.Error("update_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"userID":    userID(c),
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("update_product_success", "productID", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_failed", "status", 404, "reason", "bad id", "id", c.Param("id"))
		return notFoundProduct(c)
	}

	product, err := h.Store.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("delete_product_failed", "status", 404, "id", id)
			return notFoundProduct(c)
		}
		l.Error("delete_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"userID":    userID(c),
		"productID": product.ID,
	})

	l.Info("delete_product_success", "productID", product.ID)
	// The removed record is returned wrapped in a one-element array.
	return c.JSON(http.StatusOK, []models.Product{*product})
}
