package main

import (
	"net/http"

	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

type filterRequest struct {
	Facet string `json:"facet"`
	Value string `json:"value"`
}

type priceRequest struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type sortRequest struct {
	Sort string `json:"sort"`
}

type pageRequest struct {
	Page int `json:"page"`
}

// registerProductRoutes mounts the catalog browser.
//
//	GET  /products          -> current page
//	POST /products/filter   -> set one facet, back to page 1
//	POST /products/price    -> set price range, back to page 1
//	POST /products/sort     -> set sort key, back to page 1
//	POST /products/page     -> move to page
//	POST /products/reset    -> initial state
//	GET  /products/facets   -> filter options
//	GET  /products/:id      -> product details
func registerProductRoutes(g *echo.Group, ps *services.ProductService, r responder) {
	p := g.Group("/products")

	p.GET("", func(c echo.Context) error {
		return r.ok(c, http.StatusOK, ps.Current())
	})

	p.POST("/filter", func(c echo.Context) error {
		req := new(filterRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		view, err := ps.Filter(req.Facet, req.Value)
		if err != nil {
			return badRequest(c, err.Error())
		}
		return r.ok(c, http.StatusOK, view)
	})

	p.POST("/price", func(c echo.Context) error {
		req := new(priceRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		return r.ok(c, http.StatusOK, ps.SetPriceRange(req.Min, req.Max))
	})

	p.POST("/sort", func(c echo.Context) error {
		req := new(sortRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		return r.ok(c, http.StatusOK, ps.Sort(req.Sort))
	})

	p.POST("/page", func(c echo.Context) error {
		req := new(pageRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		return r.ok(c, http.StatusOK, ps.ChangePage(req.Page))
	})

	p.POST("/reset", func(c echo.Context) error {
		return r.ok(c, http.StatusOK, ps.Reset())
	})

	p.GET("/facets", func(c echo.Context) error {
		return r.ok(c, http.StatusOK, ps.Facets())
	})

	p.GET("/:id", func(c echo.Context) error {
		product, err := ps.Get(c.Param("id"))
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, product)
	})
}
