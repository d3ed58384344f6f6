package main

import (
	"net/http"

	"DripmenStore/internal/middleware"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCheckoutRoutes(g *echo.Group, osvc *services.OrderService, r responder) {
	p := g.Group("/checkout")

	p.GET("", func(c echo.Context) error {
		totals, err := osvc.Totals(c.Request().Context())
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, totals)
	})

	p.POST("", func(c echo.Context) error {
		req := new(model.CheckoutInput)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		conf, err := osvc.PlaceOrder(c.Request().Context(), *req)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusCreated, conf)
	})
}

func registerOrderRoutes(g *echo.Group, osvc *services.OrderService, r responder) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	list := func(collection string) echo.HandlerFunc {
		return func(c echo.Context) error {
			orders, err := osvc.List(c.Request().Context(), collection)
			if err != nil {
				return r.fail(c, err)
			}
			return r.ok(c, http.StatusOK, orders)
		}
	}
	p.GET("", list(repository.KeyOrders))
	p.GET("/cancellations", list(repository.KeyCancellations))
	p.GET("/returns", list(repository.KeyReturns))

	// order details with invoice
	p.GET("/:id", func(c echo.Context) error {
		inv, err := osvc.Invoice(c.Request().Context(), c.Param("id"))
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, echo.Map{
			"invoice":    inv,
			"date_label": inv.Order.DateLabel(),
			"total":      model.FormatMoney(inv.Total),
		})
	})

	p.POST("/:id/cancel", func(c echo.Context) error {
		o, err := osvc.Cancel(c.Request().Context(), c.Param("id"))
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, o)
	})

	p.POST("/:id/return", func(c echo.Context) error {
		o, err := osvc.Return(c.Request().Context(), c.Param("id"))
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, o)
	})
}
