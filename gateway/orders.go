package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/order"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const idempotencyHeader = "Idempotency-Key"

// createOrder godoc
// @Summary      Place an order
// @Description  Prices every cart line from the catalog and stores the order with its items in one transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string              false  "client retry key"
// @Param        order            body    CreateOrderRequest  true   "cart"
// @Success      201  {object}  CreateOrderResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (g *Gateway) createOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperrors.Validation(err.Error(), err))
		return
	}
	buyer := currentIdentity(c)
	ctx := c.Request.Context()

	key := c.GetHeader(idempotencyHeader)
	scope := strconv.FormatUint(uint64(buyer.UserID), 10)
	useKey := key != "" && g.idempotency != nil
	if useKey {
		result, reserved, err := g.idempotency.Reserve(ctx, scope, key)
		switch {
		case err != nil:
			// without redis the request still goes through, only unguarded
			g.logger.Warn("Idempotency store unavailable", zap.Error(err))
			useKey = false
		case !reserved && result == "":
			g.fail(c, apperrors.Conflict("a request with this Idempotency-Key is still in progress"))
			return
		case !reserved:
			id, err := strconv.ParseUint(result, 10, 64)
			if err != nil {
				g.fail(c, apperrors.Internal("corrupt idempotency record", err))
				return
			}
			c.JSON(http.StatusCreated, CreateOrderResponse{Message: "Order Placed Successfully", OrderID: uint(id)})
			return
		}
	}

	in := order.CreateOrderInput{
		Phone:   req.Phone,
		Address: req.Address,
		Items:   make([]order.CartLine, 0, len(req.Items)),
	}
	for _, l := range req.Items {
		in.Items = append(in.Items, order.CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	o, err := g.orders.CreateOrder(ctx, buyer, in)
	if err != nil {
		if useKey {
			if rerr := g.idempotency.Release(ctx, scope, key); rerr != nil {
				g.logger.Warn("Failed to release idempotency key", zap.Error(rerr))
			}
		}
		g.fail(c, err)
		return
	}

	if useKey {
		if err := g.idempotency.Complete(ctx, scope, key, strconv.FormatUint(uint64(o.ID), 10)); err != nil {
			g.logger.Warn("Failed to record idempotency result", zap.Uint("order_id", o.ID), zap.Error(err))
			// a key stuck in pending would answer 409 until it expires
			if rerr := g.idempotency.Release(ctx, scope, key); rerr != nil {
				g.logger.Warn("Failed to release idempotency key", zap.Error(rerr))
			}
		}
	}
	g.metrics.OrdersCreated.Inc()

	c.JSON(http.StatusCreated, CreateOrderResponse{Message: "Order Placed Successfully", OrderID: o.ID})
}

// listOrders godoc
// @Summary   List my orders
// @Tags      orders
// @Produce   json
// @Success   200  {array}  OrderDTO
// @Security  BearerAuth
// @Router    /orders [get]
func (g *Gateway) listOrders(c *gin.Context) {
	list, err := g.orders.ListOrdersForBuyer(c.Request.Context(), currentIdentity(c).UserID)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTOs(list))
}

// listAllOrders godoc
// @Summary      List orders for admins
// @Description  Superusers see every order; staff see orders holding at least one of their products.
// @Tags         orders
// @Produce      json
// @Success      200  {array}   OrderDTO
// @Failure      403  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /orders/all [get]
func (g *Gateway) listAllOrders(c *gin.Context) {
	list, err := g.orders.ListAllOrders(c.Request.Context(), currentIdentity(c))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTOs(list))
}

// listVendorOrders godoc
// @Summary      List my sales
// @Description  Orders holding the caller's products, each reduced to the caller's items and total.
// @Tags         orders
// @Produce      json
// @Success      200  {array}  VendorOrderDTO
// @Security     BearerAuth
// @Router       /orders/vendor [get]
func (g *Gateway) listVendorOrders(c *gin.Context) {
	list, err := g.orders.ListOrdersForVendor(c.Request.Context(), currentIdentity(c).UserID)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toVendorOrderDTOs(list))
}

// updateItemStatus godoc
// @Summary      Update the status of my items in an order
// @Description  Moves every item of the order that belongs to the caller. Items of other vendors are never touched; updated is 0 when the caller owns none.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path  int                true  "order id"
// @Param        status  body  ItemStatusRequest  true  "new status"
// @Success      200  {object}  ItemStatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/items/status [patch]
func (g *Gateway) updateItemStatus(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	var req ItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperrors.Validation("status is required", err))
		return
	}

	n, err := g.orders.UpdateItemStatus(c.Request.Context(), id, currentIdentity(c), req.Status)
	if err != nil {
		g.fail(c, err)
		return
	}
	if n > 0 {
		g.metrics.ItemUpdates.WithLabelValues(normalizeStatus(req.Status)).Add(float64(n))
	}
	c.JSON(http.StatusOK, ItemStatusResponse{Message: "Item Status Updated", Updated: n})
}

// updateOrderStatus godoc
// @Summary   Set the master status of an order
// @Tags      orders
// @Accept    json
// @Produce   json
// @Param     id      path  int                 true  "order id"
// @Param     status  body  OrderStatusRequest  true  "new status"
// @Success   200  {object}  MessageResponse
// @Failure   400  {object}  ErrorResponse
// @Failure   403  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /orders/{id}/status [patch]
func (g *Gateway) updateOrderStatus(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperrors.Validation("status is required", err))
		return
	}

	if err := g.orders.UpdateOrderStatus(c.Request.Context(), id, currentIdentity(c), req.Status, req.WaybillNumber); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Order Status Updated"})
}

// deleteOrder godoc
// @Summary   Delete an order
// @Tags      orders
// @Produce   json
// @Param     id  path  int  true  "order id"
// @Success   200  {object}  MessageResponse
// @Failure   403  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /orders/{id} [delete]
func (g *Gateway) deleteOrder(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		g.fail(c, err)
		return
	}
	if err := g.orders.DeleteOrder(c.Request.Context(), id, currentIdentity(c)); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Order Deleted"})
}

// printWaybill godoc
// @Summary   Download the waybill PDF of an order
// @Tags      orders
// @Produce   application/pdf
// @Param     id  path  int  true  "order id"
// @Success   200  {file}    binary
// @Failure   404  {object}  ErrorResponse
// @Failure   500  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /orders/{id}/waybill [get]
func (g *Gateway) printWaybill(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		g.fail(c, err)
		return
	}

	snap, err := g.orders.Waybill(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	pdf, err := g.waybills.Render(snap)
	if err != nil {
		g.metrics.Waybills.WithLabelValues("error").Inc()
		g.fail(c, apperrors.Internal("failed to generate waybill", err))
		return
	}
	g.metrics.Waybills.WithLabelValues("ok").Inc()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.Filename()))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// normalizeStatus keeps metric labels to the known statuses.
func normalizeStatus(s string) string {
	st, err := order.ParseItemStatus(s)
	if err != nil {
		return "unknown"
	}
	return string(st)
}
