package sync

import (
	"errors"
	"fmt"
	"time"

	"receiptsync/internal/formatter"
	"receiptsync/internal/logger"
	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"
)

// Engine orchestrates pushes to the remote service: immediate sends on
// commerce events, outcome classification and the persisted retry
// queue. Failed syncs never propagate into the commerce operation that
// triggered them; every path returns a typed result.
type Engine struct {
	store     Store
	formatter Formatter
	client    Client
	logger    *logger.Logger
}

func NewEngine(store Store, formatter Formatter, client Client, logger *logger.Logger) *Engine {
	return &Engine{
		store:     store,
		formatter: formatter,
		client:    client,
		logger:    logger,
	}
}

// PushOrder sends the receipt for an order. Orders that already hold a
// remote receipt id are resent instead of re-created.
func (e *Engine) PushOrder(orderID string) (*receiptful.Result, error) {
	receiptID, err := e.store.ReceiptID(orderID)
	if err == nil && receiptID != "" {
		return e.resend(orderID, receiptID)
	}
	return e.createReceipt(orderID)
}

// Resend re-delivers an existing receipt. Falls back to a fresh push
// when no remote receipt exists yet.
func (e *Engine) Resend(orderID string) (*receiptful.Result, error) {
	return e.PushOrder(orderID)
}

func (e *Engine) createReceipt(orderID string) (*receiptful.Result, error) {
	data, err := e.formatter.Receipt(orderID)
	if err != nil {
		return nil, err
	}

	result := e.client.Receipt(data)

	switch {
	case result.Outcome == receiptful.Success:
		resp, err := result.DecodeReceipt()
		if err != nil {
			e.logger.Error("Failed to decode receipt response for order %s: %v", orderID, err)
			return result, fmt.Errorf("failed to decode receipt response: %w", err)
		}

		if err := e.store.SetReceipt(orderID, resp.ID, resp.Meta.Links.Webview); err != nil {
			return result, err
		}
		if err := e.store.MarkOrderSynced(orderID, time.Now()); err != nil {
			return result, err
		}
		e.store.RemoveQueueItem(models.EntityTypeOrder, orderID)
		e.store.AddOrderNote(orderID, "Customer receipt sent via Receiptful.")

		if resp.Upsell != nil && resp.Upsell.CouponCode != "" {
			e.createUpsellDiscount(orderID, resp.Upsell)
		}

	case result.Retryable():
		e.store.AddOrderNote(orderID, retryNote("sending", result))
		if err := e.store.Enqueue(models.EntityTypeOrder, orderID, models.ActionUpdate); err != nil {
			return result, err
		}

	default: // permanent
		e.store.AddOrderNote(orderID, permanentNote("sending", result))
	}

	return result, nil
}

func (e *Engine) resend(orderID, receiptID string) (*receiptful.Result, error) {
	result := e.client.ResendReceipt(receiptID)

	switch {
	case result.Outcome == receiptful.Success:
		if err := e.store.MarkOrderSynced(orderID, time.Now()); err != nil {
			return result, err
		}
		e.store.RemoveQueueItem(models.EntityTypeOrder, orderID)
		e.store.AddOrderNote(orderID, "Customer receipt resent via Receiptful.")

	case result.Retryable():
		e.store.AddOrderNote(orderID, retryNote("resending", result))
		if err := e.store.Enqueue(models.EntityTypeOrder, orderID, models.ActionUpdate); err != nil {
			return result, err
		}

	default:
		e.store.AddOrderNote(orderID, permanentNote("resending", result))
	}

	return result, nil
}

// PushProduct upserts one product in the remote catalog.
func (e *Engine) PushProduct(productID string) (*receiptful.Result, error) {
	data, err := e.formatter.Product(productID)
	if err != nil {
		return nil, err
	}

	result := e.client.UpdateProduct(productID, data)

	switch {
	case result.Outcome == receiptful.Success:
		if err := e.store.MarkProductSynced(productID, time.Now()); err != nil {
			return result, err
		}
		e.store.RemoveQueueItem(models.EntityTypeProduct, productID)

	case result.Retryable():
		if err := e.store.Enqueue(models.EntityTypeProduct, productID, models.ActionUpdate); err != nil {
			return result, err
		}
	}

	return result, nil
}

// DeleteProduct removes a product from the remote catalog.
func (e *Engine) DeleteProduct(productID string) (*receiptful.Result, error) {
	result := e.client.DeleteProduct(productID)

	switch {
	case result.Outcome == receiptful.Success:
		e.store.RemoveQueueItem(models.EntityTypeProduct, productID)

	case result.Retryable():
		if err := e.store.Enqueue(models.EntityTypeProduct, productID, models.ActionDelete); err != nil {
			return result, err
		}
	}

	return result, nil
}

// DrainQueue retries everything queued at the moment the drain starts.
// Items enqueued while draining wait for the next run. Entities deleted
// since enqueue are dropped silently.
func (e *Engine) DrainQueue() {
	items, err := e.store.QueueSnapshot()
	if err != nil {
		e.logger.Error("Failed to snapshot retry queue: %v", err)
		return
	}

	if len(items) == 0 {
		return
	}

	e.logger.Info("Draining retry queue: %d item(s)", len(items))

	for _, item := range items {
		var result *receiptful.Result
		var err error

		switch {
		case item.EntityType == models.EntityTypeOrder:
			result, err = e.PushOrder(item.EntityID)
		case item.Action == models.ActionDelete:
			result, err = e.DeleteProduct(item.EntityID)
		default:
			result, err = e.PushProduct(item.EntityID)
		}

		if errors.Is(err, formatter.ErrSkip) {
			e.store.RemoveQueueItem(item.EntityType, item.EntityID)
			continue
		}
		if err != nil {
			e.logger.Error("Retry failed for %s %s: %v", item.EntityType, item.EntityID, err)
			continue
		}

		// Transient items stay queued for the next run.
		if result.Outcome == receiptful.Success || result.Outcome == receiptful.PermanentFailure {
			e.store.RemoveQueueItem(item.EntityType, item.EntityID)
		}
	}
}

// createUpsellDiscount turns an upsell offer into a local single-use
// coupon. Duplicate codes are left untouched.
func (e *Engine) createUpsellDiscount(orderID string, offer *receiptful.UpsellOffer) {
	if offer.UpsellType != "" && offer.UpsellType != "discountcoupon" {
		return
	}

	exists, err := e.store.DiscountExists(offer.CouponCode)
	if err != nil || exists {
		return
	}

	discountType := models.DiscountTypeFlat
	if offer.CouponType == 2 {
		discountType = models.DiscountTypePercent
	}

	discount := &models.Discount{
		Code:      offer.CouponCode,
		Type:      discountType,
		Amount:    offer.Amount,
		MaxUses:   1,
		SingleUse: true,
		StartsAt:  time.Now(),
		OrderID:   orderID,
	}

	if offer.ExpiryPeriod > 0 {
		expires := time.Now().AddDate(0, 0, offer.ExpiryPeriod)
		discount.ExpiresAt = &expires
	}

	if offer.EmailLimit {
		if order, err := e.store.GetOrder(orderID); err == nil {
			discount.EmailRestriction = &order.Email
		}
	}

	if err := e.store.CreateDiscount(discount); err != nil {
		e.logger.Error("Failed to create upsell discount %s: %v", offer.CouponCode, err)
		return
	}

	e.logger.Info("Created upsell discount %s for order %s", offer.CouponCode, orderID)
}

func retryNote(verb string, result *receiptful.Result) string {
	if result.Err != nil {
		return fmt.Sprintf("Error %s customer receipt via Receiptful. Error Message: %v. Receipt added to resend queue.", verb, result.Err)
	}
	return fmt.Sprintf("Error %s customer receipt via Receiptful. Error Code: %d. Receipt added to resend queue.", verb, result.Code)
}

func permanentNote(verb string, result *receiptful.Result) string {
	return fmt.Sprintf("Error %s customer receipt via Receiptful. Error Code: %d.", verb, result.Code)
}
