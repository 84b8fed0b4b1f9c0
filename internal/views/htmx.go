package views

import (
	"net/http"
	"strings"
)

const (
	// HeaderRequest marks requests issued by HTMX.
	HeaderRequest = "HX-Request"
	// HeaderTarget carries the id of the element HTMX will swap.
	HeaderTarget = "HX-Target"
	// HeaderTrigger asks the client to dispatch events after the swap.
	HeaderTrigger = "HX-Trigger"

	// EventCartAdded fires on the add button's form once the badge is updated.
	EventCartAdded = "cart:added"

	CartPanelID = "cart-panel"
	CartBadgeID = "cart-count"
)

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(HeaderRequest), "true")
}

// TargetsBadge reports whether an HTMX request will swap only the cart badge.
func TargetsBadge(r *http.Request) bool {
	return IsHTMXRequest(r) && r.Header.Get(HeaderTarget) == CartBadgeID
}
