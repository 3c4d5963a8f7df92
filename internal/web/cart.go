// AngelaMos | 2026
// cart.go

package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const (
	cartMaxAge   = 30 * 24 * 60 * 60
	maxCartLines = 50
)

type CartLine struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// Cart lives entirely in a client cookie. The server never stores it.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c *Cart) Add(productID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Qty += qty
			return
		}
	}
	if len(c.Lines) < maxCartLines {
		c.Lines = append(c.Lines, CartLine{ProductID: productID, Qty: qty})
	}
}

func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Qty
	}
	return n
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Encode returns the cookie value.
func (c Cart) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeCart parses a cookie value. Anything unreadable is an empty cart.
func DecodeCart(value string) Cart {
	var c Cart
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Cart{}
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cart{}
	}

	valid := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID != "" && l.Qty > 0 {
			valid = append(valid, l)
		}
	}
	c.Lines = valid
	return c
}

func (h *Handler) readCart(r *http.Request) Cart {
	cookie, err := r.Cookie(h.cfg.CartCookie)
	if err != nil {
		return Cart{}
	}
	return DecodeCart(cookie.Value)
}

func (h *Handler) writeCart(w http.ResponseWriter, c Cart) error {
	if c.Empty() {
		h.clearCookie(w, h.cfg.CartCookie)
		return nil
	}

	value, err := c.Encode()
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CartCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   cartMaxAge,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
