package shop

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"MiniSuite/pkg/kit"
)

type Server struct {
	Products ProductFinder
	Cart     CartStore
	Log      *zap.Logger
}

type addResp struct {
	Message         string `json:"message"`
	Action          string `json:"action"`
	CurrentQuantity int    `json:"current_quantity"`
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
}

type checkoutResp struct {
	TotalCost decimal.Decimal `json:"total_cost"`
	Items     []LineSnapshot  `json:"items"`
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Products.List(r.Context())
	if err != nil {
		s.Log.Error("list products failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "product id must be a positive integer", nil)
		return
	}

	p, ok, err := s.Products.Find(r.Context(), id)
	if err != nil {
		s.Log.Error("get product failed", zap.Error(err), zap.Int64("product_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"product_id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

// addToCart takes its arguments from the query string, matching the public
// surface this service has always had: POST /cart/add?product_id=N&quantity=M.
func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	productID, err := strconv.ParseInt(q.Get("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id must be a positive integer", nil)
		return
	}

	qty := 1
	if raw := q.Get("quantity"); raw != "" {
		qty, err = strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			kit.WriteError(w, r, http.StatusBadRequest, "quantity must be a positive integer", nil)
			return
		}
	}

	ln, err := s.Cart.Add(r.Context(), s.Products, productID, qty)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "product not found in catalog",
				map[string]any{"product_id": productID})
			return
		}
		s.Log.Error("cart add failed", zap.Error(err), zap.Int64("product_id", productID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	action := "added"
	if ln.Quantity > qty {
		action = "updated"
	}

	kit.WriteJSON(w, http.StatusOK, addResp{
		Message:         "product " + strconv.FormatInt(productID, 10) + " " + action + " to cart",
		Action:          action,
		CurrentQuantity: ln.Quantity,
		ProductID:       ln.ProductID,
		ProductName:     ln.Name,
	})
}

func (s *Server) viewCart(w http.ResponseWriter, r *http.Request) {
	lines, err := s.Cart.Lines(r.Context())
	if err != nil {
		s.Log.Error("cart read failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, lines)
}

func (s *Server) viewCartItems(w http.ResponseWriter, r *http.Request) {
	lines, err := s.Cart.Lines(r.Context())
	if err != nil {
		s.Log.Error("cart read failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	items := make([]Line, 0, len(lines))
	for _, ln := range lines {
		items = append(items, ln)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	kit.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	lines, err := s.Cart.Lines(r.Context())
	if err != nil {
		s.Log.Error("cart read failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(lines) == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "cannot checkout an empty cart", nil)
		return
	}

	sum, err := s.Cart.Checkout(r.Context(), s.Products)
	if err != nil {
		s.Log.Error("checkout failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if err := s.Cart.Clear(r.Context()); err != nil {
		// The summary is already computed; a failed clear leaves the cart for
		// the next request rather than failing the checkout.
		s.Log.Error("cart clear after checkout failed", zap.Error(err))
	}

	s.Log.Info("cart checked out",
		zap.String("total", sum.Total.StringFixed(2)),
		zap.Int("items", len(sum.Items)))

	kit.WriteJSON(w, http.StatusOK, checkoutResp{TotalCost: sum.Total, Items: sum.Items})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.Cart.Clear(r.Context()); err != nil {
		s.Log.Error("cart clear failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
