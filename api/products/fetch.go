package products

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// FetchProducts handles GET /products?category=&active=&search=
func (prm *ProductRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := handling.ParseProductFilter(r)
	if err != nil {
		prm.logger.Debug("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	products, err := prm.productService.List(r.Context(), filter)
	if err != nil {
		handling.WriteError(err, "Failed to fetch products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	product, err := prm.productService.Get(r.Context(), id)
	if err != nil {
		handling.WriteError(err, "Failed to fetch product", prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}
