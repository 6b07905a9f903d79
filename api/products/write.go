package products

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"comandas_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", prm.logger, w)
		return
	}

	product, err := prm.productService.Create(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Failed to create product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", prm.logger, w)
		return
	}

	product, err := prm.productService.Update(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Failed to update product", prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}

func (prm *ProductRoutesManager) SetProductActive(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductActiveRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", prm.logger, w)
		return
	}

	product, err := prm.productService.SetActive(r.Context(), id, *body.Active)
	if err != nil {
		handling.WriteError(err, "Failed to update product", prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := prm.productService.Delete(r.Context(), id); err != nil {
		handling.WriteError(err, "Failed to delete product", prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Product deleted"), gecho.Send())
}
