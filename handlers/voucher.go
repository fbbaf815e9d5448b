package handlers

import (
	"net/http"

	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/services"
)

type VoucherHandler struct {
	voucherService services.VoucherService
}

func NewVoucherHandler(voucherService services.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// Get godoc
// GET /api/vouchers/{code}
// 404: bilinmeyen kod, 400: süresi dolmuş veya tükenmiş.
func (h *VoucherHandler) Get(w http.ResponseWriter, r *http.Request) {
	voucher, err := h.voucherService.Lookup(r.Context(), r.PathValue("code"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, voucher)
}
