package dto

import "winecellar/internal/httpapi/service"

// LookupBarcodeDTO for POST /api/scan/lookup. The barcode is validated
// by the workflow, not here: blank input is a workflow-level rejection,
// not a malformed request.
type LookupBarcodeDTO struct {
	Barcode string `json:"barcode"`
}

// ScanResponse mirrors service.ScanResult with DTO-shaped payloads.
type ScanResponse struct {
	State      string          `json:"state"`
	Barcode    string          `json:"barcode,omitempty"`
	Wine       *WineResponse   `json:"wine,omitempty"`
	Rating     *RatingResponse `json:"rating,omitempty"`
	RedirectTo string          `json:"redirect_to,omitempty"`
}

func FromScanResult(r *service.ScanResult) *ScanResponse {
	resp := &ScanResponse{
		State:      string(r.State),
		Barcode:    r.Barcode,
		Rating:     FromRatingModel(r.Rating),
		RedirectTo: r.RedirectTo,
	}
	if r.Wine != nil {
		w := FromWineModel(*r.Wine)
		resp.Wine = &w
	}
	return resp
}
