package http

import (
	"net/http"

	"github.com/stackmill/gatehouse/pkg/httpx"
	"github.com/stackmill/gatehouse/pkg/regsdk"
)

func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, regsdk.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}
