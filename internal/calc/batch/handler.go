package batch

import (
	"net/http"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := Evaluate(input)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	n := len(res.Results)
	api.WriteJSON(w, http.StatusOK, api.Envelope{Success: true, Data: res, Count: &n})
}
