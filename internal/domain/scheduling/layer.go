package scheduling

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// Layer names which slot collection a row lives in.
type Layer string

const (
	LayerGeneral Layer = "general"
	LayerService Layer = "service"
)

func ParseLayer(s string) (Layer, error) {
	switch Layer(s) {
	case LayerGeneral, LayerService:
		return Layer(s), nil
	}
	return "", httperr.ErrBusiness(httperr.CodeInvalidLayer)
}

type Suggestion struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Consumption describes which row a booking switched off.
type Consumption struct {
	Layer  Layer  `json:"layer"`
	SlotID string `json:"slot_id"`
}
