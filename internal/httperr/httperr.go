package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var businessStatus = map[string]int{
	CodeValidation:      http.StatusBadRequest,
	CodeInvalidDate:     http.StatusBadRequest,
	CodeInvalidTime:     http.StatusBadRequest,
	CodeInvalidStatus:   http.StatusBadRequest,
	CodeInvalidLayer:    http.StatusBadRequest,
	CodeInvalidState:    http.StatusConflict,
	CodeDuplicateSlot:   http.StatusConflict,
	CodeSlotUnavailable: http.StatusConflict,
	CodeSlotLocked:      http.StatusLocked,
	CodeNotFound:        http.StatusNotFound,
	CodeCheckoutOff:     http.StatusNotImplemented,
}

var businessMessage = map[string]string{
	CodeValidation:      "Preencha todos os campos obrigatórios.",
	CodeInvalidDate:     "Data inválida, use AAAA-MM-DD.",
	CodeInvalidTime:     "Horário inválido, use HH:MM.",
	CodeInvalidStatus:   "Status inválido.",
	CodeInvalidLayer:    "Camada de horário inválida.",
	CodeInvalidState:    "Transição de status não permitida.",
	CodeDuplicateSlot:   "Este horário já está cadastrado.",
	CodeSlotUnavailable: "Horário não está mais disponível.",
	CodeSlotLocked:      "Horário em processo de reserva, tente novamente.",
	CodeNotFound:        "Registro não encontrado.",
	CodeCheckoutOff:     "Pagamento com cartão indisponível.",
}

// FromError writes err as a JSON error, mapping business codes to their
// HTTP status and falling back to 500 with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	code := CodeOf(err)
	if status, ok := businessStatus[code]; ok {
		Write(c, status, code, businessMessage[code])
		return
	}
	Internal(c, fallbackCode, fallbackMessage)
}
