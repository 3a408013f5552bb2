package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("add slot: %w", ErrBusiness(CodeDuplicateSlot))

	if !IsBusiness(err, CodeDuplicateSlot) {
		t.Fatalf("expected wrapped business error to match")
	}
	if IsBusiness(err, CodeNotFound) {
		t.Fatalf("unexpected match for other code")
	}
	if CodeOf(errors.New("boom")) != "" {
		t.Fatalf("plain errors carry no code")
	}
}

func TestFromError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrBusiness(CodeSlotUnavailable), http.StatusConflict, CodeSlotUnavailable},
		{ErrBusiness(CodeSlotLocked), http.StatusLocked, CodeSlotLocked},
		{ErrBusiness(CodeValidation), http.StatusBadRequest, CodeValidation},
		{ErrBusiness(CodeNotFound), http.StatusNotFound, CodeNotFound},
		{errors.New("db down"), http.StatusInternalServerError, "failed"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, tc.err, "failed", "Erro.")

		if w.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, w.Code)
		}

		var body HTTPError
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Code != tc.code {
			t.Fatalf("expected code %q, got %q", tc.code, body.Code)
		}
	}
}
