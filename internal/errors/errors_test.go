package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation maps to 400", Validation("INVALID_GROUP_SIZE", "bad group"), http.StatusBadRequest, "INVALID_GROUP_SIZE"},
		{"conflict maps to 409", Conflict("DATE_ALREADY_RESERVED", "held"), http.StatusConflict, "DATE_ALREADY_RESERVED"},
		{"state maps to 409", State("NOT_PENDING", "wrong state"), http.StatusConflict, "NOT_PENDING"},
		{"not found maps to 404", NotFound("RESERVATION_NOT_FOUND", "missing"), http.StatusNotFound, "RESERVATION_NOT_FOUND"},
		{"expired maps to 400", Expired("CHECKIN_DEADLINE_PASSED", "too late"), http.StatusBadRequest, "CHECKIN_DEADLINE_PASSED"},
		{"unknown errors stay generic", errors.New("driver: bad connection"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("FRIENDS_NOT_REGISTERED", "unknown friends").
		WithDetails(map[string]interface{}{"unresolved": []string{"x@u.ac.th"}})

	httpErr := MapErrorToHTTP(err)
	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "unknown friends", resp.Error)
	assert.Equal(t, []string{"x@u.ac.th"}, resp.Details["unresolved"])
}

func TestAsAppError(t *testing.T) {
	app, ok := AsAppError(Conflict("RESOURCE_OCCUPIED", "busy"))
	assert.True(t, ok)
	assert.Equal(t, KindConflict, app.Kind)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
