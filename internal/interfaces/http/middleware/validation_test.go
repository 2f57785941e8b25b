package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/labbench/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stageBody struct {
	Pipette float64 `json:"pipette" binding:"gt=0"`
}

type procedureBody struct {
	Title  string      `json:"title" binding:"required,max=10"`
	Flask  float64     `json:"flask" binding:"gt=0"`
	Stages []stageBody `json:"stages" binding:"max=2,dive"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	r := gin.New()
	r.POST("/test", func(c *gin.Context) {
		var req procedureBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func post(r *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	r := validationRouter()

	t.Run("reports json field paths", func(t *testing.T) {
		w, resp := post(r, `{"flask": 0, "stages": [{"pipette": 10}, {"pipette": -1}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required", fields["title"])
		assert.Equal(t, "Must be greater than 0", fields["flask"])
		assert.Equal(t, "Must be greater than 0", fields["stages[1].pipette"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w, resp := post(r, `{"title": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})

	t.Run("valid body passes", func(t *testing.T) {
		w, _ := post(r, `{"title": "Mohr", "flask": 100, "stages": [{"pipette": 10}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestValidationMessages(t *testing.T) {
	r := validationRouter()

	_, resp := post(r, `{"title": "a very long title", "flask": 1, "stages": [{"pipette":1},{"pipette":1},{"pipette":1}]}`)
	require.NotNil(t, resp.Error)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 10 characters", fields["title"])
	assert.Equal(t, "Must have at most 2 items", fields["stages"])
}

func TestValidationDetails_NotAValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
