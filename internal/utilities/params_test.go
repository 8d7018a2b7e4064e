package utilities

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextFor(target string, params ...gin.Param) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	return c
}

func TestPageQuery(t *testing.T) {
	page, limit, err := PageQuery(contextFor("/jobs"))
	assert.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, limit)

	page, limit, err = PageQuery(contextFor("/jobs?page=3&limit=15"))
	assert.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 15, limit)

	_, _, err = PageQuery(contextFor("/jobs?page=two"))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestParamID(t *testing.T) {
	id, err := ParamID(contextFor("/jobs/7", gin.Param{Key: "id", Value: "7"}), "id")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, v := range []string{"0", "-1", "abc", ""} {
		_, err := ParamID(contextFor("/jobs/x", gin.Param{Key: "id", Value: v}), "id")
		assert.Equal(t, KindValidation, KindOf(err), v)
	}
}
