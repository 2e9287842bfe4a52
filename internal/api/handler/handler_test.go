package handler

import (
	"net/http/httptest"
	"testing"

	"tutorlink/messaging/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/messaging/conversations?"+rawQuery, nil)
	return c
}

func TestPagination_Defaults(t *testing.T) {
	page, limit := pagination(testContext(t, ""))
	assert.Equal(t, 1, page)
	assert.Equal(t, config.DefaultPageSize, limit)
}

// limit is clamped to the service maximum; page is floored at 1.
func TestPagination_Clamped(t *testing.T) {
	page, limit := pagination(testContext(t, "page=0&limit=10000"))
	assert.Equal(t, 1, page)
	assert.Equal(t, config.MaxPageSize, limit)

	page, limit = pagination(testContext(t, "page=-3&limit=-5"))
	assert.Equal(t, 1, page)
	assert.Equal(t, config.DefaultPageSize, limit)
}

func TestPagination_InRangeValuesKept(t *testing.T) {
	page, limit := pagination(testContext(t, "page=4&limit=50"))
	assert.Equal(t, 4, page)
	assert.Equal(t, 50, limit)
}

func TestPagination_Garbage(t *testing.T) {
	page, limit := pagination(testContext(t, "page=abc&limit=xyz"))
	assert.Equal(t, 1, page)
	assert.Equal(t, config.DefaultPageSize, limit)
}

func TestAttachmentType(t *testing.T) {
	assert.Equal(t, "image", attachmentType("photo.PNG"))
	assert.Equal(t, "image", attachmentType("scan.jpeg"))
	assert.Equal(t, "document", attachmentType("homework.pdf"))
	assert.Equal(t, "document", attachmentType("essay.docx"))
	assert.Equal(t, "file", attachmentType("archive.zip"))
	assert.Equal(t, "file", attachmentType("no_extension"))
}
