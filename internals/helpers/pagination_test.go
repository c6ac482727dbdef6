// file: internals/helpers/pagination_test.go
package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, target string, opt Options) Params {
	t.Helper()
	app := fiber.New()
	var got Params
	app.Get("/list", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "created_at", "desc", opt)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParseFiberDefaultOpts(t *testing.T) {
	p := parseWith(t, "/list", DefaultOpts)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.PerPage)
	assert.False(t, p.All)

	p = parseWith(t, "/list?page=3&per_page=999", DefaultOpts)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 200, p.PerPage) // clamped to the preset max

	// per_page=all is not honored outside export mode
	p = parseWith(t, "/list?per_page=all", DefaultOpts)
	assert.False(t, p.All)
	assert.Equal(t, 25, p.PerPage)
}

func TestParseFiberExportAll(t *testing.T) {
	p := parseWith(t, "/list?page=7&per_page=all", ExportOpts)
	assert.True(t, p.All)
	assert.Equal(t, 1, p.Page) // all resets paging
	assert.Equal(t, 10_000, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}
