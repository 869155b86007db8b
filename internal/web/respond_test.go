package web

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/arzan03/CampDirectory/internal/query"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validateStruct(t *testing.T, v interface{}) error {
	t.Helper()
	err := validator.New().Struct(v)
	require.Error(t, err)
	return err
}

func bodyOf(t *testing.T, app *fiber.App) map[string]interface{} {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestListEnvelopeWithPagination(t *testing.T) {
	// Count carries the page length, not the total match count.
	result := &query.Result{
		Count: 2,
		Pagination: query.Pagination{
			Next: &query.PageRef{Page: 2, Limit: 25},
		},
	}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return List(c, []string{"a", "b"}, result)
	})

	body := bodyOf(t, app)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	next, ok := pagination["next"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), next["page"])
	_, hasPrev := pagination["prev"]
	assert.False(t, hasPrev)
}

func TestListEnvelopeWithoutPagination(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return List(c, []string{}, &query.Result{Count: 0})
	})

	body := bodyOf(t, app)
	assert.Equal(t, true, body["success"])
	_, hasPagination := body["pagination"]
	assert.False(t, hasPagination)
}

func TestOKEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return OK(c, fiber.Map{"name": "Devworks"})
	})

	body := bodyOf(t, app)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Devworks", data["name"])
}
