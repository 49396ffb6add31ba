package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/models"
)

func newRecipeMultipartRequest(t *testing.T, method string, path string, fields map[string]string, imageType string, image []byte, cookie string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="dish.png"`)
		header.Set("Content-Type", imageType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write image part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(method, path, &body)
	request.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	request.Header.Set(fiber.HeaderCookie, cookie)
	return request
}

func TestCreateRecipeFromMultipartStoresImageDataURL(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := setupAndLogin(t, app)

	request := newRecipeMultipartRequest(t, http.MethodPost, "/api/recipes", map[string]string{
		"name":        "Pancakes",
		"calories":    "350 per serving",
		"ingredients": "2 eggs\n1 cup flour",
	}, "image/png", []byte{0x89, 'P', 'N', 'G'}, cookie)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("create recipe request failed: %v", err)
	}
	expectStatus(t, response, http.StatusCreated)

	recipe := models.Recipe{}
	decodeJSON(t, response, &recipe)
	if recipe.Name != "Pancakes" || recipe.Calories != "350 per serving" {
		t.Fatalf("unexpected recipe %#v", recipe)
	}
	if !strings.HasPrefix(recipe.Image, "data:image/png;base64,") {
		t.Fatalf("expected png data URL, got %q", recipe.Image)
	}
}

func TestCreateRecipeRejectsNonImageUpload(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := setupAndLogin(t, app)

	request := newRecipeMultipartRequest(t, http.MethodPost, "/api/recipes", map[string]string{"name": "Soup"}, "text/plain", []byte("hello"), cookie)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("create recipe request failed: %v", err)
	}
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()
}

func TestRecipeJSONLifecycle(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := setupAndLogin(t, app)

	response := doJSON(t, app, http.MethodPost, "/api/recipes", map[string]any{"name": ""}, cookie)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()

	created := models.Recipe{}
	response = doJSON(t, app, http.MethodPost, "/api/recipes", map[string]any{"name": "Salad", "instructions": "Toss."}, cookie)
	expectStatus(t, response, http.StatusCreated)
	decodeJSON(t, response, &created)

	updated := models.Recipe{}
	response = doJSON(t, app, http.MethodPut, "/api/recipes/"+created.ID, map[string]any{"calories": "120"}, cookie)
	expectStatus(t, response, http.StatusOK)
	decodeJSON(t, response, &updated)
	if updated.Name != "Salad" || updated.Calories != "120" || updated.Instructions != "Toss." {
		t.Fatalf("expected partial update to keep other fields, got %#v", updated)
	}

	response = doJSON(t, app, http.MethodDelete, "/api/recipes/"+created.ID, nil, cookie)
	expectStatus(t, response, http.StatusNoContent)
	response.Body.Close()

	recipes := []models.Recipe{}
	response = doJSON(t, app, http.MethodGet, "/api/recipes", nil, cookie)
	expectStatus(t, response, http.StatusOK)
	decodeJSON(t, response, &recipes)
	if len(recipes) != 0 {
		t.Fatalf("expected no recipes, got %d", len(recipes))
	}
}
