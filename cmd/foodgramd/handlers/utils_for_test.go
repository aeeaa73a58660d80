package handlers_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	typerr "github.com/foodgram-dev/foodgram/pkg/api/types/errors"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	"github.com/foodgram-dev/foodgram/pkg/utils/cmp"
)

var testSecret = []byte("test-secret")

func activeUser(id int) domain.User {
	return domain.User{
		Id:        id,
		Email:     fmt.Sprintf("user-%d@example.com", id),
		Username:  fmt.Sprintf("user-%d", id),
		FirstName: "Имя",
		LastName:  "Фамилия",
		IsActive:  true,
	}
}

func publishedRecipe(id int, author domain.User) domain.Recipe {
	return domain.Recipe{
		RecipeBody: domain.RecipeBody{
			Id:          id,
			Name:        fmt.Sprintf("Рецепт %d", id),
			Image:       fmt.Sprintf("recipes/images/%d.png", id),
			CookingTime: 30,
		},
		Author: author,
		Text:   "Нарезать и перемешать.",
		Ingredients: []domain.IngredientLine{
			{
				Ingredient: domain.Ingredient{Id: 1, Name: "мука", MeasurementUnit: "г"},
				Amount:     200,
			},
		},
		PubDate:   time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		ShortLink: fmt.Sprintf("code-%d", id),
	}
}

// pngURI is a small valid upload payload.
func pngURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(32 * x), G: uint8(32 * y), B: 128, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func fieldsEq(a, b typerr.Fields) bool {
	return cmp.MapEqWith(a, b, cmp.SliceEq[string])
}

// statusOf demands err to be an echo.HTTPError and hands it over for
// inspection.
func statusOf(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	if err == nil {
		t.Fatal("error is expected, but none is returned")
	}
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
	}
	return echoErr
}

// expectFields demands a 400 with exactly these field messages.
func expectFields(t *testing.T, err error, expected typerr.Fields) {
	t.Helper()
	echoErr := statusOf(t, err)
	if echoErr.Code != 400 {
		t.Fatalf("unmatch error code: %d, expected: 400", echoErr.Code)
	}
	fields, ok := echoErr.Message.(typerr.Fields)
	if !ok {
		t.Fatalf("unexpected message: %#v", echoErr.Message)
	}
	if !fieldsEq(fields, expected) {
		t.Errorf("unmatch fields: %+v, expected: %+v", fields, expected)
	}
}
