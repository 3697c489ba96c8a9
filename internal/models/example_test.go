package models_test

import (
	"encoding/json"
	"fmt"

	"github.com/tempizhere/linkdesk/internal/models"
)

// ExampleShortenRequest демонстрирует сериализацию запроса на создание ссылки
func ExampleShortenRequest() {
	// Запрос с пользовательским кодом
	req := models.ShortenRequest{
		URL:        "https://example.com/very-long-url",
		CustomCode: "promo",
	}

	jsonData, _ := json.Marshal(req)
	fmt.Printf("JSON запрос: %s\n", jsonData)

	// Без кода поле customCode опускается
	req = models.ShortenRequest{URL: "https://example.com/very-long-url"}
	jsonData, _ = json.Marshal(req)
	fmt.Printf("JSON запрос: %s\n", jsonData)

	// Output:
	// JSON запрос: {"url":"https://example.com/very-long-url","customCode":"promo"}
	// JSON запрос: {"url":"https://example.com/very-long-url"}
}

// ExampleValidateCreate демонстрирует предварительную проверку данных
func ExampleValidateCreate() {
	input, err := models.ValidateCreate("https://example.com/page", "my-link")
	fmt.Printf("URL: %s, код: %s, ошибка: %v\n", input.URL, input.CustomCode, err)

	_, err = models.ValidateCreate("not-a-url", "")
	fmt.Printf("Ошибка: %v\n", err)

	// Output:
	// URL: https://example.com/page, код: my-link, ошибка: <nil>
	// Ошибка: invalid URL
}
