// Пакет openapi — встроенный OpenAPI-контракт PanelVoices.
// Документ загружается и валидируется kin-openapi при старте и
// раздаётся как есть по /openapi.yaml.
package openapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Raw возвращает исходный YAML контракта.
func Raw() []byte {
	return specYAML
}

// Load разбирает и валидирует встроенный контракт.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора OpenAPI-контракта: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("OpenAPI-контракт невалиден: %w", err)
	}
	return doc, nil
}
