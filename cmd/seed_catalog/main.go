// seed_catalog genera el script SQL que puebla las tablas del catálogo
// a partir del directorio JSON (shops.json, categories.json, ...).
//
// Uso: go run ./cmd/seed_catalog [directorio] [salida.sql]
// Por defecto lee ./static/data y escribe internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/jsonfs"
)

func main() {
	dir := filepath.Join("static", "data")
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	rec, err := jsonfs.NewCatalogSource(dir).Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}
	// Mismas reglas que al arrancar la API: un catálogo que no construye no se siembra.
	if _, err := catalog.Build(*rec); err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo inválido: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d tiendas, %d categorías, %d atributos, %d productos\n",
		outPath, len(rec.Shops), len(rec.Categories), len(rec.Attributes), len(rec.Products))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
