// seed fills the local dev database with a few categories, products and an
// admin account.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
)

const (
	seedEmail    = "admin@shop.local"
	seedPassword = "change-me-please"
	placeholder  = "http://localhost:3000/public/uploads/placeholder.png"
)

var categories = []usecase.CategoryInput{
	{Name: "Electronics", Icon: "icon-electronics", Color: "#3a86ff"},
	{Name: "Books", Icon: "icon-books", Color: "#8338ec"},
	{Name: "Home", Icon: "icon-home", Color: "#ff006e"},
}

type productSpec struct {
	category string
	input    usecase.ProductInput
}

var products = []productSpec{
	{"Electronics", usecase.ProductInput{Name: "Wireless Mouse", Description: "Two-button mouse", Brand: "Clicky", Price: 19.99, CountInStock: 40, Rating: 4.2, NumReviews: 12, IsFeatured: true}},
	{"Electronics", usecase.ProductInput{Name: "USB-C Hub", Description: "Seven ports", Brand: "Porty", Price: 34.5, CountInStock: 15, Rating: 4.6, NumReviews: 30, IsFeatured: true}},
	{"Electronics", usecase.ProductInput{Name: "Mechanical Keyboard", Description: "Brown switches", Brand: "Clicky", Price: 89, CountInStock: 8, Rating: 4.8, NumReviews: 54}},
	{"Books", usecase.ProductInput{Name: "The Go Programming Language", Description: "Donovan and Kernighan", Brand: "Addison-Wesley", Price: 39.99, CountInStock: 20, Rating: 4.9, NumReviews: 210, IsFeatured: true}},
	{"Books", usecase.ProductInput{Name: "Designing Data-Intensive Applications", Description: "Kleppmann", Brand: "O'Reilly", Price: 45, CountInStock: 12, Rating: 4.9, NumReviews: 180}},
	{"Home", usecase.ProductInput{Name: "Desk Lamp", Description: "Warm LED", Brand: "Glow", Price: 24.75, CountInStock: 0, Rating: 3.9, NumReviews: 7}},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	// Seeding never issues tokens.
	userUC := usecase.NewUserUsecase(userRepo, nil)

	// Reuse categories by name so re-runs are idempotent.
	existing, err := categoryUC.List(ctx)
	if err != nil {
		log.Fatalf("list categories: %v", err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}
	for _, in := range categories {
		if _, ok := byName[in.Name]; ok {
			continue
		}
		c, err := categoryUC.Create(ctx, in)
		if err != nil {
			log.Fatalf("create category %s: %v", in.Name, err)
		}
		byName[c.Name] = c.ID
	}

	count, err := productUC.Count(ctx)
	if err != nil {
		log.Fatalf("count products: %v", err)
	}
	var inserted int
	if count == 0 {
		for _, spec := range products {
			spec.input.CategoryID = byName[spec.category]
			v, err := productUC.Validate(ctx, spec.input)
			if err != nil {
				log.Fatalf("validate product %s: %v", spec.input.Name, err)
			}
			if _, err := productUC.Create(ctx, v.WithImage(placeholder)); err != nil {
				log.Fatalf("create product %s: %v", spec.input.Name, err)
			}
			inserted++
		}
	}

	admin, err := userRepo.GetByEmail(ctx, seedEmail)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		admin, err = userUC.Create(ctx, usecase.UserInput{
			Name:     "Shop Admin",
			Email:    seedEmail,
			Password: seedPassword,
			Phone:    "+31 20 555 0100",
			IsAdmin:  true,
			Country:  "NL",
		})
		if err != nil {
			log.Fatalf("create admin: %v", err)
		}
	case err != nil:
		log.Fatalf("lookup admin: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Categories:   %d\n", len(byName))
	fmt.Printf("  Products:     %d created (%d already present)\n", inserted, count)
	fmt.Printf("  Admin:        %s / %s\n", admin.Email, seedPassword)
	fmt.Printf("  Admin ID:     %s\n", admin.ID)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1: log in to get a token:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:3000/api/v1/users/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2: browse the catalog (public):")
	fmt.Println()
	fmt.Println("    curl -s http://localhost:3000/api/v1/products")
	fmt.Println("    curl -s http://localhost:3000/api/v1/products/get/featured/2")
	fmt.Println()
	fmt.Println("  Step 3: anything else needs the token:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:3000/api/v1/orders/get/count -H \"Authorization: Bearer $JWT\"")
}
