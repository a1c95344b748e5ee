package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"bookcatalog/internal/config"
	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"
)

var (
	countries  = []string{"United Kingdom", "United States", "Colombia", "Japan", "Nigeria"}
	categories = []string{"Fantasy", "Science Fiction", "History", "Mystery", "Biography", "Philosophy"}
	authors    = []struct {
		first, last string
		country     int
	}{
		{"Terry", "Pratchett", 0},
		{"Ursula", "Le Guin", 1},
		{"Gabriel", "Garcia Marquez", 2},
		{"Haruki", "Murakami", 3},
		{"Chinua", "Achebe", 4},
		{"Neil", "Gaiman", 0},
	}
	reviewers = [][2]string{{"Ada", "Critic"}, {"Ben", "Reader"}, {"Cleo", "Pages"}}
	words     = []string{"Shadow", "River", "Crown", "Garden", "Machine", "Winter", "Harbor", "Silence"}
)

func main() {
	ctx := context.Background()
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	count, err := strconv.Atoi(getEnv("SEED_BOOKS", "50"))
	if err != nil || count < 0 {
		log.Fatalf("SEED_BOOKS must be a non-negative integer")
	}

	backend, err := config.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("cannot open store: %v", err)
	}
	defer backend.Close()

	svc := usecase.NewCatalogService(backend.Store, cfg.ServiceOptions()...)
	existing, err := svc.ListBooks(ctx)
	if err != nil {
		log.Fatalf("cannot list books: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("catalog already holds %d books, nothing to do", len(existing))
		return
	}

	if err := seed(ctx, svc, count, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("Successfully seeded %d books!", count)
}

func seed(ctx context.Context, svc *usecase.CatalogService, count int, rnd *rand.Rand) error {
	countryIDs := make([]int64, 0, len(countries))
	for _, name := range countries {
		c, err := svc.CreateCountry(ctx, entity.Country{Name: name})
		if err != nil {
			return fmt.Errorf("country %s: %w", name, err)
		}
		countryIDs = append(countryIDs, c.ID)
	}

	categoryIDs := make([]int64, 0, len(categories))
	for _, name := range categories {
		c, err := svc.CreateCategory(ctx, entity.Category{Name: name})
		if err != nil {
			return fmt.Errorf("category %s: %w", name, err)
		}
		categoryIDs = append(categoryIDs, c.ID)
	}

	authorIDs := make([]int64, 0, len(authors))
	for _, a := range authors {
		created, err := svc.CreateAuthor(ctx, entity.Author{FirstName: a.first, LastName: a.last, CountryID: countryIDs[a.country]})
		if err != nil {
			return fmt.Errorf("author %s %s: %w", a.first, a.last, err)
		}
		authorIDs = append(authorIDs, created.ID)
	}

	reviewerIDs := make([]int64, 0, len(reviewers))
	for _, r := range reviewers {
		created, err := svc.CreateReviewer(ctx, entity.Reviewer{FirstName: r[0], LastName: r[1]})
		if err != nil {
			return fmt.Errorf("reviewer %s %s: %w", r[0], r[1], err)
		}
		reviewerIDs = append(reviewerIDs, created.ID)
	}

	for i := 0; i < count; i++ {
		published := time.Date(1950+rnd.Intn(75), time.Month(1+rnd.Intn(12)), 1, 0, 0, 0, 0, time.UTC)
		book, err := svc.CreateBook(ctx, usecase.BookInput{
			Book: entity.Book{
				ISBN:          fmt.Sprintf("978-%010d", i+1),
				Title:         fmt.Sprintf("The %s of the %s", pick(rnd, words), pick(rnd, words)),
				DatePublished: &published,
			},
			AuthorIDs:   sample(rnd, authorIDs, 1+rnd.Intn(2)),
			CategoryIDs: sample(rnd, categoryIDs, 1+rnd.Intn(3)),
		})
		if err != nil {
			return fmt.Errorf("book %d: %w", i+1, err)
		}

		for _, reviewerID := range sample(rnd, reviewerIDs, rnd.Intn(len(reviewerIDs)+1)) {
			_, err := svc.CreateReview(ctx, entity.Review{
				Headline:   fmt.Sprintf("A %s read", pick(rnd, words)),
				ReviewText: "Seeded review.",
				Rating:     1 + rnd.Intn(5),
				BookID:     book.ID,
				ReviewerID: reviewerID,
			})
			if err != nil {
				return fmt.Errorf("review of book %d: %w", book.ID, err)
			}
		}

		if (i+1)%10 == 0 {
			log.Printf("Seeded %d/%d books", i+1, count)
		}
	}
	return nil
}

func pick(rnd *rand.Rand, from []string) string {
	return from[rnd.Intn(len(from))]
}

// sample returns n distinct ids drawn from ids.
func sample(rnd *rand.Rand, ids []int64, n int) []int64 {
	perm := rnd.Perm(len(ids))
	if n > len(ids) {
		n = len(ids)
	}
	out := make([]int64, 0, n)
	for _, i := range perm[:n] {
		out = append(out, ids[i])
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
