package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/dimaa-cafe/api/internal/enum"
	"github.com/dimaa-cafe/api/internal/store"
)

func main() {
	// CLI flags
	dataDir := flag.String("data-dir", "", "Directory for the JSON documents")
	password := flag.String("password", "", "Admin password to hash")
	withSamples := flag.Bool("samples", true, "Seed sample menu items")
	flag.Parse()

	// Fall back to environment variables
	if *dataDir == "" {
		*dataDir = os.Getenv("DATA_DIR")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}

	// Fall back to defaults
	if *dataDir == "" {
		*dataDir = "data"
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}

	categoryStore := store.NewCategoryStore(*dataDir)
	if _, err := categoryStore.Load(); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Category document ready in %s", *dataDir)

	menuStore := store.NewMenuStore(*dataDir)
	if *withSamples {
		if err := menuStore.Replace(sampleMenu()); err != nil {
			log.Fatalf("Failed to seed menu: %v", err)
		}
		log.Printf("Menu document seeded with sample items in %s", *dataDir)
	} else {
		if _, err := menuStore.Load(); err != nil {
			log.Fatalf("Failed to initialize menu: %v", err)
		}
		log.Printf("Empty menu document ready in %s", *dataDir)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	log.Printf("Set this in your environment:\n\nADMIN_PASSWORD_HASH=%s\n", string(hash))
}

func sampleMenu() store.MenuDocument {
	return store.MenuDocument{
		Sections: []store.Section{
			{
				Category: enum.CategoryHotCoffee,
				Items: []store.MenuItem{
					{
						ID:       "espresso",
						Category: enum.CategoryHotCoffee,
						Name:     store.LanguageText{En: "Espresso", Fa: "اسپرسو"},
						Description: store.LanguageText{
							En: "Double shot of our house blend",
							Fa: "دبل شات از ترکیب اختصاصی کافه",
						},
						Ingredients: store.LanguageList{
							En: []string{"arabica beans"},
							Fa: []string{"دانه عربیکا"},
						},
						Price:       store.LanguageText{En: "4.50", Fa: "85000"},
						Calories:    5,
						IsAvailable: true,
					},
					{
						ID:       "cappuccino",
						Category: enum.CategoryHotCoffee,
						Name:     store.LanguageText{En: "Cappuccino", Fa: "کاپوچینو"},
						Description: store.LanguageText{
							En: "Espresso with steamed milk and thick foam",
							Fa: "اسپرسو با شیر بخارپز و فوم غلیظ",
						},
						Ingredients: store.LanguageList{
							En: []string{"espresso", "milk"},
							Fa: []string{"اسپرسو", "شیر"},
						},
						Price:       store.LanguageText{En: "5.50", Fa: "95000/120000"},
						Calories:    120,
						IsAvailable: true,
					},
				},
			},
			{
				Category: enum.CategoryBreakfast,
				Items: []store.MenuItem{
					{
						ID:       "persian-breakfast",
						Category: enum.CategoryBreakfast,
						Name:     store.LanguageText{Fa: "صبحانه ایرانی"},
						Description: store.LanguageText{
							Fa: "نان تازه، پنیر، گردو، خامه و عسل",
						},
						Ingredients: store.LanguageList{
							Fa: []string{"نان", "پنیر", "گردو", "خامه", "عسل"},
						},
						Price:       store.LanguageText{Fa: "180000"},
						Calories:    650,
						IsAvailable: true,
						OnlyShowIn:  []string{enum.LanguagePersian},
					},
				},
			},
		},
	}
}
