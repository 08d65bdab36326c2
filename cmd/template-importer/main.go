// Seeds question templates from a JSON file into the database.
//
// Usage: template-importer [path/to/templates.json]
//
// The file holds an array of objects:
//
//	[{"title": "...", "text": "...", "options": ["Yes", "No"], "category": "..."}]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"predictplay/database"
	"predictplay/models"

	"github.com/joho/godotenv"
)

type jsonTemplate struct {
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	jsonPath := "./data/templates.json"
	if len(os.Args) > 1 {
		jsonPath = os.Args[1]
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var entries []jsonTemplate
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}

	fmt.Printf("Found %d templates\n\n", len(entries))

	var templates []models.QuestionTemplate
	skipped := 0
	for _, entry := range entries {
		if entry.Text == "" || len(entry.Options) < 2 {
			skipped++
			continue
		}
		tpl := models.QuestionTemplate{
			Title:    entry.Title,
			Text:     entry.Text,
			Category: entry.Category,
		}
		if err := tpl.SetOptions(entry.Options); err != nil {
			skipped++
			continue
		}
		templates = append(templates, tpl)
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d invalid entries\n", skipped)
	}
	if len(templates) == 0 {
		log.Fatal("No valid templates to import")
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	batchSize := 100
	for i := 0; i < len(templates); i += batchSize {
		end := i + batchSize
		if end > len(templates) {
			end = len(templates)
		}

		batch := templates[i:end]
		if err := db.Create(&batch).Error; err != nil {
			log.Printf("Error inserting batch %d-%d: %v\n", i, end, err)
		} else {
			fmt.Printf("Inserted templates %d-%d\n", i+1, end)
		}
	}

	var count int64
	db.Model(&models.QuestionTemplate{}).Count(&count)
	fmt.Printf("\n✓ Total templates in database: %d\n", count)
}
