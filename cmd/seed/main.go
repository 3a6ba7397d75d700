// Command seed wipes and repopulates the experts collection with the demo
// catalogue. Run it once against a fresh database before starting the server.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"expertbook/config"
	"expertbook/database"
	expertRepoPkg "expertbook/database/repository/expert"
	"expertbook/models"
	"expertbook/utils"
)

var seedExperts = []models.Expert{
	{
		Name:        "Dr. Aristhotene",
		Category:    "Technology",
		Experience:  10,
		Rating:      4.8,
		Description: "Cloud Architecture specialist with 10 years of AWS and DevOps experience.",
		Slots: []models.Slot{
			{Date: "2026-02-21", Time: "10:00 AM"},
			{Date: "2026-02-21", Time: "11:00 AM"},
			{Date: "2026-02-22", Time: "02:00 PM"},
		},
	},
	{
		Name:        "Sarah Jenkins",
		Category:    "Management",
		Experience:  8,
		Rating:      4.9,
		Description: "Agile Coach and Project Manager. Helped 50+ startups scale their operations.",
		Slots: []models.Slot{
			{Date: "2026-02-21", Time: "09:00 AM"},
			{Date: "2026-02-21", Time: "01:00 PM"},
		},
	},
	{
		Name:        "Marcus Chen",
		Category:    "Technology",
		Experience:  6,
		Rating:      4.7,
		Description: "Full Stack Developer specializing in React, Node.js, and System Design.",
		Slots: []models.Slot{
			{Date: "2026-02-23", Time: "10:00 AM"},
			{Date: "2026-02-23", Time: "12:00 PM"},
		},
	},
	{
		Name:        "Elena Rodriguez",
		Category:    "Marketing",
		Experience:  12,
		Rating:      5.0,
		Description: "Digital Marketing strategist focused on SEO, SEM, and Brand Growth.",
		Slots: []models.Slot{
			{Date: "2026-02-22", Time: "11:00 AM"},
			{Date: "2026-02-24", Time: "03:00 PM"},
		},
	},
	{
		Name:        "James Wilson",
		Category:    "Finance",
		Experience:  15,
		Rating:      4.6,
		Description: "Certified Financial Planner. Expert in Investment Banking and Personal Finance.",
		Slots: []models.Slot{
			{Date: "2026-02-21", Time: "04:00 PM"},
			{Date: "2026-02-25", Time: "10:00 AM"},
		},
	},
	{
		Name:        "Priya Sharma",
		Category:    "Design",
		Experience:  5,
		Rating:      4.9,
		Description: "Senior UI/UX Designer. Expert in Figma, Prototyping, and Design Systems.",
		Slots: []models.Slot{
			{Date: "2026-02-21", Time: "02:00 PM"},
			{Date: "2026-02-22", Time: "10:00 AM"},
		},
	},
	{
		Name:        "Kevin Durant",
		Category:    "Management",
		Experience:  20,
		Rating:      4.5,
		Description: "Executive Leadership Coach with focus on Corporate Strategy and HR.",
		Slots: []models.Slot{
			{Date: "2026-02-23", Time: "09:00 AM"},
			{Date: "2026-02-23", Time: "11:00 AM"},
		},
	},
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := database.DB().Collection("experts").DeleteMany(ctx, bson.M{}); err != nil {
		logger.Sugar().Fatalf("seed: failed to clear experts: %v", err)
	}
	logger.Sugar().Info("seed: old data cleared")

	repo := expertRepoPkg.NewMongoExpertRepo()
	for i := range seedExperts {
		seedExperts[i].ID = uuid.New().String()
		if err := repo.Create(ctx, &seedExperts[i]); err != nil {
			logger.Sugar().Fatalf("seed: failed to insert expert %q: %v", seedExperts[i].Name, err)
		}
	}
	logger.Sugar().Infof("seed: %d experts seeded successfully", len(seedExperts))
}
