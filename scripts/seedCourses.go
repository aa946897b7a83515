package main

import (
	"log"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

// Seeds a demo course tree for local development. Safe to run twice: courses
// are matched by title.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	courses := []struct {
		course  courseModels.Course
		modules []courseModels.Module
	}{
		{
			course: courseModels.Course{
				Title:          "Go for Backend Developers",
				Description:    "From syntax to production services.",
				Author:         "Platform Team",
				EstimatedHours: 12,
				IsPublished:    true,
			},
			modules: []courseModels.Module{
				{
					Title: "Getting Started", OrderIndex: 0,
					Lessons: []courseModels.Lesson{
						{Title: "Why Go", ContentType: courseModels.ContentTypeVideo, EstimatedMinutes: 10, OrderIndex: 0},
						{Title: "Toolchain Setup", ContentType: courseModels.ContentTypeText, EstimatedMinutes: 15, OrderIndex: 1},
					},
				},
				{
					Title: "Building Services", OrderIndex: 1,
					Lessons: []courseModels.Lesson{
						{Title: "HTTP Handlers", ContentType: courseModels.ContentTypeVideo, EstimatedMinutes: 25, OrderIndex: 0},
						{Title: "Persistence", ContentType: courseModels.ContentTypeVideo, EstimatedMinutes: 30, OrderIndex: 1},
						{Title: "Recap Podcast", ContentType: courseModels.ContentTypeAudio, EstimatedMinutes: 20, OrderIndex: 2},
					},
				},
			},
		},
	}

	for _, entry := range courses {
		var existing courseModels.Course
		if err := db.Where("title = ? AND is_deleted = ?", entry.course.Title, false).First(&existing).Error; err == nil {
			log.Printf("Course %q already exists, skipping", entry.course.Title)
			continue
		}

		crs := entry.course
		if err := db.Create(&crs).Error; err != nil {
			log.Fatalf("Failed to create course %q: %v", crs.Title, err)
		}

		for _, mod := range entry.modules {
			mod.CourseID = crs.ID
			if err := db.Create(&mod).Error; err != nil {
				log.Fatalf("Failed to create module %q: %v", mod.Title, err)
			}
		}

		log.Printf("Seeded course %q with %d modules", crs.Title, len(entry.modules))
	}

	log.Println("Seeding completed.")
}
