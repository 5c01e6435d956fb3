// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"churchvlog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumVideos      int
	CommentsPerVid int
	ShouldClean    bool
}

var sermonTopics = []string{
	"Walking in Faith", "The Power of Prayer", "Love Your Neighbor",
	"Grace and Forgiveness", "Finding Peace in Hard Times", "The Good Shepherd",
	"Living with Purpose", "Hope That Does Not Disappoint", "The Prodigal Son",
	"Strength in Weakness", "A Heart of Gratitude", "Faith Over Fear",
}

var commentPhrases = []string{
	"Amen!", "This message really spoke to me.", "Thank you Pastor!",
	"Praise God!", "Needed to hear this today.", "God bless you all.",
	"Sharing this with my family.", "What a powerful word.",
	"Hallelujah!", "So encouraging, thank you.",
}

// Seeder populates the database with development content.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded content tables.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Comment{},
		&models.BannedDevice{},
		&models.Video{},
		&models.Announcement{},
		&models.GalleryItem{},
		&models.ChurchInfo{},
		&models.SystemLog{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// spreadBack returns a timestamp up to maxDays in the past.
func (s *Seeder) spreadBack(maxDays int) time.Time {
	days := s.rng.Intn(maxDays)
	hours := s.rng.Intn(24)
	return time.Now().Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour)
}

// Run seeds videos, comments, announcements, gallery photos, and church info.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	log.Printf("Seeding %d videos with up to %d comments each...", opts.NumVideos, opts.CommentsPerVid)

	for i := 0; i < opts.NumVideos; i++ {
		topic := sermonTopics[s.rng.Intn(len(sermonTopics))]
		video := &models.Video{
			Title:       topic,
			Description: gofakeit.Paragraph(1, 2, 8, " "),
			Type:        models.VideoTypeYouTube,
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", gofakeit.LetterN(11)),
			Views:       s.rng.Intn(500),
			IsActive:    true,
			CreatedAt:   s.spreadBack(120),
		}
		video.Thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", gofakeit.LetterN(11))
		if err := s.db.Create(video).Error; err != nil {
			return fmt.Errorf("create video: %w", err)
		}

		numComments := s.rng.Intn(opts.CommentsPerVid + 1)
		for j := 0; j < numComments; j++ {
			comment := &models.Comment{
				VideoID:           video.ID,
				CommenterName:     gofakeit.FirstName(),
				Content:           commentPhrases[s.rng.Intn(len(commentPhrases))],
				DeviceFingerprint: gofakeit.UUID(),
				CreatedAt:         s.spreadBack(60),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
		}
	}

	for i := 0; i < 5; i++ {
		announcement := &models.Announcement{
			Title:     gofakeit.Sentence(4),
			Content:   gofakeit.Paragraph(1, 3, 10, " "),
			IsActive:  true,
			CreatedAt: s.spreadBack(30),
		}
		if err := s.db.Create(announcement).Error; err != nil {
			return fmt.Errorf("create announcement: %w", err)
		}
	}

	info := &models.ChurchInfo{
		Name:         "Grace Community Church",
		Mission:      "Sharing the gospel with our community",
		Address:      gofakeit.Address().Address,
		Phone:        gofakeit.Phone(),
		Email:        "office@gracecommunity.example",
		Pastor:       fmt.Sprintf("Pastor %s %s", gofakeit.FirstName(), gofakeit.LastName()),
		ServiceTimes: "Sundays at 9:00 AM and 11:00 AM",
		Description:  gofakeit.Paragraph(1, 3, 10, " "),
	}
	if err := s.db.Create(info).Error; err != nil {
		return fmt.Errorf("create church info: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}
