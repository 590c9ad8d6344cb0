package utils

import (
	"fmt"
	"log"

	"conduit/internal/auth"
	"conduit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultNumUsers        = 20
	DefaultArticlesPerUser = 3
	demoPassword           = "DemoPassword123!"
)

var demoTagPool = []string{"golang", "gin", "gorm", "webdev", "testing", "databases", "tutorial"}

// SeedDemoData creates demo users with a follow chain, articles with
// tags, and a favorite per user. Safe to rerun: link rows are written
// with on-conflict-do-nothing and users are keyed by unique email.
func SeedDemoData(db *gorm.DB, numUsers, articlesPerUser int) error {
	if numUsers < 1 {
		numUsers = DefaultNumUsers
	}
	if articlesPerUser < 0 {
		articlesPerUser = DefaultArticlesPerUser
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %v", err)
	}

	users := make([]models.User, 0, numUsers)
	for i := 1; i <= numUsers; i++ {
		user := models.User{
			Username: fmt.Sprintf("demo-user-%d", i),
			Email:    fmt.Sprintf("demo%d@example.com", i),
			Password: hash,
			Bio:      fmt.Sprintf("Demo account number %d", i),
		}
		if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %v", user.Email, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d demo users", len(users))

	// Follow chain: every user follows the previous one.
	for i := 1; i < len(users); i++ {
		follow := models.Follow{FollowerID: users[i].ID, FolloweeID: users[i-1].ID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
			return fmt.Errorf("failed to seed follow: %v", err)
		}
	}

	var taken []string
	if err := db.Model(&models.Article{}).Pluck("slug", &taken).Error; err != nil {
		return fmt.Errorf("failed to read existing slugs: %v", err)
	}

	var firstArticles []models.Article
	for i, user := range users {
		for j := 1; j <= articlesPerUser; j++ {
			title := fmt.Sprintf("Demo Article %d by %s", j, user.Username)
			slug := UniqueSlug(title, taken)
			taken = append(taken, slug)

			article := models.Article{
				Slug:        slug,
				Title:       title,
				Description: "A seeded demo article",
				Body:        "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
				AuthorID:    user.ID,
			}
			if err := db.Create(&article).Error; err != nil {
				return fmt.Errorf("failed to seed article: %v", err)
			}

			tagName := demoTagPool[(i+j)%len(demoTagPool)]
			var tag models.Tag
			if err := db.Where("name = ?", tagName).FirstOrCreate(&tag, models.Tag{Name: tagName}).Error; err != nil {
				return fmt.Errorf("failed to seed tag: %v", err)
			}
			if err := db.Model(&article).Association("Tags").Append(&tag); err != nil {
				return fmt.Errorf("failed to link tag: %v", err)
			}

			if j == 1 {
				firstArticles = append(firstArticles, article)
			}
		}
	}
	log.Printf("Seeded %d demo articles", len(users)*articlesPerUser)

	// Each user favorites the next user's first article.
	for i := 0; i+1 < len(users) && i+1 < len(firstArticles); i++ {
		favorite := models.Favorite{UserID: users[i].ID, ArticleID: firstArticles[i+1].ID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error; err != nil {
			return fmt.Errorf("failed to seed favorite: %v", err)
		}
	}

	return nil
}

// CleanupDemoData removes seeded users and everything hanging off them.
func CleanupDemoData(db *gorm.DB) error {
	var userIDs []uint
	if err := db.Model(&models.User{}).
		Where("email LIKE ?", "demo%@example.com").
		Pluck("id", &userIDs).Error; err != nil {
		return fmt.Errorf("failed to find demo users: %v", err)
	}
	if len(userIDs) == 0 {
		log.Println("No demo users found")
		return nil
	}

	var articleIDs []uint
	if err := db.Model(&models.Article{}).
		Where("author_id IN ?", userIDs).
		Pluck("id", &articleIDs).Error; err != nil {
		return fmt.Errorf("failed to find demo articles: %v", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if len(articleIDs) > 0 {
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM article_tags WHERE article_id IN ?", articleIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", articleIDs).Delete(&models.Article{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("follower_id IN ? OR followee_id IN ?", userIDs, userIDs).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", userIDs).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", userIDs).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		log.Printf("✅ Deleted %d demo users", result.RowsAffected)
		return nil
	})
}

func GetUserCount(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %v", err)
	}
	return count, nil
}
