package database

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Competition represents an announced event students can register for.
type Competition struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreateTime  time.Time `json:"createTime"`
}

func (c *Client) CreateCompetition(ctx context.Context, competition *Competition) error {
	if competition.CreateTime.IsZero() {
		competition.CreateTime = time.Now()
	}
	if err := c.db.WithContext(ctx).Create(competition).Error; err != nil {
		log.Error("failed to create competition", "error", err)
		return err
	}
	return nil
}

// GetCompetitions returns all competitions ordered newest-first.
// A non-blank keyword narrows the result to competitions whose title or
// description contains it, case-insensitively.
func (c *Client) GetCompetitions(ctx context.Context, keyword string) ([]Competition, error) {
	query := c.db.WithContext(ctx).Order("id DESC")
	if kw := strings.TrimSpace(keyword); kw != "" {
		pattern := "%" + strings.ToLower(kw) + "%"
		query = query.Where("lower(title) LIKE ? OR lower(description) LIKE ?", pattern, pattern)
	}

	var competitions []Competition
	if err := query.Find(&competitions).Error; err != nil {
		log.Error("failed to get competitions", "error", err)
		return nil, err
	}
	return competitions, nil
}

// DeleteCompetitionCascade removes a competition together with all
// registrations referencing it. Both deletions run in one transaction, so
// a failure of either leaves the store untouched.
func (c *Client) DeleteCompetitionCascade(ctx context.Context, id uint) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competition_id = ?", id).Delete(&Registration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Competition{}, id).Error
	})
	if err != nil {
		log.Error("failed to delete competition", "id", id, "error", err)
		return err
	}
	return nil
}
