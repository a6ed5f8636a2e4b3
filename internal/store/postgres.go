package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lapor/internal/model"
)

// Postgres is the managed-backend client: GORM over the hosted
// Postgres for table CRUD, with every successful write mirrored onto
// the redis change feed so other subscribers converge.
type Postgres struct {
	db   *gorm.DB
	feed *Feed
}

var _ Client = (*Postgres)(nil)

// NewPostgres connects to the backend database and runs migrations.
func NewPostgres(dsn string, feed *Feed) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Report{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return &Postgres{db: db, feed: feed}, nil
}

func (p *Postgres) SelectProfiles(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := p.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (p *Postgres) InsertProfile(ctx context.Context, user *model.User) error {
	if err := p.db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	p.feed.Publish(ctx, profileChannel, ProfileEvent{Kind: ChangeInsert, Row: *user})
	return nil
}

func (p *Postgres) UpdateProfile(ctx context.Context, id string, patch model.UserPatch) error {
	updates := profileUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	var updated model.User
	if err := p.db.WithContext(ctx).First(&updated, "id = ?", id).Error; err == nil {
		p.feed.Publish(ctx, profileChannel, ProfileEvent{Kind: ChangeUpdate, Row: updated})
	}
	return nil
}

func (p *Postgres) DeleteProfile(ctx context.Context, id string) error {
	if err := p.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error; err != nil {
		return err
	}
	p.feed.Publish(ctx, profileChannel, ProfileEvent{Kind: ChangeDelete, Row: model.User{ID: id}})
	return nil
}

func (p *Postgres) SelectReports(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	if err := p.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (p *Postgres) InsertReport(ctx context.Context, report *model.Report) error {
	if err := p.db.WithContext(ctx).Create(report).Error; err != nil {
		return err
	}
	p.feed.Publish(ctx, reportChannel, ReportEvent{Kind: ChangeInsert, Row: *report})
	return nil
}

func (p *Postgres) UpdateReport(ctx context.Context, id string, patch model.ReviewPatch) error {
	updates := map[string]interface{}{
		"status":   patch.Status,
		"feedback": patch.Feedback,
	}
	if err := p.db.WithContext(ctx).Model(&model.Report{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return err
	}
	var updated model.Report
	if err := p.db.WithContext(ctx).First(&updated, "id = ?", id).Error; err == nil {
		p.feed.Publish(ctx, reportChannel, ReportEvent{Kind: ChangeUpdate, Row: updated})
	}
	return nil
}

func (p *Postgres) DeleteReport(ctx context.Context, id string) error {
	if err := p.db.WithContext(ctx).Delete(&model.Report{}, "id = ?", id).Error; err != nil {
		return err
	}
	p.feed.Publish(ctx, reportChannel, ReportEvent{Kind: ChangeDelete, Row: model.Report{ID: id}})
	return nil
}

func (p *Postgres) DeleteReportsByUser(ctx context.Context, userID string) error {
	var owned []model.Report
	if err := p.db.WithContext(ctx).Select("id").Find(&owned, "user_id = ?", userID).Error; err != nil {
		return err
	}
	if err := p.db.WithContext(ctx).Delete(&model.Report{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	for _, r := range owned {
		p.feed.Publish(ctx, reportChannel, ReportEvent{Kind: ChangeDelete, Row: model.Report{ID: r.ID}})
	}
	return nil
}

func (p *Postgres) SubscribeProfileChanges(ctx context.Context, fn func(ProfileEvent)) error {
	return p.feed.Subscribe(ctx, profileChannel, func(data []byte) {
		if ev, ok := decodeProfileEvent(data); ok {
			fn(ev)
		}
	})
}

func (p *Postgres) SubscribeReportChanges(ctx context.Context, fn func(ReportEvent)) error {
	return p.feed.Subscribe(ctx, reportChannel, func(data []byte) {
		if ev, ok := decodeReportEvent(data); ok {
			fn(ev)
		}
	})
}

// Close releases the feed connection. The gorm pool is owned by the
// process and closed on exit.
func (p *Postgres) Close() error {
	return p.feed.Close()
}

func profileUpdates(patch model.UserPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.PJLPNumber != nil {
		updates["pjlp_number"] = *patch.PJLPNumber
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}
	return updates
}
