package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

const seedLockKey = "cms:seed:lock"

// SeedService installs the demo fixtures once. A best-effort redis lock keeps
// concurrent seed calls from racing past the existence check; the check on
// the hero_title content block is what makes the endpoint idempotent.
type SeedService struct {
	content   store.Collection[models.ContentBlock]
	nav       store.Collection[models.NavItem]
	social    store.Collection[models.SocialLink]
	portfolio store.Collection[models.PortfolioItem]
	settings  store.Collection[models.Settings]
	locker    *redis.Client
	log       zerolog.Logger
}

func NewSeedService(
	content store.Collection[models.ContentBlock],
	nav store.Collection[models.NavItem],
	social store.Collection[models.SocialLink],
	portfolio store.Collection[models.PortfolioItem],
	settings store.Collection[models.Settings],
	locker *redis.Client,
	log zerolog.Logger,
) *SeedService {
	return &SeedService{
		content:   content,
		nav:       nav,
		social:    social,
		portfolio: portfolio,
		settings:  settings,
		locker:    locker,
		log:       log,
	}
}

// Run seeds the demo content. It reports false without touching the store
// when the data is already present.
func (s *SeedService) Run(ctx context.Context) (bool, error) {
	if s.locker != nil {
		ok, err := s.locker.SetNX(ctx, seedLockKey, "1", 30*time.Second).Result()
		if err != nil {
			s.log.Warn().Err(err).Msg("seed lock unavailable, continuing")
		} else if !ok {
			return false, nil
		} else {
			defer s.locker.Del(context.WithoutCancel(ctx), seedLockKey)
		}
	}

	if _, err := s.content.Get(ctx, "key", "hero_title"); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	for _, block := range seedContentBlocks(now) {
		if err := s.content.Insert(ctx, block); err != nil {
			return false, err
		}
	}
	for _, item := range seedNavItems() {
		if err := s.nav.Insert(ctx, item); err != nil {
			return false, err
		}
	}
	for _, link := range seedSocialLinks() {
		if err := s.social.Insert(ctx, link); err != nil {
			return false, err
		}
	}
	for _, item := range seedPortfolioItems(now) {
		if err := s.portfolio.Insert(ctx, item); err != nil {
			return false, err
		}
	}
	if err := s.settings.Insert(ctx, DefaultSettings()); err != nil {
		return false, err
	}

	return true, nil
}

func seedContentBlocks(now string) []models.ContentBlock {
	blocks := []struct{ key, value string }{
		{"hero_title", "Creative Solutions for the Digital Age"},
		{"hero_subtitle", "Graphic Design • Video Editing • Social Media • AI Automation"},
		{"hero_cta", "View Our Work"},
		{"about_title", "About IMA"},
		{"about_text", "We are a creative studio specializing in visual storytelling, brand development, and cutting-edge digital solutions. Our mission is to transform ideas into impactful experiences that resonate with audiences and drive results."},
		{"services_title", "What We Do"},
		{"contact_title", "Let's Create Together"},
		{"contact_subtitle", "Have a project in mind? We would love to hear from you."},
	}

	out := make([]models.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, models.ContentBlock{
			ID:        uuid.NewString(),
			Key:       b.key,
			Value:     b.value,
			Type:      "text",
			UpdatedAt: now,
		})
	}
	return out
}

func seedNavItems() []models.NavItem {
	items := []struct {
		label string
		href  string
	}{
		{"Home", "/"},
		{"Portfolio", "/portfolio"},
		{"Services", "/services"},
		{"About", "/about"},
		{"Contact", "/contact"},
	}

	out := make([]models.NavItem, 0, len(items))
	for i, it := range items {
		out = append(out, models.NavItem{
			ID:           uuid.NewString(),
			Label:        it.label,
			Href:         it.href,
			DisplayOrder: i,
			IsVisible:    true,
			IsExternal:   false,
		})
	}
	return out
}

func seedSocialLinks() []models.SocialLink {
	links := []struct {
		platform string
		url      string
	}{
		{"instagram", "https://instagram.com/ima"},
		{"linkedin", "https://linkedin.com/company/ima"},
		{"behance", "https://behance.net/ima"},
		{"youtube", "https://youtube.com/@ima"},
	}

	out := make([]models.SocialLink, 0, len(links))
	for i, l := range links {
		out = append(out, models.SocialLink{
			ID:           uuid.NewString(),
			Platform:     l.platform,
			URL:          l.url,
			IsVisible:    true,
			DisplayOrder: i,
		})
	}
	return out
}

func seedPortfolioItems(now string) []models.PortfolioItem {
	imageType := "image"
	youtubeType := "youtube"
	youtubeURL := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	return []models.PortfolioItem{
		{
			ID:           uuid.NewString(),
			Title:        "Brand Identity Design",
			Category:     "graphics",
			Description:  "Complete brand identity package including logo, color palette, typography, and brand guidelines.",
			ToolsUsed:    []string{"Adobe Illustrator", "Adobe Photoshop", "Figma"},
			MediaType:    &imageType,
			ThumbnailURL: strptr("https://images.unsplash.com/photo-1600590008363-1c7dcf5d568d?w=800"),
			IsFeatured:   true,
			IsPublished:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Title:        "Product Launch Video",
			Category:     "video",
			Description:  "Cinematic product launch video with motion graphics and professional color grading.",
			ToolsUsed:    []string{"Adobe Premiere Pro", "After Effects", "DaVinci Resolve"},
			MediaType:    &youtubeType,
			MediaURL:     &youtubeURL,
			ThumbnailURL: strptr("https://images.unsplash.com/photo-1574717024653-61fd2cf4d44d?w=800"),
			IsFeatured:   true,
			IsPublished:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Title:        "Social Media Campaign",
			Category:     "social_media",
			Description:  "Comprehensive social media strategy and content creation for product launch.",
			ToolsUsed:    []string{"Canva", "Adobe Express", "Hootsuite"},
			MediaType:    &imageType,
			ThumbnailURL: strptr("https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=800"),
			IsFeatured:   false,
			IsPublished:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Title:        "AI Workflow Automation",
			Category:     "ai_automation",
			Description:  "Custom AI-powered automation system for content scheduling and analytics.",
			ToolsUsed:    []string{"Python", "OpenAI API", "Zapier", "Make"},
			MediaType:    &imageType,
			ThumbnailURL: strptr("https://images.unsplash.com/photo-1677442136019-21780ecad995?w=800"),
			IsFeatured:   true,
			IsPublished:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
