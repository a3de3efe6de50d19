package services

import (
	"strings"
	"sync"

	"devclub.community/configs"
)

// CommunityServiceError is a typed service-level error.
type CommunityServiceError string

func (e CommunityServiceError) Error() string { return string(e) }

const (
	ErrInvalidWhatsAppLink CommunityServiceError = "invalid WhatsApp group link format"
	ErrInvalidDiscordLink  CommunityServiceError = "invalid Discord invite link format"
	ErrInvalidSocialLink   CommunityServiceError = "invalid social link format"
	ErrInvalidContactEmail CommunityServiceError = "invalid email format"
)

// LinksUpdate carries a partial community-links update; empty fields are
// left unchanged.
type LinksUpdate struct {
	WhatsApp  string
	Discord   string
	Instagram string
	LinkedIn  string
	Email     string
}

// ICommunityService exposes the community's public links.
type ICommunityService interface {
	Links() configs.CommunityLinks
	UpdateLinks(update LinksUpdate) (configs.CommunityLinks, error)
}

// CommunityService holds the links snapshot. Updates validate and replace
// the in-process snapshot only; they are not persisted, matching the
// behavior of the system this replaces.
type CommunityService struct {
	mu    sync.RWMutex
	links configs.CommunityLinks
}

// NewCommunityService seeds the snapshot from config.
func NewCommunityService(cfg *configs.AppConfig) *CommunityService {
	return &CommunityService{links: cfg.Links}
}

// Links returns the current snapshot.
func (s *CommunityService) Links() configs.CommunityLinks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.links
}

// UpdateLinks validates each provided field, then swaps the snapshot.
// Validation failures leave the snapshot untouched.
func (s *CommunityService) UpdateLinks(update LinksUpdate) (configs.CommunityLinks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.links
	if update.WhatsApp != "" {
		if !strings.HasPrefix(update.WhatsApp, "https://chat.whatsapp.com/") {
			return s.links, ErrInvalidWhatsAppLink
		}
		next.WhatsApp = update.WhatsApp
	}
	if update.Discord != "" {
		if !strings.HasPrefix(update.Discord, "https://discord.gg/") {
			return s.links, ErrInvalidDiscordLink
		}
		next.Discord = update.Discord
	}
	if update.Instagram != "" {
		if !strings.HasPrefix(update.Instagram, "https://") {
			return s.links, ErrInvalidSocialLink
		}
		next.Instagram = update.Instagram
	}
	if update.LinkedIn != "" {
		if !strings.HasPrefix(update.LinkedIn, "https://") {
			return s.links, ErrInvalidSocialLink
		}
		next.LinkedIn = update.LinkedIn
	}
	if update.Email != "" {
		if !strings.Contains(update.Email, "@") {
			return s.links, ErrInvalidContactEmail
		}
		next.Email = update.Email
	}

	s.links = next
	return next, nil
}

var _ ICommunityService = (*CommunityService)(nil)
