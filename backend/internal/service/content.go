package service

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

const (
	maxCue    = 10
	maxTopics = 5
	briefLen  = 64
)

// ContentPolicy sanitises user text and enforces length limits.
type ContentPolicy struct {
	text       *bluemonday.Policy
	plain      *bluemonday.Policy
	commentMax int
	titleMax   int
}

func NewContentPolicy(cfg *config.Config) *ContentPolicy {
	text := bluemonday.UGCPolicy()
	text.RequireNoFollowOnLinks(true)
	return &ContentPolicy{
		text:       text,
		plain:      bluemonday.StrictPolicy(),
		commentMax: cfg.Public.CommentMaxLength,
		titleMax:   cfg.Public.PostTitleMaxLen,
	}
}

// Comment returns the sanitised markup. Emptiness and length are judged on
// the visible text, so markup neither fills an empty comment nor counts
// against the limit.
func (p *ContentPolicy) Comment(content string) (string, error) {
	visible := p.visible(content)
	if visible == "" {
		return "", internal_errors.BadRequest("Content is empty")
	}
	if utf8.RuneCountInString(visible) > p.commentMax {
		return "", internal_errors.BadRequest("Content is too long")
	}
	return strings.TrimSpace(p.text.Sanitize(content)), nil
}

func (p *ContentPolicy) Title(title string) (string, error) {
	clean := strings.TrimSpace(p.plain.Sanitize(title))
	if clean == "" {
		return "", internal_errors.BadRequest("Title is empty")
	}
	if utf8.RuneCountInString(clean) > p.titleMax {
		return "", internal_errors.BadRequest("Title is too long")
	}
	return clean, nil
}

func (p *ContentPolicy) Body(content string) (string, error) {
	if p.visible(content) == "" {
		return "", internal_errors.BadRequest("Content is empty")
	}
	return strings.TrimSpace(p.text.Sanitize(content)), nil
}

// visible is the text a reader sees once every tag is stripped.
func (p *ContentPolicy) visible(content string) string {
	return strings.TrimSpace(html.UnescapeString(p.plain.Sanitize(content)))
}

// Cue deduplicates mentioned members, preserving order.
func (p *ContentPolicy) Cue(cue []domain.MemberId) ([]domain.MemberId, error) {
	return uniqueIds(cue, maxCue, domain.CategoryMember, "Invalid cue")
}

func (p *ContentPolicy) Topics(topics []domain.TopicId) ([]domain.TopicId, error) {
	return uniqueIds(topics, maxTopics, domain.CategoryUnknown, "Invalid topics")
}

// uniqueIds rejects malformed ids. With want set to CategoryUnknown only the
// character set is checked.
func uniqueIds(ids []string, max int, want domain.Category, message string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if !validId(id, want) {
			return nil, internal_errors.BadRequest(message)
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) > max {
		return nil, internal_errors.BadRequest(message)
	}
	return out, nil
}

func validId(id string, want domain.Category) bool {
	if want != domain.CategoryUnknown {
		return domain.CategoryOf(id) == want
	}
	if id == "" || len(id) > domain.IdMaxLength {
		return false
	}
	for _, c := range id {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// brief cuts text to a notice-sized preview.
func brief(text string) string {
	if utf8.RuneCountInString(text) <= briefLen {
		return text
	}
	return string([]rune(text)[:briefLen])
}
