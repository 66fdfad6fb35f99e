package usecase

import (
	"regexp"
	"strings"

	"github.com/codewithmercy/community-bot/internal/biz/domain"
)

// Content-policy detectors. Each is a stateless predicate over the full
// message text; detectors are additive and never suppress each other. The
// single exception is the internal-link exemption: a message carrying a
// t.me/ reference is never flagged for ExternalLink, since linking within
// the platform is allowed. The exemption applies to that detector only.
var (
	// generic domain-like token: dot-separated labels with a 2+ letter TLD
	linkPattern = regexp.MustCompile(`(?i)(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}`)

	// invite deep links for Telegram and third-party chat apps; a plain
	// t.me/<group> reference is internal and deliberately absent here
	invitePattern = regexp.MustCompile(`(?i)(joinchat|whatsapp\.com/invite|chat\.whatsapp\.com)`)

	// 10-15 digit runs, optional + prefix
	phonePattern = regexp.MustCompile(`\+?\d{10,15}`)

	scamPattern = regexp.MustCompile(`(?i)(earn money|free cash|investment|quick profit|double your money|easy income|loan|betting tips|crypto giveaway|forex profit)`)
)

// internalLinkMarker marks an in-platform reference that exempts the
// message from the external-link detector
const internalLinkMarker = "t.me/"

// Classify evaluates text against all content-policy detectors and returns
// the verdict. Empty or whitespace-only text is always clean.
func Classify(text string) domain.Verdict {
	if strings.TrimSpace(text) == "" {
		return domain.Clean
	}

	var reasons []domain.Reason

	if linkPattern.MatchString(text) && !containsInternalLink(text) {
		reasons = append(reasons, domain.ReasonExternalLink)
	}
	if invitePattern.MatchString(text) {
		reasons = append(reasons, domain.ReasonInviteLink)
	}
	if phonePattern.MatchString(text) {
		reasons = append(reasons, domain.ReasonPhoneNumber)
	}
	if scamPattern.MatchString(text) {
		reasons = append(reasons, domain.ReasonScamKeyword)
	}

	return domain.Verdict{Reasons: reasons}
}

func containsInternalLink(text string) bool {
	return strings.Contains(strings.ToLower(text), internalLinkMarker)
}
