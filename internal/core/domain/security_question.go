package domain

import (
	"sort"
	"strings"
	"time"
)

// ResetTokenTTL is how long a password reset token stays usable.
const ResetTokenTTL = 15 * time.Minute

// MinSecurityAnswerLength is the shortest security answer accepted at registration.
const MinSecurityAnswerLength = 3

// SecurityQuestions maps the question keys a user may pick to their prompts.
var SecurityQuestions = map[string]string{
	"pet_name":         "Your pet's name",
	"childhood_friend": "Your best childhood friend's name",
	"birth_city":       "Your mother's city of birth",
	"favorite_teacher": "Your favourite teacher's name",
	"first_school":     "The name of your first school",
}

// NormalizeSecurityQuestion trims and lower-cases a question key.
func NormalizeSecurityQuestion(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// IsSecurityQuestion reports whether key names a known question.
func IsSecurityQuestion(key string) bool {
	_, ok := SecurityQuestions[NormalizeSecurityQuestion(key)]
	return ok
}

// SecurityQuestionKeys lists the known question keys in sorted order.
func SecurityQuestionKeys() []string {
	keys := make([]string, 0, len(SecurityQuestions))
	for k := range SecurityQuestions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ResetTokenUsable reports whether a stored reset token hash is set and has not
// expired at now.
func (u User) ResetTokenUsable(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}
