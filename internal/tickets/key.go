package tickets

import (
	"github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/regex"
)

// ExtractKey returns the first Jira ticket key found in a branch name.
// "feature/PROJ-123-desc" yields "PROJ-123"; a branch with two keys
// resolves to the leftmost one.
func ExtractKey(branch string) (string, bool) {
	key := regex.JiraTicket.FindString(branch)
	return key, key != ""
}

// ValidateKey checks that key is a complete ticket key such as PROJ-123.
func ValidateKey(key string) error {
	if !regex.JiraTicketExact.MatchString(key) {
		return errors.ErrInvalidTicketKey.WithContext("ticket", key)
	}
	return nil
}

// ValidateKeys validates every key and stops at the first invalid one.
func ValidateKeys(keys []string) error {
	for _, key := range keys {
		if err := ValidateKey(key); err != nil {
			return err
		}
	}
	return nil
}
