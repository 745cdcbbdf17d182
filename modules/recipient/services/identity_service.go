package services

import (
	"context"
	"crypto/md5"
	"strings"

	"github.com/google/uuid"

	"github.com/fedspend/awards-api/modules/recipient/domain"
)

// IdentityService resolves the stable recipient identity token used as a
// join key across the system. A stored lookup row always wins; otherwise the
// token is derived deterministically from the DUNS and legal business name.
type IdentityService struct {
	repo domain.LookupRepository
}

func NewIdentityService(repo domain.LookupRepository) *IdentityService {
	return &IdentityService{repo: repo}
}

// Resolve returns the recipient identity token. The stored hash takes
// precedence even when it differs from what FallbackHash would compute for
// the same inputs.
func (s *IdentityService) Resolve(ctx context.Context, recipientUniqueID, recipientName *string) (string, error) {
	if recipientUniqueID != nil && *recipientUniqueID != "" {
		hash, err := s.repo.FetchHashByDUNS(ctx, *recipientUniqueID)
		if err != nil {
			return "", err
		}
		if hash != nil {
			return *hash, nil
		}
	}
	return FallbackHash(recipientUniqueID, recipientName), nil
}

// FallbackHash derives the identity token the same way the ingestion SQL
// does: MD5(UPPER(CONCAT(duns, legal_business_name)))::uuid, with the digest
// bytes read directly as the UUID.
//
// Known quirk, preserved for join compatibility: an absent DUNS (or name)
// contributes the literal text "None" to the hashed string. The tokens
// already stored elsewhere were derived that way, so this must not be fixed
// independently.
func FallbackHash(recipientUniqueID, recipientName *string) string {
	text := strings.ToUpper(textual(recipientUniqueID) + textual(recipientName))
	digest := md5.Sum([]byte(text))
	return uuid.UUID(digest).String()
}

func textual(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}
