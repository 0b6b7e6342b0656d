package redisrepo

import "fmt"

const (
	CARD_LOCK_KEY       = "card-lock:%s"       // <storage key>
	CARDS_GENERATED_KEY = "cards-generated:%s" // <resource type>
)

func CardLockKey(storageKey string) string {
	return fmt.Sprintf(CARD_LOCK_KEY, storageKey)
}

func CardsGeneratedKey(resource string) string {
	return fmt.Sprintf(CARDS_GENERATED_KEY, resource)
}
