package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishWithCategoryScope publishes to {baseTopic}.{categoryID} so consumers can
// subscribe to one category or to "{baseTopic}.*" for all of them.
func PublishWithCategoryScope(pub message.Publisher, baseTopic string, categoryID string, msg *message.Message) error {
	if categoryID == "" {
		return fmt.Errorf("categoryID cannot be empty for category-scoped publish")
	}

	return pub.Publish(FormatCategoryScopedTopic(baseTopic, categoryID), msg)
}

// FormatCategoryScopedTopic formats a topic with the category suffix without publishing.
func FormatCategoryScopedTopic(baseTopic string, categoryID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, categoryID)
}
