package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SubscriptionFile is the declarative routing table for event consumers.
//
//	subscriptions:
//	  - topic: orders
//	    filter: event.type == "OrderCreated"
//	    priority: 1
//	    handler: order-created
//	  - topic: orders
//	    fallback: true
//	    handler: unrecognized
type SubscriptionFile struct {
	Subscriptions []SubscriptionEntry `yaml:"subscriptions"`
}

type SubscriptionEntry struct {
	Topic    string `yaml:"topic"`
	Filter   string `yaml:"filter"`
	Priority int    `yaml:"priority"`
	Handler  string `yaml:"handler"`
	Fallback bool   `yaml:"fallback"`
}

func LoadSubscriptions(path string) (SubscriptionFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SubscriptionFile{}, fmt.Errorf("read subscriptions file: %w", err)
	}
	return ParseSubscriptions(raw)
}

func ParseSubscriptions(raw []byte) (SubscriptionFile, error) {
	var file SubscriptionFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return SubscriptionFile{}, fmt.Errorf("decode subscriptions file: %w", err)
	}
	for i, entry := range file.Subscriptions {
		if entry.Topic == "" || entry.Handler == "" {
			return SubscriptionFile{}, fmt.Errorf("subscription %d: topic and handler are required", i)
		}
		if entry.Fallback && entry.Filter != "" {
			return SubscriptionFile{}, fmt.Errorf("subscription %d: fallback entries take no filter", i)
		}
	}
	return file, nil
}
