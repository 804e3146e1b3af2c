// fix-username-cache scans the shared redis username hash for entries an
// older importer wrote: keys that are not UUIDs and "Unknown" placeholders
// that would otherwise stop a real lookup.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	hashKey := os.Getenv("USERNAME_KEY")
	if hashKey == "" {
		hashKey = "usernames"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Printf("Scanning %s on %s...\n", hashKey, redisURL)

	var stale []string
	var checked int

	iter := client.HScan(ctx, hashKey, 0, "*", 0).Iterator()
	for iter.Next(ctx) {
		field := iter.Val()
		if !iter.Next(ctx) {
			break
		}
		name := iter.Val()
		checked++

		switch {
		case field != strings.ToLower(strings.TrimSpace(field)):
			fmt.Printf("✗ %s is not normalized\n", field)
			stale = append(stale, field)
		case uuid.Validate(field) != nil:
			fmt.Printf("✗ %s is not a UUID\n", field)
			stale = append(stale, field)
		case name == "" || name == "Unknown":
			fmt.Printf("✗ %s caches the placeholder %q\n", field, name)
			stale = append(stale, field)
		}
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d entries, found %d stale\n", checked, len(stale))
	if len(stale) == 0 {
		return
	}

	fmt.Print("\nDelete these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)
	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	removed, err := client.HDel(ctx, hashKey, stale...).Result()
	if err != nil {
		log.Fatal("Failed to delete entries:", err)
	}
	fmt.Printf("Deleted %d entries\n", removed)
}
