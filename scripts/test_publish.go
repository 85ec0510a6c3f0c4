//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	requestsStream = "stream:terrain:requests"
	resultsStream  = "stream:terrain:results"
)

type terrainRequest struct {
	RequestID uuid.UUID       `json:"request_id"`
	Payload   json.RawMessage `json:"payload"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	payload := flag.String("payload", `{"type":"analyze_terrain","location":"mountain_valley_east"}`, "dispatcher request body")
	flag.Parse()

	if !json.Valid([]byte(*payload)) {
		log.Fatalf("payload is not valid JSON: %s", *payload)
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Ответы читаем начиная с текущего хвоста стрима
	lastID := "$"
	if last, err := client.XRevRangeN(ctx, resultsStream, "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	event := terrainRequest{RequestID: uuid.New(), Payload: json.RawMessage(*payload)}
	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: requestsStream,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish request: %v", err)
	}

	fmt.Printf("Request published\n")
	fmt.Printf("   Stream: %s\n", requestsStream)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("\nWaiting for response in %s...\n", resultsStream)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{resultsStream, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Fatalf("Failed to read results: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				raw, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var response map[string]interface{}
				if err := json.Unmarshal([]byte(raw), &response); err != nil {
					continue
				}
				if response["request_id"] == event.RequestID.String() {
					pretty, _ := json.MarshalIndent(response, "", "  ")
					fmt.Printf("\nResponse received:\n%s\n", pretty)
					return
				}
			}
		}
	}
	fmt.Println("Timeout waiting for response")
}
