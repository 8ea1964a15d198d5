package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type pingMessage struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
	Accuracy  float64 `json:"accuracy"`
}

// room center used by the seed data
const (
	roomLat = 40.3430
	roomLon = -74.6514
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("geodorm-mock-device")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	devicePool := []string{"device-alex", "device-sam", "device-jordan"}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		deviceID := devicePool[rand.Intn(len(devicePool))]

		// drift around the boundary so both transitions and the dead band
		// show up: +-0.0008 deg is roughly +-90m
		lat := roomLat + (rand.Float64()-0.5)*0.0016
		lon := roomLon + (rand.Float64()-0.5)*0.0016

		msg := pingMessage{
			DeviceID:  deviceID,
			Latitude:  lat,
			Longitude: lon,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Accuracy:  3 + rand.Float64()*12,
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/home/device/%s/location", deviceID)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
