package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"mission_manager/database"
	"mission_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	flightRooms   = make(map[uint]map[seatStreamClient]bool)
	roomFeeds     = make(map[uint]*redis.PubSub)
	flightRoomsMu sync.Mutex
)

// seatStreamClient is the slice of websocket.Conn the room code needs.
type seatStreamClient interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

func flightChannel(flightID uint) string {
	return fmt.Sprintf("flight:%d", flightID)
}

type seatUpdate struct {
	FlightNumber   string `json:"flight_number"`
	SeatsAvailable int    `json:"seats_available"`
	Status         string `json:"status"`
}

// publishSeatUpdate pushes the flight's current seat count onto its redis
// channel. Called after a committed booking; failures only cost liveness.
func publishSeatUpdate(flightID uint) {
	var flight model.SpaceFlight
	if err := database.DB.First(&flight, flightID).Error; err != nil {
		log.Printf("failed to load flight %d for seat update: %v", flightID, err)
		return
	}

	payload, err := json.Marshal(seatUpdate{
		FlightNumber:   flight.FlightNumber,
		SeatsAvailable: flight.SeatsAvailable,
		Status:         flight.Status,
	})
	if err != nil {
		return
	}

	if err := getRedisClient().Publish(
		context.Background(),
		flightChannel(flightID),
		payload,
	).Err(); err != nil {
		log.Printf("failed to publish seat update for flight %d: %v", flightID, err)
	}
}

// joinFlightRoom registers a client; the first client in a room opens the
// room's single redis subscription.
func joinFlightRoom(flightID uint, client seatStreamClient) {
	flightRoomsMu.Lock()
	defer flightRoomsMu.Unlock()

	room := flightRooms[flightID]
	if room == nil {
		room = make(map[seatStreamClient]bool)
		flightRooms[flightID] = room

		pubsub := getRedisClient().Subscribe(context.Background(), flightChannel(flightID))
		roomFeeds[flightID] = pubsub
		go func() {
			for msg := range pubsub.Channel() {
				deliverSeatUpdate(flightID, []byte(msg.Payload))
			}
		}()
	}
	room[client] = true
}

// leaveFlightRoom drops a client; the last one out closes the subscription.
func leaveFlightRoom(flightID uint, client seatStreamClient) {
	flightRoomsMu.Lock()
	defer flightRoomsMu.Unlock()

	room := flightRooms[flightID]
	if room == nil {
		return
	}
	delete(room, client)

	if len(room) == 0 {
		if feed := roomFeeds[flightID]; feed != nil {
			feed.Close()
		}
		delete(roomFeeds, flightID)
		delete(flightRooms, flightID)
	}
}

// deliverSeatUpdate writes one payload to each client in the room exactly
// once; clients that fail the write are dropped.
func deliverSeatUpdate(flightID uint, payload []byte) {
	flightRoomsMu.Lock()
	defer flightRoomsMu.Unlock()

	for client := range flightRooms[flightID] {
		if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
			client.Close()
			delete(flightRooms[flightID], client)
		}
	}
}

// FlightSeatSocket streams seat availability for one flight: the current
// count on connect, then every update published on the flight's channel.
func FlightSeatSocket(c *websocket.Conn) {
	idStr := c.Params("id")
	id64, _ := strconv.ParseUint(idStr, 10, 64)
	flightID := uint(id64)

	joinFlightRoom(flightID, c)
	defer func() {
		leaveFlightRoom(flightID, c)
		c.Close()
	}()

	var flight model.SpaceFlight
	if err := database.DB.First(&flight, flightID).Error; err == nil {
		c.WriteJSON(seatUpdate{
			FlightNumber:   flight.FlightNumber,
			SeatsAvailable: flight.SeatsAvailable,
			Status:         flight.Status,
		})
	}

	// block until the peer goes away
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
