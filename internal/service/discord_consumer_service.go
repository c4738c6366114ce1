package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ops-collab-be/pkg/discord"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IDiscordConsumerService interface {
	Consume(ctx context.Context) error
}

type discordConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sender    *discord.Sender
}

func NewDiscordConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sender *discord.Sender,
) IDiscordConsumerService {
	return &discordConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sender:    sender,
	}
}

func (cs *discordConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *discordConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload discordDelivery
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal discord delivery: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	color := discord.ParseColor(payload.Color)

	var err error
	if payload.DiscordUserId != "" {
		err = cs.sender.SendDM(sendCtx, payload.DiscordUserId, payload.Title, payload.Body, color)
	} else {
		err = cs.sender.SendChannel(sendCtx, payload.Title, payload.Body, color)
	}
	if err != nil {
		// Discord outages must not wedge the queue. Log and drop.
		log.Printf("[ERROR] Discord delivery failed: %v", err)
	}

	msg.Ack()
}
