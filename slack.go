package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"
)

// DeliverNotices posts each rendered notice to the configured review
// channel, or DMs them to the manager when only a manager ID is set.
// Delivery is one-way: the notices still go out to employees by hand.
func DeliverNotices(api *slack.Client, cfg Config, models []EmployeeEmailModel, summary string) {
	if api == nil {
		return
	}
	if cfg.NoticeChannelID != "" {
		if summary != "" {
			postToChannel(api, cfg.NoticeChannelID, fmt.Sprintf("Attendance run complete: %s", summary))
		}
		for _, m := range models {
			postToChannel(api, cfg.NoticeChannelID, formatNoticeMessage(m))
		}
		return
	}
	if cfg.ManagerSlackID == "" {
		return
	}
	channel, _, _, err := api.OpenConversation(&slack.OpenConversationParameters{
		Users: []string{cfg.ManagerSlackID},
	})
	if err != nil {
		log.Printf("Error opening DM with %s: %v", cfg.ManagerSlackID, err)
		return
	}
	if summary != "" {
		postToChannel(api, channel.ID, fmt.Sprintf("Attendance run complete: %s", summary))
	}
	for _, m := range models {
		postToChannel(api, channel.ID, formatNoticeMessage(m))
	}
}

func postToChannel(api *slack.Client, channelID, msg string) {
	if _, _, err := api.PostMessage(channelID, slack.MsgOptionText(msg, false)); err != nil {
		log.Printf("Error posting to %s: %v", channelID, err)
	}
}

func formatNoticeMessage(m EmployeeEmailModel) string {
	return fmt.Sprintf("Draft notice for *%s* (%d point%s):\n```%s```",
		DisplayName(m.Name), m.TotalPoints, plural(m.TotalPoints), strings.TrimSpace(m.Body))
}
