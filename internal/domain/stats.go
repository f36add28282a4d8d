package domain

import "github.com/google/uuid"

type ChannelStats struct {
	ChannelID            uuid.UUID `json:"channel_id"`
	VideoCount           int       `json:"video_count"`
	TotalViews           int64     `json:"total_views"`
	SubscriberCount      int       `json:"subscriber_count"`
	LikeCount            int       `json:"like_count"`
	AverageViewsPerVideo float64   `json:"average_views_per_video"`
}

type ChannelProfile struct {
	ID                        uuid.UUID `json:"id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"full_name"`
	Email                     string    `json:"email"`
	Avatar                    string    `json:"avatar,omitempty"`
	CoverImage                string    `json:"cover_image,omitempty"`
	SubscriberCount           int       `json:"subscriber_count"`
	ChannelsSubscribedToCount int       `json:"channels_subscribed_to_count"`
	IsSubscribed              bool      `json:"is_subscribed"`
}
