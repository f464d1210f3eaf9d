package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Password and RefreshToken are never
// serialized to JSON; reads that leave the store for a client go through a
// projection that strips them as well.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	FullName     string               `bson:"fullName" json:"fullName"`
	ProfilePic   string               `bson:"profilePic" json:"profilePic"`
	ProfilePicID string               `bson:"profilePicId,omitempty" json:"-"`
	CoverPic     string               `bson:"coverPic,omitempty" json:"coverPic,omitempty"`
	CoverPicID   string               `bson:"coverPicId,omitempty" json:"-"`
	Password     string               `bson:"password,omitempty" json:"-"`
	RefreshToken string               `bson:"refreshToken,omitempty" json:"-"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory,omitempty" json:"watchHistory,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ChannelProfile is the aggregation result for a channel page: the public
// slice of a user plus subscription counters relative to the viewer.
type ChannelProfile struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Username          string             `bson:"username" json:"username"`
	Email             string             `bson:"email" json:"email"`
	FullName          string             `bson:"fullName" json:"fullName"`
	ProfilePic        string             `bson:"profilePic" json:"profilePic"`
	CoverPic          string             `bson:"coverPic,omitempty" json:"coverPic,omitempty"`
	SubscribersCount  int64              `bson:"subscribersCount" json:"subscribersCount"`
	SubscribedToCount int64              `bson:"subscribedToCount" json:"subscribedToCount"`
	IsSubscribed      bool               `bson:"isSubscribed" json:"isSubscribed"`
}

// VideoOwner is the public owner slice embedded in joined video documents.
type VideoOwner struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Username   string             `bson:"username" json:"username"`
	FullName   string             `bson:"fullName" json:"fullName"`
	ProfilePic string             `bson:"profilePic" json:"profilePic"`
}
